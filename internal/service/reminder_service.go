package service

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/remindme/internal/model"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
	"github.com/xxxsen/remindme/internal/pkg/validate"
)

type ReminderCreateInput struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,len=5,datetime=15:04"`
	Frequency   string  `json:"frequency" validate:"required,oneof=once daily weekly monthly yearly"`
}

type ReminderService struct {
	reminders ReminderStore
	now       func() time.Time
}

func NewReminderService(reminders ReminderStore) *ReminderService {
	return &ReminderService{reminders: reminders, now: time.Now}
}

func (s *ReminderService) List(ctx context.Context, userID int64, search string) ([]model.Reminder, error) {
	return s.reminders.List(ctx, userID, strings.TrimSpace(search))
}

func (s *ReminderService) Create(ctx context.Context, userID int64, in ReminderCreateInput) (*model.Reminder, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	item := &model.Reminder{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Frequency:   in.Frequency,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.reminders.Create(ctx, item); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("reminder created",
		zap.Int64("user_id", userID),
		zap.Int64("reminder_id", item.ID),
	)
	return item, nil
}

// Update changes only the fields present in patch. A reminder that does not
// exist or belongs to another user is reported as not found.
func (s *ReminderService) Update(ctx context.Context, userID, id int64, patch model.ReminderPatch) (*model.Reminder, error) {
	if id <= 0 {
		return nil, missingID()
	}
	if patch.IsEmpty() {
		return nil, appErr.Invalid("", "no fields to update")
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	item, err := s.reminders.Update(ctx, userID, id, patch, s.now().UTC())
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrReminderNotFound
		}
		return nil, err
	}
	return item, nil
}

// Delete deactivates the reminder; the row is kept.
func (s *ReminderService) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return missingID()
	}
	if err := s.reminders.Deactivate(ctx, userID, id, s.now().UTC()); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrReminderNotFound
		}
		return err
	}
	logutil.GetLogger(ctx).Info("reminder deactivated",
		zap.Int64("user_id", userID),
		zap.Int64("reminder_id", id),
	)
	return nil
}

func missingID() error {
	return appErr.Invalid("id", "reminder id is required")
}
