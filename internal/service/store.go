package service

import (
	"context"
	"time"

	"github.com/xxxsen/remindme/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ReminderStore scopes every read and write by the owning user id.
type ReminderStore interface {
	List(ctx context.Context, userID int64, search string) ([]model.Reminder, error)
	Create(ctx context.Context, item *model.Reminder) error
	Update(ctx context.Context, userID, id int64, patch model.ReminderPatch, mtime time.Time) (*model.Reminder, error)
	Deactivate(ctx context.Context, userID, id int64, mtime time.Time) error
}
