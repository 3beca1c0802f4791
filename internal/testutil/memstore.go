package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xxxsen/remindme/internal/model"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
)

// MemUserStore is an in-memory user store. Setting Err makes every call fail.
type MemUserStore struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]model.User
	Err    error
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{byMail: map[string]model.User{}}
}

func (s *MemUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.byMail[user.Email]; ok {
		return appErr.ErrConflict
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.byMail[user.Email] = *user
	return nil
}

func (s *MemUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.byMail[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &user, nil
}

func (s *MemUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byMail)
}

// MemReminderStore is an in-memory reminder store with the same ownership
// scoping as the SQL repository.
type MemReminderStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Reminder
	Err    error
}

func NewMemReminderStore() *MemReminderStore {
	return &MemReminderStore{items: map[int64]model.Reminder{}}
}

func (s *MemReminderStore) List(_ context.Context, userID int64, search string) ([]model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	needle := strings.ToLower(search)
	out := make([]model.Reminder, 0)
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		if needle != "" && !matches(item, needle) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(item model.Reminder, needle string) bool {
	if strings.Contains(strings.ToLower(item.Title), needle) {
		return true
	}
	return item.Description != nil && strings.Contains(strings.ToLower(*item.Description), needle)
}

func (s *MemReminderStore) Create(_ context.Context, item *model.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = *item
	return nil
}

func (s *MemReminderStore) Update(_ context.Context, userID, id int64, patch model.ReminderPatch, mtime time.Time) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return nil, appErr.ErrNotFound
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		desc := *patch.Description
		item.Description = &desc
	}
	if patch.Date != nil {
		item.Date = *patch.Date
	}
	if patch.Time != nil {
		item.Time = *patch.Time
	}
	if patch.Frequency != nil {
		item.Frequency = *patch.Frequency
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	item.UpdatedAt = mtime
	s.items[id] = item
	return &item, nil
}

func (s *MemReminderStore) Deactivate(_ context.Context, userID, id int64, mtime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return appErr.ErrNotFound
	}
	item.IsActive = false
	item.UpdatedAt = mtime
	s.items[id] = item
	return nil
}

// Get returns the stored reminder regardless of owner.
func (s *MemReminderStore) Get(id int64) (model.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}
