package model

import "time"

const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Date is YYYY-MM-DD and Time is HH:MM.
type Reminder struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Frequency   string    `db:"frequency" json:"frequency"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ReminderPatch holds the fields of a partial update; nil means "leave as is".
type ReminderPatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Time        *string `json:"time" validate:"omitnil,len=5,datetime=15:04"`
	Frequency   *string `json:"frequency" validate:"omitnil,oneof=once daily weekly monthly yearly"`
	IsActive    *bool   `json:"is_active"`
}

func (p ReminderPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.Time == nil && p.Frequency == nil && p.IsActive == nil
}
