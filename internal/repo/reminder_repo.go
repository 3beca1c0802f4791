package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/remindme/internal/model"
	"github.com/xxxsen/remindme/internal/pkg/dbutil"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
)

var reminderColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"to_char(date, 'YYYY-MM-DD') AS date",
	"to_char(time, 'HH24:MI') AS time",
	"frequency",
	"is_active",
	"created_at",
	"updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ReminderRepo struct {
	db *sqlx.DB
}

func NewReminderRepo(db *sql.DB) *ReminderRepo {
	return &ReminderRepo{db: sqlx.NewDb(db, "postgres")}
}

func returning() string {
	return "RETURNING " + strings.Join(reminderColumns, ", ")
}

// List returns every reminder owned by userID ordered by schedule. A non-empty
// search keeps rows whose title or description contains it, ignoring case.
func (r *ReminderRepo) List(ctx context.Context, userID int64, search string) ([]model.Reminder, error) {
	query := psql.Select(reminderColumns...).
		From("reminders").
		Where(sq.Eq{"user_id": userID})
	if search != "" {
		pattern := "%" + dbutil.EscapeLike(search) + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	sqlStr, args, err := query.OrderBy("date", "time", "id").ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Reminder, 0)
	if err := r.db.SelectContext(ctx, &items, sqlStr, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ReminderRepo) Create(ctx context.Context, item *model.Reminder) error {
	sqlStr, args, err := psql.Insert("reminders").
		Columns("user_id", "title", "description", "date", "time", "frequency", "is_active", "created_at", "updated_at").
		Values(
			item.UserID,
			item.Title,
			item.Description,
			sq.Expr("?::date", item.Date),
			sq.Expr("?::time", item.Time),
			item.Frequency,
			item.IsActive,
			item.CreatedAt,
			item.UpdatedAt,
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, item, sqlStr, args...)
}

// Update applies the supplied fields of patch and stamps updated_at in a single
// statement scoped by owner and id.
func (r *ReminderRepo) Update(ctx context.Context, userID, id int64, patch model.ReminderPatch, mtime time.Time) (*model.Reminder, error) {
	query := psql.Update("reminders")
	if patch.Title != nil {
		query = query.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		query = query.Set("description", *patch.Description)
	}
	if patch.Date != nil {
		query = query.Set("date", sq.Expr("?::date", *patch.Date))
	}
	if patch.Time != nil {
		query = query.Set("time", sq.Expr("?::time", *patch.Time))
	}
	if patch.Frequency != nil {
		query = query.Set("frequency", *patch.Frequency)
	}
	if patch.IsActive != nil {
		query = query.Set("is_active", *patch.IsActive)
	}
	sqlStr, args, err := query.
		Set("updated_at", mtime).
		Where("user_id = ? AND id = ?", userID, id).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, err
	}
	var item model.Reminder
	if err := r.db.GetContext(ctx, &item, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Deactivate is the soft delete: the row stays, is_active becomes false.
func (r *ReminderRepo) Deactivate(ctx context.Context, userID, id int64, mtime time.Time) error {
	sqlStr, args, err := psql.Update("reminders").
		Set("is_active", false).
		Set("updated_at", mtime).
		Where("user_id = ? AND id = ?", userID, id).
		ToSql()
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
