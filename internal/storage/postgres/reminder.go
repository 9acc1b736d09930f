package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/reminder"
)

const (
	createReminderSQL = `INSERT INTO reminders (id, title, description, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	listRemindersSQL = `SELECT id, title, description, due_date, status, created_at
		FROM reminders ORDER BY due_date`

	updateReminderStatusSQL = `UPDATE reminders SET status = $2 WHERE id = $1`

	countPendingRemindersSQL = `SELECT COUNT(*) FROM reminders WHERE status = 'pending'`
)

var _ reminder.Repository = (*ReminderRepository)(nil)

// ReminderRepository implements reminder.Repository backed by PostgreSQL.
type ReminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository returns a ReminderRepository that uses the given pool.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create persists a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, rem *reminder.Reminder) error {
	_, err := r.pool.Exec(ctx, createReminderSQL,
		rem.ID, rem.Title, rem.Description, rem.DueDate, string(rem.Status), rem.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create reminder %q", rem.ID)
	}
	return nil
}

// List returns all reminders ordered by due date.
func (r *ReminderRepository) List(ctx context.Context) ([]reminder.Reminder, error) {
	rows, err := r.pool.Query(ctx, listRemindersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list reminders")
	}
	return pgx.CollectRows(rows, scanReminder)
}

// UpdateStatus marks a reminder pending or completed.
func (r *ReminderRepository) UpdateStatus(ctx context.Context, id string, status reminder.Status) error {
	tag, err := r.pool.Exec(ctx, updateReminderStatusSQL, id, string(status))
	if err != nil {
		return errors.Wrapf(err, "update reminder %q", id)
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrNotFound
	}
	return nil
}

// CountPending returns the number of reminders still pending.
func (r *ReminderRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, countPendingRemindersSQL).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count pending reminders")
	}
	return n, nil
}

func scanReminder(row pgx.CollectableRow) (reminder.Reminder, error) {
	var (
		rem    reminder.Reminder
		status string
	)
	err := row.Scan(&rem.ID, &rem.Title, &rem.Description, &rem.DueDate, &status, &rem.CreatedAt)
	rem.Status = reminder.Status(status)
	return rem, err
}
