// Package reminder stores the simple follow-up notes the assistant creates
// from "remind me ..." messages.
package reminder

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no reminder exists for an ID.
var ErrNotFound = errors.New("reminder not found")

// Status of a reminder.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Reminder is a dated note. The assistant titles it with the raw message text
// and dues it 24 hours out; richer date parsing is not attempted.
type Reminder struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
}

// Repository defines persistence operations for reminders.
type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	List(ctx context.Context) ([]Reminder, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountPending(ctx context.Context) (int, error)
}

// FromMessage builds a pending reminder from a chat message, due one day
// after creation.
func FromMessage(text string, now time.Time) *Reminder {
	return &Reminder{
		ID:        uuid.New().String(),
		Title:     text,
		DueDate:   now.Add(24 * time.Hour),
		Status:    StatusPending,
		CreatedAt: now,
	}
}
