package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/reminder"
)

func (h *Handler) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, rem := range reminders {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Str(rem.ID) })
					e.Field("title", func(e *jx.Encoder) { e.Str(rem.Title) })
					if rem.Description != "" {
						e.Field("description", func(e *jx.Encoder) { e.Str(rem.Description) })
					}
					e.Field("due_date", func(e *jx.Encoder) { e.Str(rem.DueDate.Format(time.RFC3339)) })
					e.Field("status", func(e *jx.Encoder) { e.Str(string(rem.Status)) })
					e.Field("created_at", func(e *jx.Encoder) { e.Str(rem.CreatedAt.Format(time.RFC3339)) })
				})
			}
		})
	})
}

func (h *Handler) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	err := h.reminders.UpdateStatus(r.Context(), r.PathValue("id"), reminder.StatusCompleted)
	if err != nil {
		if errors.Is(err, reminder.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "reminder not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
