package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/jx"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/assistant"
)

type messageRequest struct {
	Text string `json:"text"`
}

// handleMessage runs one chat turn: the raw text goes through the assistant
// and the tagged reply comes back. Drafts are returned for confirmation via
// POST /api/invoices; nothing is persisted by this endpoint except reminders,
// which the assistant saves directly.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	reply, err := h.assistant.HandleMessage(r.Context(), req.Text)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		encodeReply(e, reply)
	})
}

func encodeReply(e *jx.Encoder, reply *assistant.Reply) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(reply.Kind)) })
		e.Field("text", func(e *jx.Encoder) { e.Str(reply.Text) })
		if reply.Invoice != nil {
			e.Field("invoice", func(e *jx.Encoder) { encodeInvoice(e, reply.Invoice) })
		}
	})
}
