package assistant

import "github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"

// ReplyKind tags the variant of an assistant reply. Every consumer must
// branch on the kind; there is no untyped payload.
type ReplyKind string

const (
	// ReplyText is a plain conversational answer (help, sales figures).
	ReplyText ReplyKind = "text"
	// ReplyDraftInvoice carries a computed invoice awaiting confirmation.
	ReplyDraftInvoice ReplyKind = "draft_invoice"
	// ReplyInvoiceConfirmed carries an invoice that has just been persisted.
	ReplyInvoiceConfirmed ReplyKind = "invoice_confirmed"
	// ReplyNotice is a system-level message (rephrase prompts, saved acks).
	ReplyNotice ReplyKind = "notice"
)

// Reply is the assistant's answer to one message. Invoice is set only for
// the draft and confirmed kinds.
type Reply struct {
	Kind    ReplyKind
	Text    string
	Invoice *invoice.Invoice
}
