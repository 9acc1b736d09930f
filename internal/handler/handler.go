// Package handler exposes the assistant and its repositories over a JSON
// HTTP API. Responses are encoded with go-faster/jx; request bodies are
// decoded with encoding/json.
package handler

import (
	"net/http"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/assistant"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/customer"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/reminder"
)

// Handler serves the JSON API, delegating all business logic to the assistant
// service and the domain repositories.
type Handler struct {
	assistant *assistant.Service
	catalog   *catalog.Catalog
	invoices  invoice.Repository
	customers customer.Repository
	reminders reminder.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	svc *assistant.Service,
	cat *catalog.Catalog,
	invoices invoice.Repository,
	customers customer.Repository,
	reminders reminder.Repository,
) *Handler {
	return &Handler{
		assistant: svc,
		catalog:   cat,
		invoices:  invoices,
		customers: customers,
		reminders: reminders,
	}
}

// Register adds all API routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/messages", h.handleMessage)
	mux.HandleFunc("POST /api/invoices", h.handleConfirmInvoice)
	mux.HandleFunc("GET /api/invoices", h.handleListInvoices)
	mux.HandleFunc("GET /api/invoices/{number}", h.handleGetInvoice)
	mux.HandleFunc("POST /api/invoices/{number}/payment", h.handleUpdatePayment)
	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("GET /api/customers", h.handleListCustomers)
	mux.HandleFunc("GET /api/reminders", h.handleListReminders)
	mux.HandleFunc("POST /api/reminders/{id}/complete", h.handleCompleteReminder)
	mux.HandleFunc("GET /api/summary", h.handleSummary)
}
