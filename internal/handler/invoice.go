package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"
)

// invoiceWire is the request shape for confirming a draft. It mirrors what
// POST /api/messages returned, so the UI hands the draft back unchanged.
type invoiceWire struct {
	ID             string          `json:"id"`
	Number         string          `json:"invoice_number"`
	CustomerMobile string          `json:"customer_mobile"`
	CustomerName   string          `json:"customer_name"`
	Items          []lineItemWire  `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalGST       decimal.Decimal `json:"total_gst"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	UPIString      string          `json:"upi_string"`
	CreatedAt      time.Time       `json:"created_at"`
}

type lineItemWire struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type paymentRequest struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// handleConfirmInvoice persists a confirmed draft. The body is the draft
// invoice exactly as the message endpoint returned it.
func (h *Handler) handleConfirmInvoice(w http.ResponseWriter, r *http.Request) {
	var wire invoiceWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if wire.Number == "" || len(wire.Items) == 0 {
		respondError(w, r, http.StatusBadRequest, "invoice number and items are required")
		return
	}

	reply, err := h.assistant.ConfirmInvoice(r.Context(), wire.toDomain())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, func(e *jx.Encoder) {
		encodeReply(e, reply)
	})
}

func (h *Handler) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range invoices {
				encodeInvoice(e, &invoices[i])
			}
		})
	})
}

func (h *Handler) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.GetByNumber(r.Context(), r.PathValue("number"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "invoice not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		encodeInvoice(e, inv)
	})
}

func (h *Handler) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status := invoice.PaymentStatus(req.Status)
	switch status {
	case invoice.PaymentPending, invoice.PaymentCompleted, invoice.PaymentPartial:
	default:
		respondError(w, r, http.StatusUnprocessableEntity, "unknown payment status")
		return
	}

	err := h.invoices.UpdatePayment(r.Context(), r.PathValue("number"), status, invoice.PaymentMode(req.Mode))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "invoice not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (wire invoiceWire) toDomain() *invoice.Invoice {
	items := make([]invoice.LineItem, len(wire.Items))
	for i, item := range wire.Items {
		items[i] = invoice.LineItem(item)
	}
	return &invoice.Invoice{
		ID:             wire.ID,
		Number:         wire.Number,
		CustomerMobile: wire.CustomerMobile,
		CustomerName:   wire.CustomerName,
		Items:          items,
		Subtotal:       wire.Subtotal,
		TotalGST:       wire.TotalGST,
		TotalAmount:    wire.TotalAmount,
		PaymentStatus:  invoice.PaymentPending,
		UPIString:      wire.UPIString,
		CreatedAt:      wire.CreatedAt,
	}
}

// encodeInvoice writes the invoice JSON. Monetary values are emitted as
// strings with 2 decimal places; quantities and rates keep their precision.
func encodeInvoice(e *jx.Encoder, inv *invoice.Invoice) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(inv.ID) })
		e.Field("invoice_number", func(e *jx.Encoder) { e.Str(inv.Number) })
		if inv.CustomerMobile != "" {
			e.Field("customer_mobile", func(e *jx.Encoder) { e.Str(inv.CustomerMobile) })
		}
		if inv.CustomerName != "" {
			e.Field("customer_name", func(e *jx.Encoder) { e.Str(inv.CustomerName) })
		}
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range inv.Items {
					encodeLineItem(e, &inv.Items[i])
				}
			})
		})
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(inv.Subtotal.StringFixed(2)) })
		e.Field("total_gst", func(e *jx.Encoder) { e.Str(inv.TotalGST.StringFixed(2)) })
		e.Field("total_amount", func(e *jx.Encoder) { e.Str(inv.TotalAmount.StringFixed(2)) })
		e.Field("payment_status", func(e *jx.Encoder) { e.Str(string(inv.PaymentStatus)) })
		if inv.PaymentMode != "" {
			e.Field("payment_mode", func(e *jx.Encoder) { e.Str(string(inv.PaymentMode)) })
		}
		e.Field("upi_string", func(e *jx.Encoder) { e.Str(inv.UPIString) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(inv.CreatedAt.Format(time.RFC3339)) })
	})
}

func encodeLineItem(e *jx.Encoder, item *invoice.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("product_name", func(e *jx.Encoder) { e.Str(item.ProductName) })
		e.Field("quantity", func(e *jx.Encoder) { e.Str(item.Quantity.String()) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(item.Unit) })
		e.Field("price_per_unit", func(e *jx.Encoder) { e.Str(item.PricePerUnit.StringFixed(2)) })
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(item.Subtotal.StringFixed(2)) })
		e.Field("gst_rate", func(e *jx.Encoder) { e.Str(item.GSTRate.String()) })
		e.Field("gst_amount", func(e *jx.Encoder) { e.Str(item.GSTAmount.StringFixed(2)) })
		e.Field("total_price", func(e *jx.Encoder) { e.Str(item.TotalPrice.StringFixed(2)) })
	})
}
