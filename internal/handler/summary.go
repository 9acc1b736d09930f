package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

// handleSummary composes the business dashboard figures from the invoice,
// customer, and reminder repositories.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sales, err := h.invoices.SalesSummary(ctx, time.Now())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	customerCount, err := h.customers.Count(ctx)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	pendingReminders, err := h.reminders.CountPending(ctx)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("today_sales", func(e *jx.Encoder) { e.Str(sales.TodaySales.StringFixed(2)) })
			e.Field("today_bill_count", func(e *jx.Encoder) { e.Int(sales.TodayBillCount) })
			e.Field("pending_payments", func(e *jx.Encoder) { e.Str(sales.PendingPayments.StringFixed(2)) })
			e.Field("total_sales", func(e *jx.Encoder) { e.Str(sales.TotalSales.StringFixed(2)) })
			e.Field("total_customers", func(e *jx.Encoder) { e.Int(customerCount) })
			e.Field("pending_reminders", func(e *jx.Encoder) { e.Int(pendingReminders) })
		})
	})
}
