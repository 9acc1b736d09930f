package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, c := range customers {
				e.Obj(func(e *jx.Encoder) {
					e.Field("mobile", func(e *jx.Encoder) { e.Str(c.Mobile) })
					e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
					e.Field("total_purchases", func(e *jx.Encoder) { e.Str(c.TotalPurchases.StringFixed(2)) })
					e.Field("visit_count", func(e *jx.Encoder) { e.Int(c.VisitCount) })
					e.Field("last_visit", func(e *jx.Encoder) { e.Str(c.LastVisit.Format(time.RFC3339)) })
					e.Field("loyalty_points", func(e *jx.Encoder) { e.Int(c.LoyaltyPoints) })
				})
			}
		})
	})
}
