package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
)

// handleListProducts returns the in-memory catalog the resolver works
// against, not a database read: what is billed is what is listed.
func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range h.catalog.Products() {
				encodeProduct(e, p)
			}
		})
	})
}

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("name_hi", func(e *jx.Encoder) { e.Str(p.NameHi) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(p.Unit) })
		e.Field("price", func(e *jx.Encoder) { e.Str(p.Price.StringFixed(2)) })
		e.Field("gst_rate", func(e *jx.Encoder) { e.Str(p.GSTRate().String()) })
	})
}
