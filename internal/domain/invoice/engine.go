package invoice

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/extract"
)

var hundred = decimal.NewFromInt(100)

// Item pairs a raw extracted tuple with the catalog descriptor it resolved to.
type Item struct {
	Raw     extract.RawItem
	Product catalog.Descriptor
}

// Engine computes draft invoices. It holds the UPI payee configuration and an
// injectable clock; it never persists anything itself.
type Engine struct {
	payeeVPA  string
	payeeName string
	now       func() time.Time
}

// NewEngine creates an Engine that bills to the given UPI payee.
func NewEngine(payeeVPA, payeeName string) *Engine {
	return &Engine{
		payeeVPA:  payeeVPA,
		payeeName: payeeName,
		now:       time.Now,
	}
}

// Compute prices the given items and aggregates them into a draft invoice.
//
// Per line: subtotal = quantity x unit price, GST = subtotal x rate/100,
// total = subtotal + GST, each rounded half-up to 2 decimal places before
// aggregation. Aggregates are plain sums of the already-rounded line values
// (round-then-sum), so the invoice totals always equal the sum of what is
// printed per line.
//
// Items with a non-positive quantity or price are excluded from the invoice;
// their names are returned in skipped so the caller can report them instead
// of silently billing zero.
func (e *Engine) Compute(items []Item) (inv *Invoice, skipped []string) {
	now := e.now()

	lines := make([]LineItem, 0, len(items))
	subtotal := decimal.Zero
	totalGST := decimal.Zero

	for _, item := range items {
		if !item.Raw.Quantity.IsPositive() || !item.Raw.Price.IsPositive() {
			skipped = append(skipped, item.Raw.Name)
			continue
		}

		rate := item.Product.GSTRate()
		lineSubtotal := item.Raw.Quantity.Mul(item.Raw.Price).Round(2)
		gstAmount := lineSubtotal.Mul(rate).Div(hundred).Round(2)
		totalPrice := lineSubtotal.Add(gstAmount)

		lines = append(lines, LineItem{
			ProductID:    item.Product.ProductID,
			ProductName:  item.Product.Name,
			Quantity:     item.Raw.Quantity,
			Unit:         item.Raw.Unit,
			PricePerUnit: item.Raw.Price,
			Subtotal:     lineSubtotal,
			GSTRate:      rate,
			GSTAmount:    gstAmount,
			TotalPrice:   totalPrice,
		})
		subtotal = subtotal.Add(lineSubtotal)
		totalGST = totalGST.Add(gstAmount)
	}

	totalAmount := subtotal.Add(totalGST)
	number := FormatNumber(now)

	return &Invoice{
		ID:            uuid.New().String(),
		Number:        number,
		Items:         lines,
		Subtotal:      subtotal,
		TotalGST:      totalGST,
		TotalAmount:   totalAmount,
		PaymentStatus: PaymentPending,
		UPIString:     e.upiString(totalAmount, number),
		CreatedAt:     now,
	}, skipped
}

// FormatNumber derives the invoice number from the creation time. The
// second-resolution timestamp keeps numbers monotonically increasing; two
// invoices within the same second collide, an accepted limitation for a
// single-cashier tool.
func FormatNumber(t time.Time) string {
	return "INV" + t.Format("20060102150405")
}

// upiString builds the upi://pay deep link for the invoice total.
func (e *Engine) upiString(amount decimal.Decimal, number string) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(url.QueryEscape(e.payeeVPA))
	b.WriteString("&pn=")
	b.WriteString(url.QueryEscape(e.payeeName))
	b.WriteString("&am=")
	b.WriteString(amount.StringFixed(2))
	b.WriteString("&cu=INR&tn=")
	b.WriteString(url.QueryEscape(number))
	return b.String()
}
