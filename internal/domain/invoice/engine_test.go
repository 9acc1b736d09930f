package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/extract"
)

var fixedNow = time.Date(2025, 6, 15, 14, 30, 5, 0, time.UTC)

func newTestEngine() *Engine {
	e := NewEngine("shop@upi", "Sharma Kirana")
	e.now = func() time.Time { return fixedNow }
	return e
}

func testItem(name, qty, unit, price string, cat catalog.Category) Item {
	return Item{
		Raw: extract.RawItem{
			Name:     name,
			Quantity: decimal.RequireFromString(qty),
			Unit:     unit,
			Price:    decimal.RequireFromString(price),
		},
		Product: catalog.Descriptor{
			ProductID: name,
			Name:      name,
			Category:  cat,
			Known:     true,
		},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s got %s", want, got)
}

func TestCompute_FoodBasket(t *testing.T) {
	inv, skipped := newTestEngine().Compute([]Item{
		testItem("rice", "2", "kg", "60", catalog.CategoryFood),
		testItem("oil", "1", "liter", "150", catalog.CategoryFood),
	})

	assert.Empty(t, skipped)
	require.Len(t, inv.Items, 2)

	assertDecimal(t, "120", inv.Items[0].Subtotal)
	assertDecimal(t, "6", inv.Items[0].GSTAmount)
	assertDecimal(t, "126", inv.Items[0].TotalPrice)

	assertDecimal(t, "150", inv.Items[1].Subtotal)
	assertDecimal(t, "7.5", inv.Items[1].GSTAmount)
	assertDecimal(t, "157.5", inv.Items[1].TotalPrice)

	assertDecimal(t, "270", inv.Subtotal)
	assertDecimal(t, "13.5", inv.TotalGST)
	assertDecimal(t, "283.5", inv.TotalAmount)
}

func TestCompute_MixedRates(t *testing.T) {
	inv, skipped := newTestEngine().Compute([]Item{
		testItem("soap", "5", "piece", "40", catalog.CategoryGeneral),
		testItem("sugar", "2", "kg", "42", catalog.CategoryFood),
	})

	assert.Empty(t, skipped)
	require.Len(t, inv.Items, 2)

	assertDecimal(t, "200", inv.Items[0].Subtotal)
	assertDecimal(t, "36", inv.Items[0].GSTAmount)
	assertDecimal(t, "236", inv.Items[0].TotalPrice)

	assertDecimal(t, "84", inv.Items[1].Subtotal)
	assertDecimal(t, "4.2", inv.Items[1].GSTAmount)
	assertDecimal(t, "88.2", inv.Items[1].TotalPrice)

	assertDecimal(t, "324.2", inv.TotalAmount)
}

// Line values are rounded to 2 places before aggregation, so the invoice
// totals always equal the sum of the printed per-line figures.
func TestCompute_RoundThenSum(t *testing.T) {
	inv, _ := newTestEngine().Compute([]Item{
		// 0.333 * 10 = 3.33, GST 5% = 0.17 (0.1665 rounds half-up)
		testItem("a", "0.333", "kg", "10", catalog.CategoryFood),
		testItem("b", "0.333", "kg", "10", catalog.CategoryFood),
		testItem("c", "0.333", "kg", "10", catalog.CategoryFood),
	})

	require.Len(t, inv.Items, 3)
	for _, line := range inv.Items {
		assertDecimal(t, "3.33", line.Subtotal)
		assertDecimal(t, "0.17", line.GSTAmount)
		assertDecimal(t, "3.5", line.TotalPrice)

		assert.True(t, line.GSTAmount.Equal(line.Subtotal.Mul(line.GSTRate).Div(decimal.NewFromInt(100)).Round(2)))
		assert.True(t, line.TotalPrice.Equal(line.Subtotal.Add(line.GSTAmount)))
	}

	assertDecimal(t, "9.99", inv.Subtotal)
	assertDecimal(t, "0.51", inv.TotalGST)
	assertDecimal(t, "10.5", inv.TotalAmount)
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TotalGST)))
}

func TestCompute_SkipsNonPositiveLines(t *testing.T) {
	inv, skipped := newTestEngine().Compute([]Item{
		testItem("rice", "2", "kg", "60", catalog.CategoryFood),
		testItem("broken", "0", "kg", "60", catalog.CategoryFood),
		testItem("free", "1", "piece", "0", catalog.CategoryGeneral),
	})

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "rice", inv.Items[0].ProductID)
	assert.Equal(t, []string{"broken", "free"}, skipped)
	assertDecimal(t, "126", inv.TotalAmount)
}

func TestCompute_EmptyItems(t *testing.T) {
	inv, skipped := newTestEngine().Compute(nil)

	assert.Empty(t, inv.Items)
	assert.Empty(t, skipped)
	assertDecimal(t, "0", inv.TotalAmount)
	assert.Equal(t, PaymentPending, inv.PaymentStatus)
}

func TestCompute_InvoiceMetadata(t *testing.T) {
	inv, _ := newTestEngine().Compute([]Item{
		testItem("rice", "2", "kg", "60", catalog.CategoryFood),
	})

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "INV20250615143005", inv.Number)
	assert.Equal(t, PaymentPending, inv.PaymentStatus)
	assert.Equal(t, fixedNow, inv.CreatedAt)
	assert.Equal(t,
		"upi://pay?pa=shop%40upi&pn=Sharma+Kirana&am=126.00&cu=INR&tn=INV20250615143005",
		inv.UPIString)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV20250615143005", FormatNumber(fixedNow))
}
