package invoice

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no invoice exists for a number.
var ErrNotFound = errors.New("invoice not found")

// PaymentStatus tracks how much of an invoice has been paid.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentPartial   PaymentStatus = "partial"
)

// PaymentMode is the method used to settle an invoice.
type PaymentMode string

const (
	ModeUPI  PaymentMode = "UPI"
	ModeCash PaymentMode = "Cash"
	ModeCard PaymentMode = "Card"
)

// LineItem is one priced product entry within an invoice. All monetary
// fields are rounded to 2 decimal places at computation time.
type LineItem struct {
	ProductID    string
	ProductName  string
	Quantity     decimal.Decimal
	Unit         string
	PricePerUnit decimal.Decimal
	Subtotal     decimal.Decimal
	GSTRate      decimal.Decimal
	GSTAmount    decimal.Decimal
	TotalPrice   decimal.Decimal
}

// Invoice is a GST invoice. The engine produces it as a draft; it becomes
// final only when the caller confirms and hands it to the Repository.
type Invoice struct {
	ID             string
	Number         string
	CustomerMobile string
	CustomerName   string
	Items          []LineItem
	Subtotal       decimal.Decimal
	TotalGST       decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  PaymentStatus
	PaymentMode    PaymentMode
	UPIString      string
	CreatedAt      time.Time
}

// SalesSummary aggregates invoice figures for the dashboard and the
// sales-query intent.
type SalesSummary struct {
	TodaySales      decimal.Decimal
	TodayBillCount  int
	PendingPayments decimal.Decimal
	TotalSales      decimal.Decimal
}

// Repository defines persistence operations for confirmed invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	List(ctx context.Context) ([]Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	UpdatePayment(ctx context.Context, number string, status PaymentStatus, mode PaymentMode) error
	SalesSummary(ctx context.Context, now time.Time) (*SalesSummary, error)
}
