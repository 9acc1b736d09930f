package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"
)

const (
	createInvoiceSQL = `INSERT INTO invoices
		(id, invoice_number, customer_mobile, customer_name, items,
		 subtotal, total_gst, total_amount, payment_status, payment_mode,
		 upi_string, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	selectInvoiceSQL = `SELECT id, invoice_number, customer_mobile, customer_name, items,
		subtotal, total_gst, total_amount, payment_status, payment_mode,
		upi_string, created_at
		FROM invoices`

	listInvoicesSQL = selectInvoiceSQL + ` ORDER BY created_at DESC`

	getInvoiceByNumberSQL = selectInvoiceSQL + ` WHERE invoice_number = $1`

	updatePaymentSQL = `UPDATE invoices
		SET payment_status = $2, payment_mode = $3
		WHERE invoice_number = $1`

	salesSummarySQL = `SELECT
		COALESCE(SUM(total_amount) FILTER (WHERE created_at >= $1 AND created_at < $2), 0),
		COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2),
		COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'pending'), 0),
		COALESCE(SUM(total_amount), 0)
		FROM invoices`
)

var _ invoice.Repository = (*InvoiceRepository)(nil)

// jsonLineItem is the JSONB wire shape of an invoice line. Field names follow
// the exported invoice format so stored documents stay self-describing.
type jsonLineItem struct {
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

// InvoiceRepository implements invoice.Repository backed by PostgreSQL.
// Line items are stored in a JSONB column; aggregates in NUMERIC columns.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository returns an InvoiceRepository that uses the given pool.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Create persists a confirmed invoice keyed by its invoice number.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	itemsJSON, err := json.Marshal(toJSONItems(inv.Items))
	if err != nil {
		return errors.Wrap(err, "marshal invoice items")
	}

	_, err = r.pool.Exec(ctx, createInvoiceSQL,
		inv.ID, inv.Number, inv.CustomerMobile, inv.CustomerName, itemsJSON,
		inv.Subtotal, inv.TotalGST, inv.TotalAmount,
		string(inv.PaymentStatus), string(inv.PaymentMode),
		inv.UPIString, inv.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create invoice %q", inv.Number)
	}
	return nil
}

// List returns all invoices, newest first.
func (r *InvoiceRepository) List(ctx context.Context) ([]invoice.Invoice, error) {
	rows, err := r.pool.Query(ctx, listInvoicesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list invoices")
	}
	return pgx.CollectRows(rows, scanInvoice)
}

// GetByNumber returns a single invoice by its invoice number.
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	rows, err := r.pool.Query(ctx, getInvoiceByNumberSQL, number)
	if err != nil {
		return nil, errors.Wrapf(err, "get invoice %q", number)
	}

	inv, err := pgx.CollectExactlyOneRow(rows, scanInvoice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get invoice %q", number)
	}
	return &inv, nil
}

// UpdatePayment records a payment status change for an invoice.
func (r *InvoiceRepository) UpdatePayment(ctx context.Context, number string, status invoice.PaymentStatus, mode invoice.PaymentMode) error {
	tag, err := r.pool.Exec(ctx, updatePaymentSQL, number, string(status), string(mode))
	if err != nil {
		return errors.Wrapf(err, "update payment for %q", number)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}
	return nil
}

// SalesSummary aggregates invoice totals. "Today" is the calendar day of now
// in its own location.
func (r *InvoiceRepository) SalesSummary(ctx context.Context, now time.Time) (*invoice.SalesSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var s invoice.SalesSummary
	err := r.pool.QueryRow(ctx, salesSummarySQL, dayStart, dayEnd).Scan(
		&s.TodaySales, &s.TodayBillCount, &s.PendingPayments, &s.TotalSales,
	)
	if err != nil {
		return nil, errors.Wrap(err, "sales summary")
	}
	return &s, nil
}

func toJSONItems(items []invoice.LineItem) []jsonLineItem {
	out := make([]jsonLineItem, len(items))
	for i, item := range items {
		out[i] = jsonLineItem(item)
	}
	return out
}

func scanInvoice(row pgx.CollectableRow) (invoice.Invoice, error) {
	var (
		inv          invoice.Invoice
		itemsJSON    []byte
		status, mode string
	)
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerMobile, &inv.CustomerName, &itemsJSON,
		&inv.Subtotal, &inv.TotalGST, &inv.TotalAmount, &status, &mode,
		&inv.UPIString, &inv.CreatedAt,
	)
	if err != nil {
		return invoice.Invoice{}, err
	}

	var stored []jsonLineItem
	if err := json.Unmarshal(itemsJSON, &stored); err != nil {
		return invoice.Invoice{}, errors.Wrapf(err, "unmarshal items for %q", inv.Number)
	}
	inv.Items = make([]invoice.LineItem, len(stored))
	for i, item := range stored {
		inv.Items[i] = invoice.LineItem(item)
	}

	inv.PaymentStatus = invoice.PaymentStatus(status)
	inv.PaymentMode = invoice.PaymentMode(mode)
	return inv, nil
}
