package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/assistant"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/customer"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/reminder"
)

// --- Mock implementations ---

type mockInvoiceRepo struct {
	invoices    []invoice.Invoice
	lastCreated *invoice.Invoice
	lastStatus  invoice.PaymentStatus
	lastMode    invoice.PaymentMode
	summary     *invoice.SalesSummary
	createErr   error
	listErr     error
	updateErr   error
}

func (m *mockInvoiceRepo) Create(_ context.Context, inv *invoice.Invoice) error {
	m.lastCreated = inv
	return m.createErr
}

func (m *mockInvoiceRepo) List(_ context.Context) ([]invoice.Invoice, error) {
	return m.invoices, m.listErr
}

func (m *mockInvoiceRepo) GetByNumber(_ context.Context, number string) (*invoice.Invoice, error) {
	for i := range m.invoices {
		if m.invoices[i].Number == number {
			return &m.invoices[i], nil
		}
	}
	return nil, invoice.ErrNotFound
}

func (m *mockInvoiceRepo) UpdatePayment(_ context.Context, number string, status invoice.PaymentStatus, mode invoice.PaymentMode) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, err := m.GetByNumber(context.Background(), number); err != nil {
		return err
	}
	m.lastStatus, m.lastMode = status, mode
	return nil
}

func (m *mockInvoiceRepo) SalesSummary(_ context.Context, _ time.Time) (*invoice.SalesSummary, error) {
	if m.summary == nil {
		return &invoice.SalesSummary{}, nil
	}
	return m.summary, nil
}

type mockCustomerRepo struct {
	customers []customer.Customer
}

func (m *mockCustomerRepo) Upsert(_ context.Context, _ *customer.Customer) error { return nil }

func (m *mockCustomerRepo) GetByMobile(_ context.Context, _ string) (*customer.Customer, error) {
	return nil, customer.ErrNotFound
}

func (m *mockCustomerRepo) List(_ context.Context) ([]customer.Customer, error) {
	return m.customers, nil
}

func (m *mockCustomerRepo) Count(_ context.Context) (int, error) {
	return len(m.customers), nil
}

type mockReminderRepo struct {
	reminders []reminder.Reminder
	updatedID string
	updateErr error
}

func (m *mockReminderRepo) Create(_ context.Context, r *reminder.Reminder) error {
	m.reminders = append(m.reminders, *r)
	return nil
}

func (m *mockReminderRepo) List(_ context.Context) ([]reminder.Reminder, error) {
	return m.reminders, nil
}

func (m *mockReminderRepo) UpdateStatus(_ context.Context, id string, _ reminder.Status) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	return nil
}

func (m *mockReminderRepo) CountPending(_ context.Context) (int, error) {
	var n int
	for _, r := range m.reminders {
		if r.Status == reminder.StatusPending {
			n++
		}
	}
	return n, nil
}

// --- Helpers ---

type fixture struct {
	mux       *http.ServeMux
	invoices  *mockInvoiceRepo
	customers *mockCustomerRepo
	reminders *mockReminderRepo
}

func newFixture() *fixture {
	cat := catalog.New([]catalog.Product{
		{ID: "rice", Name: "Rice", NameHi: "चावल", Category: catalog.CategoryFood, Unit: "kg", Price: decimal.NewFromInt(60)},
		{ID: "soap", Name: "Soap", NameHi: "साबुन", Category: catalog.CategoryGeneral, Unit: "piece", Price: decimal.NewFromInt(40)},
	})

	f := &fixture{
		mux:       http.NewServeMux(),
		invoices:  &mockInvoiceRepo{},
		customers: &mockCustomerRepo{},
		reminders: &mockReminderRepo{},
	}
	svc := assistant.NewService(cat, invoice.NewEngine("shop@upi", "Sharma Kirana"), f.invoices, f.customers, f.reminders)
	NewHandler(svc, cat, f.invoices, f.customers, f.reminders).Register(f.mux)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func testInvoice(number string) invoice.Invoice {
	return invoice.Invoice{
		ID:     "11111111-1111-1111-1111-111111111111",
		Number: number,
		Items: []invoice.LineItem{{
			ProductID:    "rice",
			ProductName:  "Rice",
			Quantity:     decimal.NewFromInt(2),
			Unit:         "kg",
			PricePerUnit: decimal.NewFromInt(60),
			Subtotal:     decimal.NewFromInt(120),
			GSTRate:      decimal.NewFromInt(5),
			GSTAmount:    decimal.RequireFromString("6.00"),
			TotalPrice:   decimal.RequireFromString("126.00"),
		}},
		Subtotal:      decimal.NewFromInt(120),
		TotalGST:      decimal.RequireFromString("6.00"),
		TotalAmount:   decimal.RequireFromString("126.00"),
		PaymentStatus: invoice.PaymentPending,
		UPIString:     "upi://pay?pa=shop%40upi&pn=Sharma+Kirana&am=126.00&cu=INR&tn=" + number,
		CreatedAt:     time.Date(2025, 6, 15, 14, 30, 5, 0, time.UTC),
	}
}

// --- Tests ---

func TestHandleMessage_DraftInvoice(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/messages", `{"text": "2 kg rice 60 rupaye"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeJSON(t, w)
	assert.Equal(t, "draft_invoice", body["kind"])

	inv, ok := body["invoice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "126.00", inv["total_amount"])
	assert.Equal(t, "pending", inv["payment_status"])

	items, ok := inv["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, "rice", line["product_id"])
	assert.Equal(t, "2", line["quantity"])
	assert.Equal(t, "6.00", line["gst_amount"])

	// Draft only: nothing persisted yet.
	assert.Nil(t, f.invoices.lastCreated)
}

func TestHandleMessage_Fallback(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/messages", `{"text": "hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "text", body["kind"])
	assert.NotContains(t, body, "invoice")
}

func TestHandleMessage_BadRequest(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing text", `{}`},
		{"blank text", `{"text": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/messages", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeJSON(t, w)
			assert.Equal(t, float64(http.StatusBadRequest), body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestConfirmInvoice(t *testing.T) {
	f := newFixture()

	// Draft first, then hand the draft back for confirmation.
	draft := f.do(t, http.MethodPost, "/api/messages", `{"text": "2 kg rice 60 rupaye"}`)
	require.Equal(t, http.StatusOK, draft.Code)
	inv, err := json.Marshal(decodeJSON(t, draft)["invoice"])
	require.NoError(t, err)

	w := f.do(t, http.MethodPost, "/api/invoices", string(inv))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "invoice_confirmed", body["kind"])

	require.NotNil(t, f.invoices.lastCreated)
	assert.True(t, decimal.RequireFromString("126.00").Equal(f.invoices.lastCreated.TotalAmount))
	require.Len(t, f.invoices.lastCreated.Items, 1)
	assert.Equal(t, "rice", f.invoices.lastCreated.Items[0].ProductID)
}

func TestConfirmInvoice_BadRequest(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/invoices", `{"invoice_number": "", "items": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, f.invoices.lastCreated)
}

func TestListInvoices(t *testing.T) {
	f := newFixture()
	f.invoices.invoices = []invoice.Invoice{testInvoice("INV20250615143005")}

	w := f.do(t, http.MethodGet, "/api/invoices", "")

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "INV20250615143005", list[0]["invoice_number"])
	assert.Equal(t, "126.00", list[0]["total_amount"])
}

func TestGetInvoice(t *testing.T) {
	f := newFixture()
	f.invoices.invoices = []invoice.Invoice{testInvoice("INV20250615143005")}

	w := f.do(t, http.MethodGet, "/api/invoices/INV20250615143005", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV20250615143005", decodeJSON(t, w)["invoice_number"])

	w = f.do(t, http.MethodGet, "/api/invoices/INV00000000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePayment(t *testing.T) {
	f := newFixture()
	f.invoices.invoices = []invoice.Invoice{testInvoice("INV20250615143005")}

	w := f.do(t, http.MethodPost, "/api/invoices/INV20250615143005/payment",
		`{"status": "completed", "mode": "UPI"}`)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, invoice.PaymentCompleted, f.invoices.lastStatus)
	assert.Equal(t, invoice.ModeUPI, f.invoices.lastMode)
}

func TestUpdatePayment_UnknownStatus(t *testing.T) {
	f := newFixture()
	f.invoices.invoices = []invoice.Invoice{testInvoice("INV20250615143005")}

	w := f.do(t, http.MethodPost, "/api/invoices/INV20250615143005/payment",
		`{"status": "paid-ish", "mode": "UPI"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdatePayment_NotFound(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/invoices/INV00000000000000/payment",
		`{"status": "completed", "mode": "Cash"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProducts(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/api/products", "")

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "rice", list[0]["id"])
	assert.Equal(t, "5", list[0]["gst_rate"])
	assert.Equal(t, "soap", list[1]["id"])
	assert.Equal(t, "18", list[1]["gst_rate"])
}

func TestListCustomers(t *testing.T) {
	f := newFixture()
	f.customers.customers = []customer.Customer{{
		Mobile:         "9876543210",
		Name:           "Ramesh",
		TotalPurchases: decimal.RequireFromString("400.00"),
		VisitCount:     2,
		LastVisit:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		LoyaltyPoints:  40,
	}}

	w := f.do(t, http.MethodGet, "/api/customers", "")

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "9876543210", list[0]["mobile"])
	assert.Equal(t, "400.00", list[0]["total_purchases"])
	assert.Equal(t, float64(40), list[0]["loyalty_points"])
}

func TestListReminders(t *testing.T) {
	f := newFixture()
	f.reminders.reminders = []reminder.Reminder{{
		ID:        "22222222-2222-2222-2222-222222222222",
		Title:     "order stock",
		DueDate:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
		Status:    reminder.StatusPending,
		CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}}

	w := f.do(t, http.MethodGet, "/api/reminders", "")

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "order stock", list[0]["title"])
	assert.Equal(t, "pending", list[0]["status"])
}

func TestCompleteReminder(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/reminders/22222222-2222-2222-2222-222222222222/complete", "")

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", f.reminders.updatedID)
}

func TestCompleteReminder_NotFound(t *testing.T) {
	f := newFixture()
	f.reminders.updateErr = reminder.ErrNotFound

	w := f.do(t, http.MethodPost, "/api/reminders/missing/complete", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummary(t *testing.T) {
	f := newFixture()
	f.invoices.summary = &invoice.SalesSummary{
		TodaySales:      decimal.RequireFromString("1250.50"),
		TodayBillCount:  7,
		PendingPayments: decimal.RequireFromString("300.00"),
		TotalSales:      decimal.RequireFromString("8000.00"),
	}
	f.customers.customers = []customer.Customer{{Mobile: "9876543210"}}
	f.reminders.reminders = []reminder.Reminder{
		{ID: "r1", Status: reminder.StatusPending},
		{ID: "r2", Status: reminder.StatusCompleted},
	}

	w := f.do(t, http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "1250.50", body["today_sales"])
	assert.Equal(t, float64(7), body["today_bill_count"])
	assert.Equal(t, "300.00", body["pending_payments"])
	assert.Equal(t, "8000.00", body["total_sales"])
	assert.Equal(t, float64(1), body["total_customers"])
	assert.Equal(t, float64(1), body["pending_reminders"])
}

func TestRepositoryErrorsAnswer500(t *testing.T) {
	f := newFixture()
	f.invoices.listErr = errors.New("connection refused")

	w := f.do(t, http.MethodGet, "/api/invoices", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "internal error", body["message"])
}
