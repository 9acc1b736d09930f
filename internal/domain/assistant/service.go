// Package assistant orchestrates one chat turn: classify the message, run the
// matching pipeline, and produce a tagged Reply. It holds no session state;
// each message is processed fully before the next is accepted.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/customer"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/extract"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/intent"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/invoice"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/reminder"
)

const (
	helpMsg     = "मैं आपकी मदद करने के लिए तैयार हूं। आप बिलिंग, रिमाइंडर, या सेल्स की जानकारी के लिए पूछ सकते हैं।"
	rephraseMsg = "कृपया सही फॉर्मेट में बोलें: \"2 किलो चावल 60 रुपये\""
	reminderMsg = "रिमाइंडर सेव हो गया है।"
)

// Service runs the billing-assistant pipeline against injected collaborators.
// The catalog is read-only; the repositories are the only side effects.
type Service struct {
	catalog   *catalog.Catalog
	engine    *invoice.Engine
	invoices  invoice.Repository
	customers customer.Repository
	reminders reminder.Repository
	now       func() time.Time
}

// NewService creates an assistant Service.
func NewService(
	cat *catalog.Catalog,
	engine *invoice.Engine,
	invoices invoice.Repository,
	customers customer.Repository,
	reminders reminder.Repository,
) *Service {
	return &Service{
		catalog:   cat,
		engine:    engine,
		invoices:  invoices,
		customers: customers,
		reminders: reminders,
		now:       time.Now,
	}
}

// HandleMessage processes one chat message and returns the assistant's reply.
// Anomalies in the message itself (unparseable segments, unknown products)
// degrade to notices or fallback items, never errors; the returned error is
// reserved for repository failures.
func (s *Service) HandleMessage(ctx context.Context, text string) (*Reply, error) {
	switch intent.Classify(text) {
	case intent.Billing:
		return s.handleBilling(text)
	case intent.Reminder:
		return s.handleReminder(ctx, text)
	case intent.SalesQuery:
		return s.handleSalesQuery(ctx)
	default:
		return &Reply{Kind: ReplyText, Text: helpMsg}, nil
	}
}

// handleBilling extracts items, resolves them against the catalog, and
// computes a draft invoice. The draft is returned for confirmation; nothing
// is persisted here.
func (s *Service) handleBilling(text string) (*Reply, error) {
	raw := extract.Extract(text)
	if len(raw) == 0 {
		return &Reply{Kind: ReplyNotice, Text: rephraseMsg}, nil
	}

	items := make([]invoice.Item, len(raw))
	for i, r := range raw {
		items[i] = invoice.Item{
			Raw:     r,
			Product: s.catalog.Resolve(r.Name),
		}
	}

	inv, skipped := s.engine.Compute(items)
	if len(inv.Items) == 0 {
		return &Reply{Kind: ReplyNotice, Text: rephraseMsg}, nil
	}

	return &Reply{
		Kind:    ReplyDraftInvoice,
		Text:    draftSummary(inv, skipped),
		Invoice: inv,
	}, nil
}

// ConfirmInvoice persists a confirmed draft unchanged and, when a customer
// mobile is attached, folds the purchase into that customer's record.
func (s *Service) ConfirmInvoice(ctx context.Context, inv *invoice.Invoice) (*Reply, error) {
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, errors.Wrap(err, "save invoice")
	}

	if inv.CustomerMobile != "" {
		if err := s.recordCustomerPurchase(ctx, inv); err != nil {
			return nil, err
		}
	}

	return &Reply{
		Kind:    ReplyInvoiceConfirmed,
		Text:    fmt.Sprintf("बिल सेव हो गया! Invoice Number: %s", inv.Number),
		Invoice: inv,
	}, nil
}

func (s *Service) recordCustomerPurchase(ctx context.Context, inv *invoice.Invoice) error {
	c, err := s.customers.GetByMobile(ctx, inv.CustomerMobile)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		c = &customer.Customer{
			Mobile: inv.CustomerMobile,
			Name:   inv.CustomerName,
		}
	case err != nil:
		return errors.Wrap(err, "get customer")
	}

	c.RecordPurchase(inv.TotalAmount, inv.CreatedAt)
	if err := s.customers.Upsert(ctx, c); err != nil {
		return errors.Wrap(err, "upsert customer")
	}
	return nil
}

func (s *Service) handleReminder(ctx context.Context, text string) (*Reply, error) {
	r := reminder.FromMessage(text, s.now())
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, errors.Wrap(err, "save reminder")
	}
	return &Reply{Kind: ReplyNotice, Text: reminderMsg}, nil
}

func (s *Service) handleSalesQuery(ctx context.Context) (*Reply, error) {
	summary, err := s.invoices.SalesSummary(ctx, s.now())
	if err != nil {
		return nil, errors.Wrap(err, "sales summary")
	}

	text := fmt.Sprintf(
		"आज की बिक्री: ₹%s\nआज के बिल: %d\nकुल बिक्री: ₹%s",
		summary.TodaySales.StringFixed(2),
		summary.TodayBillCount,
		summary.TotalSales.StringFixed(2),
	)
	return &Reply{Kind: ReplyText, Text: text}, nil
}

// draftSummary renders the per-line breakdown and totals the cashier reads
// back to the customer before confirming.
func draftSummary(inv *invoice.Invoice, skipped []string) string {
	var b strings.Builder
	b.WriteString("बिल तैयार है:\n\n")
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "%s %s %s - ₹%s\n",
			item.Quantity.String(), item.Unit, item.ProductName,
			item.TotalPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%s\nGST: ₹%s\nTotal: ₹%s",
		inv.Subtotal.StringFixed(2),
		inv.TotalGST.StringFixed(2),
		inv.TotalAmount.StringFixed(2))
	if len(skipped) > 0 {
		fmt.Fprintf(&b, "\n\nछोड़े गए आइटम: %s", strings.Join(skipped, ", "))
	}
	b.WriteString("\n\nक्या यह सही है? \"हाँ\" बोलें कन्फर्म करने के लिए।")
	return b.String()
}
