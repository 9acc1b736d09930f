package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/customer"
)

const (
	upsertCustomerSQL = `INSERT INTO customers
		(mobile, name, total_purchases, visit_count, last_visit, loyalty_points)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mobile) DO UPDATE SET
			name = EXCLUDED.name,
			total_purchases = EXCLUDED.total_purchases,
			visit_count = EXCLUDED.visit_count,
			last_visit = EXCLUDED.last_visit,
			loyalty_points = EXCLUDED.loyalty_points`

	selectCustomerSQL = `SELECT mobile, name, total_purchases, visit_count, last_visit, loyalty_points
		FROM customers`

	getCustomerSQL   = selectCustomerSQL + ` WHERE mobile = $1`
	listCustomersSQL = selectCustomerSQL + ` ORDER BY last_visit DESC`

	countCustomersSQL = `SELECT COUNT(*) FROM customers`
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Upsert inserts or replaces the customer record keyed by mobile number.
func (r *CustomerRepository) Upsert(ctx context.Context, c *customer.Customer) error {
	_, err := r.pool.Exec(ctx, upsertCustomerSQL,
		c.Mobile, c.Name, c.TotalPurchases, c.VisitCount, c.LastVisit, c.LoyaltyPoints,
	)
	if err != nil {
		return errors.Wrapf(err, "upsert customer %q", c.Mobile)
	}
	return nil
}

// GetByMobile returns a customer by mobile number.
func (r *CustomerRepository) GetByMobile(ctx context.Context, mobile string) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerSQL, mobile)
	if err != nil {
		return nil, errors.Wrapf(err, "get customer %q", mobile)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get customer %q", mobile)
	}
	return &c, nil
}

// List returns all customers, most recently seen first.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return pgx.CollectRows(rows, scanCustomer)
}

// Count returns the number of known customers.
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, countCustomersSQL).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return n, nil
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.Mobile, &c.Name, &c.TotalPurchases, &c.VisitCount, &c.LastVisit, &c.LoyaltyPoints)
	return c, err
}
