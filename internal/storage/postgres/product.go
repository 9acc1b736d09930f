package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
)

const (
	listProductsSQL = `SELECT id, name, name_hi, category, unit, price
		FROM products ORDER BY id`

	getProductByIDSQL = `SELECT id, name, name_hi, category, unit, price
		FROM products WHERE id = $1`

	upsertProductSQL = `INSERT INTO products (id, name, name_hi, category, unit, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			name_hi = EXCLUDED.name_hi,
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			price = EXCLUDED.price`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the full catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get product %q", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %q", id)
	}
	return &p, nil
}

// UpsertBatch inserts or updates products in a single round trip. Used by the
// seed and ingest tools.
func (r *ProductRepository) UpsertBatch(ctx context.Context, products []catalog.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertProductSQL, p.ID, p.Name, p.NameHi, string(p.Category), p.Unit, p.Price)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range products {
		if _, err := results.Exec(); err != nil {
			return errors.Wrapf(err, "upsert product %q", products[i].ID)
		}
	}
	return results.Close()
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p        catalog.Product
		category string
	)
	err := row.Scan(&p.ID, &p.Name, &p.NameHi, &category, &p.Unit, &p.Price)
	p.Category = catalog.Category(category)
	return p, err
}
