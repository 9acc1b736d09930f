// Command seed-catalog loads the built-in product reference data into
// PostgreSQL. It is idempotent: existing products are updated in place.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mpsinghmandawariya/bharat-agent/db"
	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/storage/postgres"
)

type productJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	NameHi   string          `json:"name_hi"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "products JSON file (embedded seed data when empty)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	data := db.SeedProducts
	if productsFile != "" {
		var err error
		data, err = os.ReadFile(productsFile)
		if err != nil {
			return errors.Wrapf(err, "read %s", productsFile)
		}
	}

	var raw []productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "parse products")
	}

	products := make([]catalog.Product, len(raw))
	for i, p := range raw {
		products[i] = catalog.Product{
			ID:       p.ID,
			Name:     p.Name,
			NameHi:   p.NameHi,
			Category: catalog.Category(p.Category),
			Unit:     p.Unit,
			Price:    p.Price,
		}
	}

	slog.Info("connecting to database")
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewProductRepository(pool)
	if err := repo.UpsertBatch(ctx, products); err != nil {
		return errors.Wrap(err, "upsert products")
	}

	slog.Info("seeded products", slog.Int("count", len(products)))
	return nil
}
