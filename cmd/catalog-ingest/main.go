// Command catalog-ingest bulk-imports a distributor price list into the
// product catalog. The input is a gzipped CSV with columns
// id,name,name_hi,category,unit,price; exports commonly repeat item codes
// across sections, so a bloom filter prefilters duplicates in one streaming
// pass (first occurrence wins).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mpsinghmandawariya/bharat-agent/internal/domain/catalog"
	"github.com/mpsinghmandawariya/bharat-agent/internal/storage/postgres"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
	batchSize     = 500
)

var validCategories = map[string]struct{}{
	string(catalog.CategoryFood):    {},
	string(catalog.CategoryGeneral): {},
	string(catalog.CategoryLuxury):  {},
}

func main() {
	var (
		dataFile    string
		databaseURL string
	)

	flag.StringVar(&dataFile, "data-file", "", "gzipped CSV price list (id,name,name_hi,category,unit,price)")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if dataFile == "" {
		slog.Error("data file is required: set --data-file")
		os.Exit(1)
	}
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataFile, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataFile, databaseURL string) error {
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	repo := postgres.NewProductRepository(pool)

	f, err := os.Open(dataFile)
	if err != nil {
		return errors.Wrapf(err, "open %s", dataFile)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	products := make(chan catalog.Product, batchSize)

	g, ctx := errgroup.WithContext(ctx)

	// Producer: stream CSV rows, drop malformed rows and duplicate codes.
	g.Go(func() error {
		defer close(products)
		return parseRows(ctx, gz, products)
	})

	// Consumer: batch upserts.
	var total int
	g.Go(func() error {
		batch := make([]catalog.Product, 0, batchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := repo.UpsertBatch(ctx, batch); err != nil {
				return err
			}
			total += len(batch)
			batch = batch[:0]
			return nil
		}

		for p := range products {
			batch = append(batch, p)
			if len(batch) == batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("ingested products", slog.Int("count", total))
	return nil
}

// parseRows streams CSV rows into out. Rows with a wrong column count, an
// unknown category, a non-positive price, or an already-seen item code are
// counted and skipped.
func parseRows(ctx context.Context, r io.Reader, out chan<- catalog.Product) error {
	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.ReuseRecord = true

	var line, skipped int
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "read csv line %d", line+1)
		}
		line++

		// Header row.
		if line == 1 && record[0] == "id" {
			continue
		}

		id := record[0]
		if id == "" || seen.TestString(id) {
			skipped++
			continue
		}

		if _, ok := validCategories[record[3]]; !ok {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(record[5])
		if err != nil || !price.IsPositive() {
			skipped++
			continue
		}

		seen.AddString(id)

		select {
		case out <- catalog.Product{
			ID:       id,
			Name:     record[1],
			NameHi:   record[2],
			Category: catalog.Category(record[3]),
			Unit:     record[4],
			Price:    price,
		}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	slog.Info("parsed price list", slog.Int("rows", line), slog.Int("skipped", skipped))
	return nil
}
