package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

// fixture — формат файла с тестовыми данными.
type fixture struct {
	Customers []customerFixture `json:"customers"`
	Products  []productFixture  `json:"products"`
}

type customerFixture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

func main() {
	var (
		path string
		dsn  string
	)

	flag.StringVar(&path, "file", "fixtures.json", "path to the fixture JSON file")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: OCS_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("OCS_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("OCS_POSTGRES_DSN (or -dsn) is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fail("read fixture file: %v", err)
	}
	fx, err := parseFixture(data)
	if err != nil {
		fail("parse fixture file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		fail("ensure schema: %v", err)
	}

	customers := postgres.NewCustomerRepository(store)
	products := postgres.NewProductRepository(store)

	seeded, skipped := 0, 0
	for _, c := range fx.Customers {
		err := customers.Create(domain.Customer{ID: c.ID, Name: c.Name})
		switch {
		case err == nil:
			seeded++
		case errors.Is(err, domain.ErrCustomerExists):
			skipped++
		default:
			fail("seed customer %s: %v", c.ID, err)
		}
	}
	for _, p := range fx.Products {
		err := products.Create(domain.Product{
			ID:         p.ID,
			Name:       p.Name,
			PriceMinor: p.PriceMinor,
			Quantity:   p.Quantity,
		})
		switch {
		case err == nil:
			seeded++
		case errors.Is(err, domain.ErrProductExists):
			skipped++
		default:
			fail("seed product %s: %v", p.ID, err)
		}
	}

	fmt.Printf("seed ok: created=%d skipped=%d\n", seeded, skipped)
}

// parseFixture разбирает и валидирует файл с данными.
func parseFixture(data []byte) (fixture, error) {
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fixture{}, err
	}
	for _, c := range fx.Customers {
		if c.ID == "" || c.Name == "" {
			return fixture{}, fmt.Errorf("customer requires id and name: %+v", c)
		}
	}
	for _, p := range fx.Products {
		if p.ID == "" || p.Name == "" {
			return fixture{}, fmt.Errorf("product requires id and name: %+v", p)
		}
		if p.PriceMinor < 0 || p.Quantity < 0 {
			return fixture{}, fmt.Errorf("product %s: price and quantity must be non-negative", p.ID)
		}
	}
	return fx, nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
