package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// openStoreForIntegrationTest подключается к базе из OCS_POSTGRES_TEST_DSN,
// накатывает миграции и очищает таблицы. Без DSN тест пропускается.
func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("OCS_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("OCS_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	for _, table := range []string{"order_lines", "orders", "products", "customers"} {
		if _, err := store.DB().ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}

	return store
}
