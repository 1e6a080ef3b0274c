package memory_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/storage/memory"
)

func seedProducts(t *testing.T, repo domain.ProductRepository, products ...domain.Product) {
	t.Helper()
	for _, product := range products {
		if err := repo.Create(product); err != nil {
			t.Fatalf("seed product %s: %v", product.ID, err)
		}
	}
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo,
		domain.Product{ID: "p1", Name: "Widget", PriceMinor: 1000, Quantity: 5},
		domain.Product{ID: "p2", Name: "Gadget", PriceMinor: 250, Quantity: 2},
	)

	products, err := repo.FindAllByID([]string{"p1", "p2", "p1", "missing"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products (dedup, missing skipped), got %d", len(products))
	}
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo, domain.Product{ID: "p1", PriceMinor: 1000, Quantity: 5})

	err := repo.UpdateQuantity([]domain.RequestedLine{{ProductID: "p1", Qty: 3}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	product, err := repo.Get("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", product.Quantity)
	}
}

func TestProductRepository_UpdateQuantityInsufficient(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo, domain.Product{ID: "p1", PriceMinor: 1000, Quantity: 5})

	err := repo.UpdateQuantity([]domain.RequestedLine{{ProductID: "p1", Qty: 9}})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	product, _ := repo.Get("p1")
	if product.Quantity != 5 {
		t.Fatalf("stock must be unchanged after failed decrement, got %d", product.Quantity)
	}
}

func TestProductRepository_UpdateQuantityAllOrNothing(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo,
		domain.Product{ID: "p1", PriceMinor: 1000, Quantity: 5},
		domain.Product{ID: "p2", PriceMinor: 250, Quantity: 1},
	)

	err := repo.UpdateQuantity([]domain.RequestedLine{
		{ProductID: "p1", Qty: 2},
		{ProductID: "p2", Qty: 3},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	p1, _ := repo.Get("p1")
	if p1.Quantity != 5 {
		t.Fatalf("p1 must be untouched after failed batch, got %d", p1.Quantity)
	}
}

func TestProductRepository_UpdateQuantityRepeatedProduct(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo, domain.Product{ID: "p1", PriceMinor: 1000, Quantity: 5})

	// Один товар в двух позициях: списания суммируются.
	err := repo.UpdateQuantity([]domain.RequestedLine{
		{ProductID: "p1", Qty: 2},
		{ProductID: "p1", Qty: 2},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	product, _ := repo.Get("p1")
	if product.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", product.Quantity)
	}

	err = repo.UpdateQuantity([]domain.RequestedLine{
		{ProductID: "p1", Qty: 1},
		{ProductID: "p1", Qty: 1},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("summed decrement must exceed stock, got %v", err)
	}
}

func TestProductRepository_UpdateQuantityUnknownProduct(t *testing.T) {
	repo := memory.NewProductRepository()

	err := repo.UpdateQuantity([]domain.RequestedLine{{ProductID: "ghost", Qty: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_ConcurrentDecrements(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo, domain.Product{ID: "p1", PriceMinor: 1000, Quantity: 10})

	var wg sync.WaitGroup
	okCh := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.UpdateQuantity([]domain.RequestedLine{{ProductID: "p1", Qty: 1}})
			okCh <- err == nil
		}()
	}
	wg.Wait()
	close(okCh)

	succeeded := 0
	for ok := range okCh {
		if ok {
			succeeded++
		}
	}
	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successful decrements, got %d", succeeded)
	}

	product, _ := repo.Get("p1")
	if product.Quantity != 0 {
		t.Fatalf("expected stock drained to 0, got %d", product.Quantity)
	}
}
