package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/storage/memory"
)

func TestCustomerRepository_CreateFind(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := domain.Customer{ID: "c1", Name: "Alice", CreatedAt: time.Now().UTC()}

	if err := repo.Create(customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByID("c1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Name != "Alice" {
		t.Fatalf("expected name Alice, got %s", found.Name)
	}
}

func TestCustomerRepository_FindMissing(t *testing.T) {
	repo := memory.NewCustomerRepository()

	_, err := repo.FindByID("nope")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := domain.Customer{ID: "c1", Name: "Alice"}

	if err := repo.Create(customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(customer); !errors.Is(err, domain.ErrCustomerExists) {
		t.Fatalf("expected ErrCustomerExists, got %v", err)
	}
}
