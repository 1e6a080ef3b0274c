package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
)

func TestIsValidationError(t *testing.T) {
	validation := []error{
		domain.ErrCustomerNotFound,
		domain.ErrProductNotFound,
		domain.ErrInsufficientStock,
		domain.ErrEmptyOrder,
		domain.ErrQuantityInvalid,
	}
	for _, err := range validation {
		if !domain.IsValidationError(err) {
			t.Fatalf("expected %v to be a validation error", err)
		}
	}

	if domain.IsValidationError(domain.ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound must not count as validation error")
	}
	if domain.IsValidationError(errors.New("connection refused")) {
		t.Fatal("infrastructure errors must not count as validation errors")
	}
}

func TestIsValidationError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: product p42", domain.ErrProductNotFound)
	if !domain.IsValidationError(wrapped) {
		t.Fatal("wrapped validation error must still be recognized")
	}
	if !errors.Is(wrapped, domain.ErrProductNotFound) {
		t.Fatal("wrapped error must match its sentinel")
	}
}
