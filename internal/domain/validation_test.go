package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	if err := ValidateName("Savings"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateName("   "); !errors.Is(err, ErrInvalidName) {
		t.Errorf("blank name: got %v, want ErrInvalidName", err)
	}

	if err := ValidateName(strings.Repeat("x", MaxNameLength+1)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("long name: got %v, want ErrInvalidName", err)
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromFloat(40.50)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: got %v, want ErrInvalidAmount", err)
	}

	huge, _ := decimal.NewFromString("1000000000001")
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("huge amount: got %v, want ErrAmountTooLarge", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, bad := range []string{"", "nope", "a@b", "user@.com"} {
		if err := ValidateEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("%q: got %v, want ErrInvalidEmail", bad, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Errorf("short password: got %v, want ErrPasswordTooWeak", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 20 || offset != 0 {
		t.Errorf("defaults: got (%d, %d), want (20, 0)", limit, offset)
	}

	limit, _ = ValidatePagination(500, 0)
	if limit != 100 {
		t.Errorf("clamp: got %d, want 100", limit)
	}
}
