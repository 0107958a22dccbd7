package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves funds from one account to another, or out of the
// system when no destination is given ("pay out"). It produces one
// debit transaction row, plus one credit row when a destination exists,
// both referencing the transfer's ID.
type Transfer struct {
	ID            string
	UserID        string
	FromAccountID string
	ToAccountID   *string
	Amount        decimal.Decimal
	Note          string
	CreatedAt     time.Time
}

// Validate checks the transfer request shape.
func (t *Transfer) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.ToAccountID != nil && *t.ToAccountID == t.FromAccountID {
		return ErrSameAccount
	}

	return nil
}

// TwoSided reports whether the transfer credits a tracked destination.
func (t *Transfer) TwoSided() bool {
	return t.ToAccountID != nil && *t.ToAccountID != ""
}
