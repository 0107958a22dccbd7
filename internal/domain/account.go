package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account.
type AccountKind string

const (
	AccountKindCash   AccountKind = "cash"
	AccountKindBank   AccountKind = "bank"
	AccountKindWallet AccountKind = "wallet"
	AccountKindCredit AccountKind = "credit"
	AccountKindLoan   AccountKind = "loan"
)

var validAccountKinds = map[AccountKind]bool{
	AccountKindCash:   true,
	AccountKindBank:   true,
	AccountKindWallet: true,
	AccountKindCredit: true,
	AccountKindLoan:   true,
}

// IsValid checks if the kind is a known account kind.
func (k AccountKind) IsValid() bool {
	return validAccountKinds[k]
}

// AllowsNegative reports whether the kind may carry a negative balance.
// Credit and loan accounts track owed money; the rest never overdraw.
func (k AccountKind) AllowsNegative() bool {
	return k == AccountKindCredit || k == AccountKindLoan
}

// Account holds a user's balance. The balance is mutated only by the
// ledger and transfer use cases, under a row lock.
type Account struct {
	ID          string
	UserID      string
	Name        string
	Kind        AccountKind
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDebit checks whether amount can be taken from the account.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() && !a.Kind.AllowsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Apply returns the balance after adding a signed transaction amount.
func (a *Account) Apply(signedAmount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(signedAmount)
}
