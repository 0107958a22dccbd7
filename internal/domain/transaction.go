package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction-carrying type of a ledger row.
type TransactionKind string

const (
	TransactionKindIncome     TransactionKind = "income"
	TransactionKindExpense    TransactionKind = "expense"
	TransactionKindBill       TransactionKind = "bill"
	TransactionKindTransfer   TransactionKind = "transfer"
	TransactionKindInvestment TransactionKind = "investment"
)

var validTransactionKinds = map[TransactionKind]bool{
	TransactionKindIncome:     true,
	TransactionKindExpense:    true,
	TransactionKindBill:       true,
	TransactionKindTransfer:   true,
	TransactionKindInvestment: true,
}

// IsValid checks if the kind is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return validTransactionKinds[k]
}

// IsDebit reports whether the kind takes money out of its account.
// Transfer rows carry their own sign and are not covered here.
func (k TransactionKind) IsDebit() bool {
	switch k {
	case TransactionKindExpense, TransactionKindBill, TransactionKindInvestment:
		return true
	}
	return false
}

// Transaction is one immutable audit row. Amount is signed uniformly
// across all kinds: credits (income, transfer-in) are positive, debits
// (expense, bill, investment, transfer-out) are negative. Posting a row
// applies balance += Amount; deleting it applies balance -= Amount.
type Transaction struct {
	ID          string
	UserID      string
	AccountID   string
	CategoryID  *string
	Kind        TransactionKind
	Amount      decimal.Decimal
	Note        string
	ReferenceID *string
	CreatedAt   time.Time
}

// SignAmount converts a positive magnitude to the stored signed amount
// for the given kind.
func SignAmount(kind TransactionKind, magnitude decimal.Decimal) decimal.Decimal {
	if kind.IsDebit() {
		return magnitude.Neg()
	}
	return magnitude
}
