package domain

import "time"

// CategoryKind groups categories by the transaction kind they label.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindBill    CategoryKind = "bill"
)

// IsValid checks if the kind is a known category kind.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome || k == CategoryKindBill
}

// Category labels transactions. Deleting a category leaves historical
// transactions in place with their category reference nulled.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Icon      string
	Kind      CategoryKind
	CreatedAt time.Time
}

// DefaultCategories are seeded for every new user.
func DefaultCategories() []Category {
	return []Category{
		{Name: "General Expense", Icon: "receipt", Kind: CategoryKindExpense},
		{Name: "General Income", Icon: "money-bill-wave", Kind: CategoryKindIncome},
		{Name: "General Bill", Icon: "file-invoice-dollar", Kind: CategoryKindBill},
	}
}
