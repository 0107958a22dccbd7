package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType is a fixed catalog entry.
type InvestmentType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// InvestmentTypes is the supported catalog.
var InvestmentTypes = []InvestmentType{
	{ID: "stocks", Name: "Stocks", Icon: "chart-line"},
	{ID: "mutual_funds", Name: "Mutual Funds", Icon: "chart-pie"},
	{ID: "gold", Name: "Gold", Icon: "coins"},
	{ID: "crypto", Name: "Crypto", Icon: "bitcoin-sign"},
	{ID: "fd", Name: "Fixed Deposit", Icon: "building-columns"},
}

// ValidInvestmentType checks the catalog for id.
func ValidInvestmentType(id string) bool {
	_, ok := InvestmentTypeByID(id)
	return ok
}

// InvestmentTypeByID looks up a catalog entry.
func InvestmentTypeByID(id string) (InvestmentType, bool) {
	for _, t := range InvestmentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return InvestmentType{}, false
}

// Investment is an expense-like debit with its own record, mirrored by
// one transaction of kind investment referencing it.
type Investment struct {
	ID             string
	UserID         string
	AccountID      string
	InvestmentType string
	Amount         decimal.Decimal
	Note           string
	CreatedAt      time.Time
}
