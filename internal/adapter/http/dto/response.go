package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse represents the authenticated identity.
type SessionResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	SharedAccess bool   `json:"shared_access"`
}

// SessionFromDomain converts a session to a response.
func SessionFromDomain(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		UserID:       s.UserID,
		Name:         s.Name,
		Email:        s.Email,
		SharedAccess: s.SharedAccess,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Kind:        string(a.Kind),
		Balance:     a.Balance,
		CreditLimit: a.CreditLimit,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// GroupedCategoriesResponse groups categories by kind.
type GroupedCategoriesResponse struct {
	Expense []*CategoryResponse `json:"expense"`
	Income  []*CategoryResponse `json:"income"`
	Bill    []*CategoryResponse `json:"bill"`
}

// GroupedCategoriesFromUseCase converts the grouped listing.
func GroupedCategoriesFromUseCase(g *usecase.GroupedCategories) *GroupedCategoriesResponse {
	return &GroupedCategoriesResponse{
		Expense: CategoriesFromDomain(g.Expense),
		Income:  CategoriesFromDomain(g.Income),
		Bill:    CategoriesFromDomain(g.Bill),
	}
}

// TransactionResponse represents a ledger entry in API responses.
// Amount keeps its stored sign: income positive, outflows negative.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Kind:        string(t.Kind),
		Amount:      t.Amount,
		Note:        t.Note,
		ReferenceID: t.ReferenceID,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   *string         `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// InvestmentResponse represents an investment in API responses.
type InvestmentResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvestmentFromDomain converts a domain investment to a response.
func InvestmentFromDomain(inv *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:        inv.ID,
		AccountID: inv.AccountID,
		Type:      inv.InvestmentType,
		Amount:    inv.Amount,
		Note:      inv.Note,
		CreatedAt: inv.CreatedAt,
	}
}

// InvestmentsFromDomain converts domain investments to responses.
func InvestmentsFromDomain(investments []*domain.Investment) []*InvestmentResponse {
	result := make([]*InvestmentResponse, len(investments))
	for i, inv := range investments {
		result[i] = InvestmentFromDomain(inv)
	}
	return result
}

// AccessRequestResponse represents a pairing request in API responses.
// The code is never included: it travels only over the owner's
// websocket.
type AccessRequestResponse struct {
	RequestID string    `json:"request_id"`
	Approved  bool      `json:"approved"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessRequestFromDomain converts a pairing request to a response.
func AccessRequestFromDomain(req *domain.AccessGrantRequest) *AccessRequestResponse {
	return &AccessRequestResponse{
		RequestID: req.ID,
		Approved:  req.Approved,
		ExpiresAt: req.ExpiresAt,
	}
}

// ProfileResponse represents the user profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileFromDomain converts a user to a profile response.
func ProfileFromDomain(u *domain.User) *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NotificationResponse represents a feed item.
type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Icon      string         `json:"icon"`
	Meta      map[string]any `json:"meta,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationsFromDomain converts feed items to responses.
func NotificationsFromDomain(items []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, len(items))
	for i, n := range items {
		result[i] = &NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Icon:      n.Icon,
			Meta:      n.Meta,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return result
}

// ExportResponse is the portable snapshot of a user's data.
type ExportResponse struct {
	ExportedAt   time.Time              `json:"exported_at"`
	Accounts     []*AccountResponse     `json:"accounts"`
	Categories   []*CategoryResponse    `json:"categories"`
	Transactions []*TransactionResponse `json:"transactions"`
	Transfers    []*TransferResponse    `json:"transfers"`
	Investments  []*InvestmentResponse  `json:"investments"`
	Summary      ExportSummary          `json:"summary"`
}

// ExportSummary counts the exported rows.
type ExportSummary struct {
	Accounts     int `json:"accounts"`
	Categories   int `json:"categories"`
	Transactions int `json:"transactions"`
	Transfers    int `json:"transfers"`
	Investments  int `json:"investments"`
}

// ExportFromUseCase converts the export snapshot.
func ExportFromUseCase(data *usecase.UserDataExport) *ExportResponse {
	return &ExportResponse{
		ExportedAt:   time.Now().UTC(),
		Accounts:     AccountsFromDomain(data.Accounts),
		Categories:   CategoriesFromDomain(data.Categories),
		Transactions: TransactionsFromDomain(data.Transactions),
		Transfers:    TransfersFromDomain(data.Transfers),
		Investments:  InvestmentsFromDomain(data.Investments),
		Summary: ExportSummary{
			Accounts:     len(data.Accounts),
			Categories:   len(data.Categories),
			Transactions: len(data.Transactions),
			Transfers:    len(data.Transfers),
			Investments:  len(data.Investments),
		},
	}
}
