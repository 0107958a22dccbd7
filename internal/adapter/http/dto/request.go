package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// SignupRequest registers a new user.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.SignupInput {
	return usecase.SignupInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateAccountRequest creates an account with an opening balance.
type CreateAccountRequest struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:      userID,
		Name:        r.Name,
		Kind:        domain.AccountKind(r.Kind),
		Balance:     r.Balance,
		CreditLimit: r.CreditLimit,
	}
}

// UpdateAccountRequest edits account metadata. Nil fields are left
// unchanged.
type UpdateAccountRequest struct {
	Name        *string          `json:"name"`
	Kind        *string          `json:"kind"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(userID, accountID string) usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		UserID:      userID,
		AccountID:   accountID,
		Name:        r.Name,
		CreditLimit: r.CreditLimit,
	}
	if r.Kind != nil {
		kind := domain.AccountKind(*r.Kind)
		input.Kind = &kind
	}
	return input
}

// CreateCategoryRequest creates a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"type"`
	Icon string `json:"icon"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(userID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		UserID: userID,
		Name:   r.Name,
		Kind:   domain.CategoryKind(r.Kind),
		Icon:   r.Icon,
	}
}

// UpdateCategoryRequest renames a category or changes its icon.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput(userID, categoryID string) usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       r.Name,
		Icon:       r.Icon,
	}
}

// PostTransactionRequest records an expense, income or bill payment.
// Amount is a positive magnitude; the server signs it by kind.
type PostTransactionRequest struct {
	AccountID  string          `json:"account_id"`
	CategoryID *string         `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

// ToUseCaseInput converts to use case input for the given kind.
func (r *PostTransactionRequest) ToUseCaseInput(userID string, kind domain.TransactionKind) usecase.PostEntryInput {
	return usecase.PostEntryInput{
		UserID:     userID,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Kind:       kind,
		Amount:     r.Amount,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
	}
}

// UpdateTransactionRequest edits transaction metadata. Edits never
// re-balance accounts.
type UpdateTransactionRequest struct {
	Note       *string          `json:"note"`
	Amount     *decimal.Decimal `json:"amount"`
	CategoryID *string          `json:"category_id"`
	AccountID  *string          `json:"account_id"`
	OccurredAt *time.Time       `json:"occurred_at"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(userID, id string) usecase.UpdateTransactionInput {
	return usecase.UpdateTransactionInput{
		UserID:     userID,
		ID:         id,
		Note:       r.Note,
		Amount:     r.Amount,
		CategoryID: r.CategoryID,
		AccountID:  r.AccountID,
		OccurredAt: r.OccurredAt,
	}
}

// CreateTransferRequest moves money between accounts. A nil
// to_account_id pays out of the tracked system.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   *string         `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	OccurredAt    *time.Time      `json:"occurred_at"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(userID string) usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		UserID:        userID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Note:          r.Note,
		OccurredAt:    r.OccurredAt,
	}
}

// CreateInvestmentRequest debits an account into an investment.
type CreateInvestmentRequest struct {
	AccountID string          `json:"account_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvestmentRequest) ToUseCaseInput(userID string) usecase.CreateInvestmentInput {
	return usecase.CreateInvestmentInput{
		UserID:    userID,
		AccountID: r.AccountID,
		Type:      r.Type,
		Amount:    r.Amount,
		Note:      r.Note,
	}
}

// AccessRequestRequest starts the pairing handshake against an owner's
// account.
type AccessRequestRequest struct {
	OwnerID    string `json:"owner_id"`
	AccountID  string `json:"account_id"`
	DeviceInfo string `json:"device_info"`
}

// ToUseCaseInput converts to use case input.
func (r *AccessRequestRequest) ToUseCaseInput() usecase.RequestAccessInput {
	return usecase.RequestAccessInput{
		OwnerID:    r.OwnerID,
		AccountID:  r.AccountID,
		DeviceInfo: r.DeviceInfo,
	}
}

// AccessApproveRequest resolves a pending pairing request. Approve
// false rejects it and drops the record.
type AccessApproveRequest struct {
	RequestID string `json:"request_id"`
	Approve   bool   `json:"approve"`
}

// AccessVerifyRequest redeems the one-time code.
type AccessVerifyRequest struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
}

// UpdateProfileRequest edits the user's name or email.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ChangePasswordRequest rotates the password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ImportRequest carries a previously exported snapshot back in. Row
// shapes match the export format.
type ImportRequest struct {
	Accounts     []*AccountResponse     `json:"accounts"`
	Categories   []*CategoryResponse    `json:"categories"`
	Transactions []*TransactionResponse `json:"transactions"`
	Transfers    []*TransferResponse    `json:"transfers"`
	Investments  []*InvestmentResponse  `json:"investments"`
}

// ToUseCaseInput converts the snapshot to domain rows. Ownership is not
// taken from the payload: the importer forces its own user id.
func (r *ImportRequest) ToUseCaseInput() *usecase.UserDataExport {
	data := &usecase.UserDataExport{
		Accounts:     make([]*domain.Account, len(r.Accounts)),
		Categories:   make([]*domain.Category, len(r.Categories)),
		Transactions: make([]*domain.Transaction, len(r.Transactions)),
		Transfers:    make([]*domain.Transfer, len(r.Transfers)),
		Investments:  make([]*domain.Investment, len(r.Investments)),
	}

	for i, a := range r.Accounts {
		data.Accounts[i] = &domain.Account{
			ID:          a.ID,
			Name:        a.Name,
			Kind:        domain.AccountKind(a.Kind),
			Balance:     a.Balance,
			CreditLimit: a.CreditLimit,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		}
	}
	for i, c := range r.Categories {
		data.Categories[i] = &domain.Category{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			Kind:      domain.CategoryKind(c.Kind),
			CreatedAt: c.CreatedAt,
		}
	}
	for i, t := range r.Transactions {
		data.Transactions[i] = &domain.Transaction{
			ID:          t.ID,
			AccountID:   t.AccountID,
			CategoryID:  t.CategoryID,
			Kind:        domain.TransactionKind(t.Kind),
			Amount:      t.Amount,
			Note:        t.Note,
			ReferenceID: t.ReferenceID,
			CreatedAt:   t.CreatedAt,
		}
	}
	for i, t := range r.Transfers {
		data.Transfers[i] = &domain.Transfer{
			ID:            t.ID,
			FromAccountID: t.FromAccountID,
			ToAccountID:   t.ToAccountID,
			Amount:        t.Amount,
			Note:          t.Note,
			CreatedAt:     t.CreatedAt,
		}
	}
	for i, inv := range r.Investments {
		data.Investments[i] = &domain.Investment{
			ID:             inv.ID,
			AccountID:      inv.AccountID,
			InvestmentType: inv.Type,
			Amount:         inv.Amount,
			Note:           inv.Note,
			CreatedAt:      inv.CreatedAt,
		}
	}
	return data
}
