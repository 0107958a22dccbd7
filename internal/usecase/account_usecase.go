package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// AccountUseCase manages the user's money holders.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	notifier    Notifier
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	notifier Notifier,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		notifier:    notifier,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID      string
	Name        string
	Kind        domain.AccountKind
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
}

// Create adds an account with an opening balance.
func (uc *AccountUseCase) Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.ErrInvalidAccountKind
	}

	if input.Balance.IsNegative() && !input.Kind.AllowsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Name:        input.Name,
		Kind:        input.Kind,
		Balance:     input.Balance,
		CreditLimit: input.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.AccountsChanged(input.UserID)
		uc.notifier.DashboardChanged(input.UserID)
	}

	return account, nil
}

// Get retrieves an account by ID.
func (uc *AccountUseCase) Get(ctx context.Context, userID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, userID, id)
}

// List returns all accounts for a user.
func (uc *AccountUseCase) List(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, userID)
}

// UpdateAccountInput represents fields that may be renamed or retyped.
// Balance changes go through the ledger, never through here.
type UpdateAccountInput struct {
	Name        *string
	Kind        *domain.AccountKind
	CreditLimit *decimal.Decimal
	UserID      string
	AccountID   string
}

// Update changes account metadata.
func (uc *AccountUseCase) Update(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	if input.Name == nil && input.Kind == nil && input.CreditLimit == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	account, err := uc.accountRepo.GetByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = *input.Name
	}

	if input.Kind != nil {
		if !input.Kind.IsValid() {
			return nil, domain.ErrInvalidAccountKind
		}
		account.Kind = *input.Kind
	}

	if input.CreditLimit != nil {
		account.CreditLimit = *input.CreditLimit
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.AccountsChanged(input.UserID)
	}

	return account, nil
}

// Delete removes the account and every transaction written against it
// in one database transaction. Transfers referencing the account keep
// their rows for the surviving side.
func (uc *AccountUseCase) Delete(ctx context.Context, userID, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the row so a concurrent posting cannot slip between the
	// transaction purge and the account delete.
	if _, err := uc.accountRepo.GetForUpdate(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := uc.txnRepo.DeleteByAccount(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.notifier != nil {
		uc.notifier.AccountsChanged(userID)
		uc.notifier.TransactionsChanged(userID)
		uc.notifier.DashboardChanged(userID)
	}

	return nil
}
