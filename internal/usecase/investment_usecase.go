package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// InvestmentUseCase records money moved out of an account into an
// investment product. The account side is a regular debit; the
// investment row keeps the product detail.
type InvestmentUseCase struct {
	txManager      TransactionManager
	accountRepo    AccountRepository
	investmentRepo InvestmentRepository
	txnRepo        TransactionRepository
	notifications  NotificationRepository
	notifier       Notifier
	idGen          IDGenerator
}

// NewInvestmentUseCase creates a new InvestmentUseCase.
func NewInvestmentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	investmentRepo InvestmentRepository,
	txnRepo TransactionRepository,
	notifications NotificationRepository,
	notifier Notifier,
	idGen IDGenerator,
) *InvestmentUseCase {
	return &InvestmentUseCase{
		txManager:      txManager,
		accountRepo:    accountRepo,
		investmentRepo: investmentRepo,
		txnRepo:        txnRepo,
		notifications:  notifications,
		notifier:       notifier,
		idGen:          idGen,
	}
}

// CreateInvestmentInput represents input for recording an investment.
type CreateInvestmentInput struct {
	UserID    string
	AccountID string
	Type      string
	Note      string
	Amount    decimal.Decimal
}

// Create debits the funding account and records the investment.
func (uc *InvestmentUseCase) Create(ctx context.Context, input CreateInvestmentInput) (*domain.Investment, error) {
	if !domain.ValidInvestmentType(input.Type) {
		return nil, domain.ErrInvalidInvestmentType
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetForUpdate(ctx, tx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	investType, _ := domain.InvestmentTypeByID(input.Type)

	investment := &domain.Investment{
		ID:             uc.idGen.Generate(),
		UserID:         input.UserID,
		AccountID:      input.AccountID,
		InvestmentType: input.Type,
		Amount:         input.Amount,
		Note:           input.Note,
		CreatedAt:      now,
	}

	if err := uc.investmentRepo.Create(ctx, tx, investment); err != nil {
		return nil, err
	}

	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Investment: %s", investType.Name)
	}

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		AccountID:   input.AccountID,
		Kind:        domain.TransactionKindInvestment,
		Amount:      input.Amount.Neg(),
		Note:        note,
		ReferenceID: &investment.ID,
		CreatedAt:   now,
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance.Sub(input.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.notifyInvestment(ctx, investment, account)

	return investment, nil
}

// List returns the user's investments, newest first.
func (uc *InvestmentUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Investment, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.investmentRepo.ListByUser(ctx, userID, limit, offset)
}

// Types returns the supported investment product catalog.
func (uc *InvestmentUseCase) Types() []domain.InvestmentType {
	return domain.InvestmentTypes
}

func (uc *InvestmentUseCase) notifyInvestment(ctx context.Context, investment *domain.Investment, account *domain.Account) {
	investType, _ := domain.InvestmentTypeByID(investment.InvestmentType)

	if uc.notifications != nil {
		n := &domain.Notification{
			ID:        uc.idGen.Generate(),
			UserID:    investment.UserID,
			Type:      "investment",
			Title:     "Investment Recorded",
			Message:   fmt.Sprintf("%s invested in %s from %s", investment.Amount.StringFixed(2), investType.Name, account.Name),
			Icon:      investType.Icon,
			Meta:      map[string]any{"investment_id": investment.ID},
			CreatedAt: time.Now().UTC(),
		}

		if err := uc.notifications.Create(ctx, n); err != nil {
			log.Warn().Err(err).Str("user_id", investment.UserID).Msg("notification insert failed")
		} else if uc.notifier != nil {
			uc.notifier.NotificationCreated(investment.UserID, n)
		}
	}

	if uc.notifier != nil {
		uc.notifier.AccountsChanged(investment.UserID)
		uc.notifier.TransactionsChanged(investment.UserID)
		uc.notifier.DashboardChanged(investment.UserID)
	}
}
