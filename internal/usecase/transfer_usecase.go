package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// TransferUseCase moves funds between a user's accounts as one atomic
// unit: up to two balance updates, one transfer row, and one or two
// signed transaction rows referencing it.
type TransferUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	transferRepo  TransferRepository
	txnRepo       TransactionRepository
	notifications NotificationRepository
	notifier      Notifier
	idGen         IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	txnRepo TransactionRepository,
	notifications NotificationRepository,
	notifier Notifier,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		transferRepo:  transferRepo,
		txnRepo:       txnRepo,
		notifications: notifications,
		notifier:      notifier,
		idGen:         idGen,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	OccurredAt    *time.Time
	ToAccountID   *string
	UserID        string
	FromAccountID string
	Note          string
	Amount        decimal.Decimal
}

// Create executes the transfer. When ToAccountID is nil the amount
// leaves the tracked system ("pay out") and only the debit side is
// recorded.
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransferInput) (*domain.Transfer, error) {
	transfer := &domain.Transfer{
		UserID:        input.UserID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Note:          input.Note,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Lock involved accounts in sorted order to avoid deadlocks between
	// concurrent opposing transfers.
	ids := []string{input.FromAccountID}
	if transfer.TwoSided() {
		ids = append(ids, *input.ToAccountID)
	}
	sort.Strings(ids)

	var fromAccount, toAccount *domain.Account
	err := uc.txManager.RunInTx(ctx, func(tx Transaction) error {
		accounts, err := uc.accountRepo.GetManyForUpdate(ctx, tx, input.UserID, ids)
		if err != nil {
			return err
		}

		if len(accounts) != len(ids) {
			return domain.ErrAccountNotFound
		}

		fromAccount, toAccount = nil, nil
		for _, a := range accounts {
			switch {
			case a.ID == input.FromAccountID:
				fromAccount = a
			case transfer.TwoSided() && a.ID == *input.ToAccountID:
				toAccount = a
			}
		}

		if fromAccount == nil || (transfer.TwoSided() && toAccount == nil) {
			return domain.ErrAccountNotFound
		}

		if err := fromAccount.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		createdAt := now
		if input.OccurredAt != nil {
			createdAt = input.OccurredAt.UTC()
		}

		transfer.ID = uc.idGen.Generate()
		transfer.CreatedAt = createdAt

		if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
			return err
		}

		// Debit side.
		outNote := input.Note
		if outNote == "" {
			outNote = "Transfer out"
		}

		debit := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			UserID:      input.UserID,
			AccountID:   fromAccount.ID,
			Kind:        domain.TransactionKindTransfer,
			Amount:      input.Amount.Neg(),
			Note:        outNote,
			ReferenceID: &transfer.ID,
			CreatedAt:   createdAt,
		}

		if err := uc.txnRepo.Create(ctx, tx, debit); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, fromAccount.ID, fromAccount.Balance.Sub(input.Amount), now); err != nil {
			return err
		}

		// Credit side, only when a destination is tracked.
		if toAccount != nil {
			inNote := input.Note
			if inNote == "" {
				inNote = "Transfer in"
			}

			credit := &domain.Transaction{
				ID:          uc.idGen.Generate(),
				UserID:      input.UserID,
				AccountID:   toAccount.ID,
				Kind:        domain.TransactionKindTransfer,
				Amount:      input.Amount,
				Note:        inNote,
				ReferenceID: &transfer.ID,
				CreatedAt:   createdAt,
			}

			if err := uc.txnRepo.Create(ctx, tx, credit); err != nil {
				return err
			}

			if err := uc.accountRepo.UpdateBalance(ctx, tx, toAccount.ID, toAccount.Balance.Add(input.Amount), now); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyTransfer(ctx, transfer, fromAccount, toAccount)

	return transfer, nil
}

// Get retrieves a transfer by ID.
func (uc *TransferUseCase) Get(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, userID, id)
}

// ListByAccountInput is shared with the ledger use case; transfers use
// the same pagination rules.
func (uc *TransferUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transferRepo.ListByAccount(ctx, input.UserID, input.AccountID, limit, offset)
}

func (uc *TransferUseCase) notifyTransfer(ctx context.Context, transfer *domain.Transfer, from, to *domain.Account) {
	amountLabel := transfer.Amount.StringFixed(2)

	destName := "another account"
	if to != nil {
		destName = to.Name
	}

	uc.createNotification(ctx, transfer.UserID, &domain.Notification{
		Type:    "transfer",
		Title:   "Scan & Pay Sent",
		Message: fmt.Sprintf("%s sent from %s to %s", amountLabel, from.Name, destName),
		Icon:    "exchange-alt",
		Meta:    map[string]any{"transfer_id": transfer.ID, "from_account_id": transfer.FromAccountID},
	})

	if to != nil {
		uc.createNotification(ctx, transfer.UserID, &domain.Notification{
			Type:    "transfer",
			Title:   "Scan & Pay Received",
			Message: fmt.Sprintf("%s received in %s from %s", amountLabel, to.Name, from.Name),
			Icon:    "wallet",
			Meta:    map[string]any{"transfer_id": transfer.ID, "to_account_id": *transfer.ToAccountID},
		})
	}

	if uc.notifier != nil {
		uc.notifier.AccountsChanged(transfer.UserID)
		uc.notifier.TransactionsChanged(transfer.UserID)
		uc.notifier.DashboardChanged(transfer.UserID)
	}
}

func (uc *TransferUseCase) createNotification(ctx context.Context, userID string, n *domain.Notification) {
	if uc.notifications == nil {
		return
	}

	n.ID = uc.idGen.Generate()
	n.UserID = userID
	n.CreatedAt = time.Now().UTC()

	if err := uc.notifications.Create(ctx, n); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("notification insert failed")
		return
	}

	if uc.notifier != nil {
		uc.notifier.NotificationCreated(userID, n)
	}
}
