package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// LedgerUseCase applies single-account balance mutations: posting
// income, expense and bill entries, editing transaction metadata, and
// deleting rows with balance reversal. Balance update and audit row
// always land in one database transaction.
type LedgerUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	txnRepo       TransactionRepository
	categoryRepo  CategoryRepository
	notifications NotificationRepository
	notifier      Notifier
	idGen         IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	categoryRepo CategoryRepository,
	notifications NotificationRepository,
	notifier Notifier,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		txnRepo:       txnRepo,
		categoryRepo:  categoryRepo,
		notifications: notifications,
		notifier:      notifier,
		idGen:         idGen,
	}
}

// PostEntryInput represents input for posting a ledger entry.
type PostEntryInput struct {
	OccurredAt *time.Time
	CategoryID *string
	UserID     string
	AccountID  string
	Note       string
	Kind       domain.TransactionKind
	Amount     decimal.Decimal
}

// Post applies one balance-affecting entry. Amount is a positive
// magnitude; the stored row is signed by kind.
func (uc *LedgerUseCase) Post(ctx context.Context, input PostEntryInput) (*domain.Transaction, error) {
	if !input.Kind.IsValid() || input.Kind == domain.TransactionKindTransfer {
		return nil, domain.ErrInvalidTransactionKind
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	createdAt := now
	if input.OccurredAt != nil {
		createdAt = input.OccurredAt.UTC()
	}

	txn := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		UserID:     input.UserID,
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
		Kind:       input.Kind,
		Amount:     domain.SignAmount(input.Kind, input.Amount),
		Note:       input.Note,
		CreatedAt:  createdAt,
	}

	err := uc.txManager.RunInTx(ctx, func(tx Transaction) error {
		account, err := uc.accountRepo.GetForUpdate(ctx, tx, input.UserID, input.AccountID)
		if err != nil {
			return err
		}

		if input.Kind.IsDebit() {
			if err := account.ValidateDebit(input.Amount); err != nil {
				return err
			}
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		return uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Apply(txn.Amount), now)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyMutation(ctx, input.UserID, &domain.Notification{
		Type:    "success",
		Title:   "Transaction Added",
		Message: fmt.Sprintf("%s of %s was added.", titleKind(input.Kind), input.Amount.StringFixed(2)),
		Icon:    "receipt",
		Meta:    map[string]any{"account_id": input.AccountID, "transaction_id": txn.ID},
	})

	return txn, nil
}

// UpdateTransactionInput represents input for editing a transaction.
type UpdateTransactionInput struct {
	Note       *string
	Amount     *decimal.Decimal
	OccurredAt *time.Time
	CategoryID *string
	AccountID  *string
	UserID     string
	ID         string
}

// Update edits transaction metadata. Edits do not re-balance accounts:
// the reference behavior treats them as corrections to the record, not
// to the money movement.
func (uc *LedgerUseCase) Update(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := uc.txnRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	upd := TransactionUpdate{
		Note:       input.Note,
		CreatedAt:  input.OccurredAt,
		CategoryID: input.CategoryID,
		AccountID:  input.AccountID,
	}

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		// Re-sign the magnitude so the row keeps its direction.
		signed := *input.Amount
		if existing.Amount.IsNegative() {
			signed = signed.Neg()
		}
		upd.Amount = &signed
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	if input.AccountID != nil {
		if _, err := uc.accountRepo.GetByID(ctx, input.UserID, *input.AccountID); err != nil {
			return nil, err
		}
	}

	if upd.Note == nil && upd.Amount == nil && upd.CreatedAt == nil && upd.CategoryID == nil && upd.AccountID == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	updated, err := uc.txnRepo.Update(ctx, input.UserID, input.ID, upd)
	if err != nil {
		return nil, err
	}

	uc.notifyMutation(ctx, input.UserID, &domain.Notification{
		Type:    "info",
		Title:   "Transaction Updated",
		Message: "A transaction was edited.",
		Icon:    "edit",
		Meta:    map[string]any{"transaction_id": updated.ID},
	})

	return updated, nil
}

// Delete removes a transaction and reverses its balance effect in the
// same database transaction. A second delete of the same row returns
// ErrTransactionNotFound and leaves the balance unchanged.
func (uc *LedgerUseCase) Delete(ctx context.Context, userID, id string) error {
	txn, err := uc.txnRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	var deleted *domain.Transaction
	err = uc.txManager.RunInTx(ctx, func(tx Transaction) error {
		account, err := uc.accountRepo.GetForUpdate(ctx, tx, userID, txn.AccountID)
		if err != nil {
			return err
		}

		// Delete first: with the account row locked, a racing delete of
		// the same transaction finds no row here instead of reversing
		// the balance twice. The RETURNING row is authoritative; an
		// edit may have changed the amount since the read above.
		deleted, err = uc.txnRepo.Delete(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if deleted.AccountID != account.ID {
			account, err = uc.accountRepo.GetForUpdate(ctx, tx, userID, deleted.AccountID)
			if err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		return uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance.Sub(deleted.Amount), now)
	})
	if err != nil {
		return err
	}

	message := "A transaction was deleted."
	if deleted.Note != "" {
		message = fmt.Sprintf("%s transaction was deleted.", deleted.Note)
	}

	uc.notifyMutation(ctx, userID, &domain.Notification{
		Type:    "warning",
		Title:   "Transaction Deleted",
		Message: message,
		Icon:    "trash",
		Meta:    map[string]any{"transaction_id": id, "account_id": deleted.AccountID},
	})

	return nil
}

// Recent lists the newest transactions for the dashboard feed.
func (uc *LedgerUseCase) Recent(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return uc.txnRepo.Recent(ctx, userID, RecentTransactionLimit)
}

// ListByAccountInput represents input for listing account transactions.
type ListByAccountInput struct {
	UserID    string
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists transactions for one account, newest first.
func (uc *LedgerUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.txnRepo.ListByAccount(ctx, input.UserID, input.AccountID, limit, offset)
}

// MonthlySummary aggregates one calendar month of activity.
type MonthlySummary struct {
	Month        string          `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalBill    decimal.Decimal `json:"total_bill"`
	NetSavings   decimal.Decimal `json:"net_savings"`
}

// Summary computes the monthly dashboard aggregate. month is "YYYY-MM";
// empty selects the current month.
func (uc *LedgerUseCase) Summary(ctx context.Context, userID, month string) (*MonthlySummary, error) {
	start, end, err := monthWindow(month)
	if err != nil {
		return nil, err
	}

	sums, err := uc.txnRepo.SumByKind(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	// Debit kinds are stored negative; report positive magnitudes.
	income := sums[domain.TransactionKindIncome]
	expense := sums[domain.TransactionKindExpense].Neg()
	bill := sums[domain.TransactionKindBill].Neg()

	return &MonthlySummary{
		Month:        start.Format("2006-01"),
		TotalIncome:  income,
		TotalExpense: expense,
		TotalBill:    bill,
		NetSavings:   income.Sub(expense).Sub(bill),
	}, nil
}

func titleKind(kind domain.TransactionKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func monthWindow(month string) (time.Time, time.Time, error) {
	if month == "" {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	}

	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, domain.ErrInvalidMonth
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return time.Time{}, time.Time{}, domain.ErrInvalidMonth
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, time.Time{}, domain.ErrInvalidMonth
	}

	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0), nil
}

// notifyMutation emits post-commit events and records the in-app feed
// item. Best-effort only.
func (uc *LedgerUseCase) notifyMutation(ctx context.Context, userID string, n *domain.Notification) {
	if uc.notifications != nil && n != nil {
		n.ID = uc.idGen.Generate()
		n.UserID = userID
		n.CreatedAt = time.Now().UTC()

		if err := uc.notifications.Create(ctx, n); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("notification insert failed")
		} else if uc.notifier != nil {
			uc.notifier.NotificationCreated(userID, n)
		}
	}

	if uc.notifier != nil {
		uc.notifier.TransactionsChanged(userID)
		uc.notifier.AccountsChanged(userID)
		uc.notifier.DashboardChanged(userID)
	}
}
