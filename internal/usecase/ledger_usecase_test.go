package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
	"github.com/moneyman/moneyman/internal/usecase/mocks"
)

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository, *mocks.MockNotifier) {
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	catRepo := mocks.NewMockCategoryRepository()
	notifRepo := mocks.NewMockNotificationRepository()
	notifier := mocks.NewMockNotifier()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewLedgerUseCase(txMgr, accRepo, txnRepo, catRepo, notifRepo, notifier, idGen)
	return uc, accRepo, txnRepo, notifier
}

func seedAccount(t *testing.T, repo *mocks.MockAccountRepository, id, userID string, balance int64, kind domain.AccountKind) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.Account{
		ID:      id,
		UserID:  userID,
		Name:    "Test " + id,
		Kind:    kind,
		Balance: decimal.NewFromInt(balance),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestLedgerUseCase_Post(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.PostEntryInput
		balance     int64
		kind        domain.AccountKind
		wantBalance string
		wantAmount  string
		expectError bool
		errorType   error
	}{
		{
			name: "expense debits the account",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.NewFromInt(40),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			wantBalance: "60",
			wantAmount:  "-40",
		},
		{
			name: "income credits the account",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindIncome,
				Amount:    decimal.NewFromInt(250),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			wantBalance: "350",
			wantAmount:  "250",
		},
		{
			name: "bill behaves like expense",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindBill,
				Amount:    decimal.NewFromInt(100),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			wantBalance: "0",
			wantAmount:  "-100",
		},
		{
			name: "overdraft rejected on cash account",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.NewFromInt(101),
			},
			balance:     100,
			kind:        domain.AccountKindCash,
			expectError: true,
			errorType:   domain.ErrInsufficientFunds,
		},
		{
			name: "credit account may go negative",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.NewFromInt(150),
			},
			balance:     100,
			kind:        domain.AccountKindCredit,
			wantBalance: "-50",
			wantAmount:  "-150",
		},
		{
			name: "zero amount rejected",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.Zero,
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "transfer kind not allowed here",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindTransfer,
				Amount:    decimal.NewFromInt(10),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			expectError: true,
			errorType:   domain.ErrInvalidTransactionKind,
		},
		{
			name: "unknown account",
			input: usecase.PostEntryInput{
				UserID:    "user-1",
				AccountID: "acc-missing",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.NewFromInt(10),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
		{
			name: "foreign user cannot spend from the account",
			input: usecase.PostEntryInput{
				UserID:    "user-2",
				AccountID: "acc-1",
				Kind:      domain.TransactionKindExpense,
				Amount:    decimal.NewFromInt(10),
			},
			balance:     100,
			kind:        domain.AccountKindBank,
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, _, notifier := newLedgerFixture()
			seedAccount(t, accRepo, "acc-1", "user-1", tt.balance, tt.kind)

			txn, err := uc.Post(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if txn.Amount.String() != tt.wantAmount {
				t.Errorf("expected amount %s, got %s", tt.wantAmount, txn.Amount.String())
			}

			acc, err := accRepo.GetByID(context.Background(), "user-1", "acc-1")
			if err != nil {
				t.Fatalf("account lookup: %v", err)
			}
			if acc.Balance.String() != tt.wantBalance {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance.String())
			}

			if len(notifier.TransactionEvents) == 0 {
				t.Error("expected a transactions event after posting")
			}
		})
	}
}

func TestLedgerUseCase_Delete(t *testing.T) {
	uc, accRepo, _, _ := newLedgerFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 100, domain.AccountKindBank)

	txn, err := uc.Post(context.Background(), usecase.PostEntryInput{
		UserID:    "user-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	if err := uc.Delete(context.Background(), "user-1", txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	acc, _ := accRepo.GetByID(context.Background(), "user-1", "acc-1")
	if acc.Balance.String() != "100" {
		t.Errorf("expected balance restored to 100, got %s", acc.Balance.String())
	}

	// A second delete of the same transaction must not reverse twice.
	err = uc.Delete(context.Background(), "user-1", txn.ID)
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on double delete, got %v", err)
	}

	acc, _ = accRepo.GetByID(context.Background(), "user-1", "acc-1")
	if acc.Balance.String() != "100" {
		t.Errorf("expected balance unchanged at 100, got %s", acc.Balance.String())
	}
}

func TestLedgerUseCase_Delete_ReversesDeletedAmount(t *testing.T) {
	uc, accRepo, txnRepo, _ := newLedgerFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 100, domain.AccountKindBank)

	txn, err := uc.Post(context.Background(), usecase.PostEntryInput{
		UserID:    "user-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	// Serve a read whose amount predates a concurrent edit. The
	// reversal must use the row the delete actually removed, not this
	// stale snapshot.
	stale := *txn
	stale.Amount = decimal.NewFromInt(-500)
	txnRepo.GetByIDFunc = func(ctx context.Context, userID, id string) (*domain.Transaction, error) {
		return &stale, nil
	}

	if err := uc.Delete(context.Background(), "user-1", txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	acc, _ := accRepo.GetByID(context.Background(), "user-1", "acc-1")
	if acc.Balance.String() != "100" {
		t.Errorf("expected balance restored to 100, got %s", acc.Balance.String())
	}
}

func TestLedgerUseCase_Update_MetadataOnly(t *testing.T) {
	uc, accRepo, _, _ := newLedgerFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 100, domain.AccountKindBank)

	txn, err := uc.Post(context.Background(), usecase.PostEntryInput{
		UserID:    "user-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	note := "groceries"
	updated, err := uc.Update(context.Background(), usecase.UpdateTransactionInput{
		UserID: "user-1",
		ID:     txn.ID,
		Note:   &note,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Note != "groceries" {
		t.Errorf("expected note update, got %q", updated.Note)
	}

	// Metadata edits never touch the balance.
	acc, _ := accRepo.GetByID(context.Background(), "user-1", "acc-1")
	if acc.Balance.String() != "70" {
		t.Errorf("expected balance 70 after edit, got %s", acc.Balance.String())
	}

	_, err = uc.Update(context.Background(), usecase.UpdateTransactionInput{
		UserID: "user-1",
		ID:     txn.ID,
	})
	if !errors.Is(err, domain.ErrNoFieldsToUpdate) {
		t.Errorf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestLedgerUseCase_Summary(t *testing.T) {
	uc, accRepo, txnRepo, _ := newLedgerFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 1000, domain.AccountKindBank)

	txnRepo.SumByKindFunc = func(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error) {
		if from.Month() != time.March || from.Year() != 2026 {
			t.Errorf("unexpected window start %v", from)
		}
		return map[domain.TransactionKind]decimal.Decimal{
			domain.TransactionKindIncome:  decimal.NewFromInt(500),
			domain.TransactionKindExpense: decimal.NewFromInt(-120),
			domain.TransactionKindBill:    decimal.NewFromInt(-80),
		}, nil
	}

	summary, err := uc.Summary(context.Background(), "user-1", "2026-03")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalIncome.String() != "500" {
		t.Errorf("expected income 500, got %s", summary.TotalIncome.String())
	}
	if summary.TotalExpense.String() != "120" {
		t.Errorf("expected expense 120, got %s", summary.TotalExpense.String())
	}
	if summary.TotalBill.String() != "80" {
		t.Errorf("expected bills 80, got %s", summary.TotalBill.String())
	}
	if summary.NetSavings.String() != "300" {
		t.Errorf("expected net 300, got %s", summary.NetSavings.String())
	}

	if _, err := uc.Summary(context.Background(), "user-1", "March-2026"); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}
