package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	postgresrepo "github.com/moneyman/moneyman/internal/adapter/repository/postgres"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
	"github.com/moneyman/moneyman/tests/testutil"
)

func newLedgerUseCase(db *testutil.TestDB) *usecase.LedgerUseCase {
	return usecase.NewLedgerUseCase(
		postgresrepo.NewTxManager(db.Pool),
		postgresrepo.NewAccountRepository(db.Pool),
		postgresrepo.NewTransactionRepository(db.Pool),
		postgresrepo.NewCategoryRepository(db.Pool),
		postgresrepo.NewNotificationRepository(db.Pool),
		testutil.NoopNotifier{},
		postgresrepo.NewULIDGenerator(),
	)
}

func TestLedger_PostIncomeAndExpense(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	account := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(100))

	ledger := newLedgerUseCase(db)

	income, err := ledger.Post(ctx, usecase.PostEntryInput{
		UserID:    user.ID,
		AccountID: account.ID,
		Kind:      domain.TransactionKindIncome,
		Amount:    decimal.NewFromInt(500),
		Note:      "salary",
	})
	if err != nil {
		t.Fatalf("post income: %v", err)
	}
	if !income.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("income should be stored positive, got %s", income.Amount)
	}

	expense, err := ledger.Post(ctx, usecase.PostEntryInput{
		UserID:    user.ID,
		AccountID: account.ID,
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(120),
		Note:      "groceries",
	})
	if err != nil {
		t.Fatalf("post expense: %v", err)
	}
	if !expense.Amount.Equal(decimal.NewFromInt(-120)) {
		t.Fatalf("expense should be stored negative, got %s", expense.Amount)
	}

	if got := db.GetBalance(ctx, account.ID); !got.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("expected balance 480, got %s", got)
	}
}

func TestLedger_DeleteReversesBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	account := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(100))

	ledger := newLedgerUseCase(db)

	txn, err := ledger.Post(ctx, usecase.PostEntryInput{
		UserID:    user.ID,
		AccountID: account.ID,
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("post expense: %v", err)
	}

	if err := ledger.Delete(ctx, user.ID, txn.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}

	if got := db.GetBalance(ctx, account.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance restored to 100, got %s", got)
	}

	if err := ledger.Delete(ctx, user.ID, txn.ID); err != domain.ErrTransactionNotFound {
		t.Fatalf("expected ErrTransactionNotFound on double delete, got %v", err)
	}
}

func TestLedger_OverdraftRejectedOnBankAccount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	account := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(50))

	ledger := newLedgerUseCase(db)

	_, err := ledger.Post(ctx, usecase.PostEntryInput{
		UserID:    user.ID,
		AccountID: account.ID,
		Kind:      domain.TransactionKindExpense,
		Amount:    decimal.NewFromInt(80),
	})
	if err != domain.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := db.GetBalance(ctx, account.ID); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("balance must be untouched after rejection, got %s", got)
	}
}

func TestLedger_MonthlySummary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	account := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(1000))

	ledger := newLedgerUseCase(db)

	march := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	entries := []struct {
		kind   domain.TransactionKind
		amount int64
		at     time.Time
	}{
		{domain.TransactionKindIncome, 3000, march},
		{domain.TransactionKindExpense, 450, march},
		{domain.TransactionKindBill, 150, march},
		{domain.TransactionKindExpense, 999, april},
	}
	for _, e := range entries {
		at := e.at
		if _, err := ledger.Post(ctx, usecase.PostEntryInput{
			UserID:     user.ID,
			AccountID:  account.ID,
			Kind:       e.kind,
			Amount:     decimal.NewFromInt(e.amount),
			OccurredAt: &at,
		}); err != nil {
			t.Fatalf("post %s: %v", e.kind, err)
		}
	}

	summary, err := ledger.Summary(ctx, user.ID, "2026-03")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !summary.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected income 3000, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpense.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected expense 450, got %s", summary.TotalExpense)
	}
	if !summary.TotalBill.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected bills 150, got %s", summary.TotalBill)
	}
	if !summary.NetSavings.Equal(decimal.NewFromInt(2400)) {
		t.Fatalf("expected net savings 2400, got %s", summary.NetSavings)
	}

	if _, err := ledger.Summary(ctx, user.ID, "2026-13"); err != domain.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
