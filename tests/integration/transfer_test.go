package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	postgresrepo "github.com/moneyman/moneyman/internal/adapter/repository/postgres"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
	"github.com/moneyman/moneyman/tests/testutil"
)

func newTransferUseCase(db *testutil.TestDB) *usecase.TransferUseCase {
	return usecase.NewTransferUseCase(
		postgresrepo.NewTxManager(db.Pool),
		postgresrepo.NewAccountRepository(db.Pool),
		postgresrepo.NewTransferRepository(db.Pool),
		postgresrepo.NewTransactionRepository(db.Pool),
		postgresrepo.NewNotificationRepository(db.Pool),
		testutil.NoopNotifier{},
		postgresrepo.NewULIDGenerator(),
	)
}

func TestTransfer_MovesMoneyBetweenAccounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	from := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(500))
	to := db.CreateTestAccount(ctx, user.ID, "Savings", domain.AccountKindBank, decimal.NewFromInt(100))

	transfers := newTransferUseCase(db)

	transfer, err := transfers.Create(ctx, usecase.CreateTransferInput{
		UserID:        user.ID,
		FromAccountID: from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(200),
		Note:          "monthly savings",
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if got := db.GetBalance(ctx, from.ID); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected source balance 300, got %s", got)
	}
	if got := db.GetBalance(ctx, to.ID); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected destination balance 300, got %s", got)
	}

	// Both ledger rows must reference the transfer.
	var n int
	if err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE reference_id = $1`, transfer.ID).Scan(&n); err != nil {
		t.Fatalf("count ledger rows: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 ledger rows for a two-sided transfer, got %d", n)
	}
}

func TestTransfer_PayOutHasSingleLedgerRow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	from := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(500))

	transfers := newTransferUseCase(db)

	transfer, err := transfers.Create(ctx, usecase.CreateTransferInput{
		UserID:        user.ID,
		FromAccountID: from.ID,
		Amount:        decimal.NewFromInt(75),
	})
	if err != nil {
		t.Fatalf("create pay-out: %v", err)
	}

	if got := db.GetBalance(ctx, from.ID); !got.Equal(decimal.NewFromInt(425)) {
		t.Fatalf("expected balance 425, got %s", got)
	}

	var n int
	if err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE reference_id = $1`, transfer.ID).Scan(&n); err != nil {
		t.Fatalf("count ledger rows: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 ledger row for a pay-out, got %d", n)
	}
}

func TestTransfer_RejectsSameAccountAndOverdraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	user := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	from := db.CreateTestAccount(ctx, user.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(100))
	to := db.CreateTestAccount(ctx, user.ID, "Savings", domain.AccountKindBank, decimal.NewFromInt(0))

	transfers := newTransferUseCase(db)

	_, err := transfers.Create(ctx, usecase.CreateTransferInput{
		UserID:        user.ID,
		FromAccountID: from.ID,
		ToAccountID:   &from.ID,
		Amount:        decimal.NewFromInt(10),
	})
	if err != domain.ErrSameAccount {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}

	_, err = transfers.Create(ctx, usecase.CreateTransferInput{
		UserID:        user.ID,
		FromAccountID: from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(5000),
	})
	if err != domain.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := db.GetBalance(ctx, from.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balances must be untouched, got %s", got)
	}
}

func TestTransfer_CrossUserAccountInvisible(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	alice := db.CreateTestUser(ctx, "Alice", "alice@example.com")
	bob := db.CreateTestUser(ctx, "Bob", "bob@example.com")
	aliceAcc := db.CreateTestAccount(ctx, alice.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(100))
	bobAcc := db.CreateTestAccount(ctx, bob.ID, "Checking", domain.AccountKindBank, decimal.NewFromInt(100))

	transfers := newTransferUseCase(db)

	_, err := transfers.Create(ctx, usecase.CreateTransferInput{
		UserID:        alice.ID,
		FromAccountID: aliceAcc.ID,
		ToAccountID:   &bobAcc.ID,
		Amount:        decimal.NewFromInt(10),
	})
	if err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound for another user's account, got %v", err)
	}
}
