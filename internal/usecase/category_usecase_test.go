package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
	"github.com/moneyman/moneyman/internal/usecase/mocks"
)

func newCategoryFixture() (*usecase.CategoryUseCase, *mocks.MockCategoryRepository, *mocks.MockTransactionRepository) {
	catRepo := mocks.NewMockCategoryRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	notifier := mocks.NewMockNotifier()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewCategoryUseCase(txMgr, catRepo, txnRepo, notifier, idGen)
	return uc, catRepo, txnRepo
}

func TestCategoryUseCase_CreateAndList(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	inputs := []usecase.CreateCategoryInput{
		{UserID: "user-1", Name: "Groceries", Kind: domain.CategoryKindExpense, Icon: "cart"},
		{UserID: "user-1", Name: "Salary", Kind: domain.CategoryKindIncome, Icon: "money-bill"},
		{UserID: "user-1", Name: "Rent", Kind: domain.CategoryKindBill, Icon: "house"},
	}
	for _, in := range inputs {
		if _, err := uc.Create(context.Background(), in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	grouped, err := uc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(grouped.Expense) != 1 || len(grouped.Income) != 1 || len(grouped.Bill) != 1 {
		t.Errorf("unexpected grouping: %d/%d/%d", len(grouped.Expense), len(grouped.Income), len(grouped.Bill))
	}

	// Other users see empty groups, not nil.
	empty, err := uc.List(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if empty.Expense == nil || empty.Income == nil || empty.Bill == nil {
		t.Error("expected empty slices for user with no categories")
	}

	if _, err := uc.Create(context.Background(), usecase.CreateCategoryInput{
		UserID: "user-1", Name: "Other", Kind: domain.CategoryKind("misc"),
	}); !errors.Is(err, domain.ErrInvalidCategoryKind) {
		t.Errorf("expected ErrInvalidCategoryKind, got %v", err)
	}
}

func TestCategoryUseCase_DeleteDetachesTransactions(t *testing.T) {
	uc, _, txnRepo := newCategoryFixture()

	category, err := uc.Create(context.Background(), usecase.CreateCategoryInput{
		UserID: "user-1", Name: "Groceries", Kind: domain.CategoryKindExpense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:         "txn-1",
		UserID:     "user-1",
		AccountID:  "acc-1",
		CategoryID: &category.ID,
		Kind:       domain.TransactionKindExpense,
		Amount:     decimal.NewFromInt(-10),
	})
	if err != nil {
		t.Fatalf("seed txn: %v", err)
	}

	if err := uc.Delete(context.Background(), "user-1", category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	txn, err := txnRepo.GetByID(context.Background(), "user-1", "txn-1")
	if err != nil {
		t.Fatalf("transaction must survive category delete: %v", err)
	}
	if txn.CategoryID != nil {
		t.Error("expected category reference nulled")
	}

	if err := uc.Delete(context.Background(), "user-1", category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}
