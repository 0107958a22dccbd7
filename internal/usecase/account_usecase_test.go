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

func newAccountFixture() (*usecase.AccountUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository) {
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	notifier := mocks.NewMockNotifier()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewAccountUseCase(txMgr, accRepo, txnRepo, notifier, idGen)
	return uc, accRepo, txnRepo
}

func TestAccountUseCase_Create(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectError bool
		errorType   error
	}{
		{
			name: "bank account with opening balance",
			input: usecase.CreateAccountInput{
				UserID:  "user-1",
				Name:    "Main Bank",
				Kind:    domain.AccountKindBank,
				Balance: decimal.NewFromInt(1000),
			},
		},
		{
			name: "credit account may open negative",
			input: usecase.CreateAccountInput{
				UserID:  "user-1",
				Name:    "Visa",
				Kind:    domain.AccountKindCredit,
				Balance: decimal.NewFromInt(-200),
			},
		},
		{
			name: "cash account may not open negative",
			input: usecase.CreateAccountInput{
				UserID:  "user-1",
				Name:    "Pocket",
				Kind:    domain.AccountKindCash,
				Balance: decimal.NewFromInt(-1),
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "unknown kind rejected",
			input: usecase.CreateAccountInput{
				UserID: "user-1",
				Name:   "Mystery",
				Kind:   domain.AccountKind("offshore"),
			},
			expectError: true,
			errorType:   domain.ErrInvalidAccountKind,
		},
		{
			name: "empty name rejected",
			input: usecase.CreateAccountInput{
				UserID: "user-1",
				Kind:   domain.AccountKindBank,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newAccountFixture()

			account, err := uc.Create(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID == "" {
				t.Error("expected generated ID")
			}
			if !account.Balance.Equal(tt.input.Balance) {
				t.Errorf("expected balance %s, got %s", tt.input.Balance, account.Balance)
			}
		})
	}
}

func TestAccountUseCase_Update(t *testing.T) {
	uc, accRepo, _ := newAccountFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 100, domain.AccountKindCash)

	name := "Renamed"
	kind := domain.AccountKindWallet

	account, err := uc.Update(context.Background(), usecase.UpdateAccountInput{
		UserID:    "user-1",
		AccountID: "acc-1",
		Name:      &name,
		Kind:      &kind,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if account.Name != "Renamed" || account.Kind != domain.AccountKindWallet {
		t.Errorf("update not applied: %+v", account)
	}
	if account.Balance.String() != "100" {
		t.Errorf("update must not touch balance, got %s", account.Balance)
	}

	_, err = uc.Update(context.Background(), usecase.UpdateAccountInput{UserID: "user-1", AccountID: "acc-1"})
	if !errors.Is(err, domain.ErrNoFieldsToUpdate) {
		t.Errorf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestAccountUseCase_DeleteCascades(t *testing.T) {
	uc, accRepo, txnRepo := newAccountFixture()
	seedAccount(t, accRepo, "acc-1", "user-1", 100, domain.AccountKindBank)

	for i := 0; i < 3; i++ {
		err := txnRepo.Create(context.Background(), nil, &domain.Transaction{
			ID:        "txn-" + string(rune('a'+i)),
			UserID:    "user-1",
			AccountID: "acc-1",
			Kind:      domain.TransactionKindExpense,
			Amount:    decimal.NewFromInt(-10),
		})
		if err != nil {
			t.Fatalf("seed txn: %v", err)
		}
	}

	if err := uc.Delete(context.Background(), "user-1", "acc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := accRepo.GetByID(context.Background(), "user-1", "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected account gone, got %v", err)
	}

	n, _ := txnRepo.Count(context.Background(), "user-1")
	if n != 0 {
		t.Errorf("expected transactions purged with the account, %d remain", n)
	}

	// Deleting again reports not found.
	if err := uc.Delete(context.Background(), "user-1", "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
