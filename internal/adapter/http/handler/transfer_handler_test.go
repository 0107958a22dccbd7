package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

type transferServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error)
	getFn    func(ctx context.Context, userID, id string) (*domain.Transfer, error)
	listFn   func(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transfer, error)
}

func (s *transferServiceStub) Create(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error) {
	return s.createFn(ctx, input)
}

func (s *transferServiceStub) Get(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	return s.getFn(ctx, userID, id)
}

func (s *transferServiceStub) ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transfer, error) {
	return s.listFn(ctx, input)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	dest := "acc-2"
	transfer := &domain.Transfer{
		ID:            "tr-1",
		UserID:        "user-1",
		FromAccountID: "acc-1",
		ToAccountID:   &dest,
		Amount:        decimal.NewFromInt(50),
	}

	var captured usecase.CreateTransferInput
	h := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error) {
			captured = input
			return transfer, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   &dest,
		Amount:        decimal.NewFromInt(50),
		Note:          "rent split",
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/transfer", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" {
		t.Fatalf("expected session user on input, got %q", captured.UserID)
	}
	if captured.ToAccountID == nil || *captured.ToAccountID != "acc-2" {
		t.Fatalf("destination not carried through: %v", captured.ToAccountID)
	}

	var resp dto.TransferResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "tr-1" {
		t.Fatalf("unexpected transfer id %q", resp.ID)
	}
}

func TestTransferHandler_Create_PayOutHasNoDestination(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error) {
			if input.ToAccountID != nil {
				t.Fatalf("expected nil destination, got %q", *input.ToAccountID)
			}
			return &domain.Transfer{ID: "tr-2", UserID: input.UserID, FromAccountID: input.FromAccountID, Amount: input.Amount}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		Amount:        decimal.NewFromInt(30),
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/transfer", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransferHandler_Create_InsufficientFunds(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		Amount:        decimal.NewFromInt(1000),
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/transfer", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Get_RequiresSession(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/transfer/tr-1", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
