package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// ShareUseCase issues signed read-only share codes and resolves them
// into a dashboard snapshot of the owner's finances. Unlike the pairing
// flow, a share code grants a one-shot view, never a session.
type ShareUseCase struct {
	codec       ShareCodec
	userRepo    UserRepository
	accountRepo AccountRepository
	txnRepo     TransactionRepository
}

// NewShareUseCase creates a new ShareUseCase.
func NewShareUseCase(
	codec ShareCodec,
	userRepo UserRepository,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
) *ShareUseCase {
	return &ShareUseCase{
		codec:       codec,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// ShareCode is an issued code with its expiry.
type ShareCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issue signs a share code for the owner.
func (uc *ShareUseCase) Issue(ctx context.Context, ownerID string) (*ShareCode, error) {
	if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	code, expiresAt, err := uc.codec.Issue(ownerID)
	if err != nil {
		return nil, err
	}

	return &ShareCode{Code: code, ExpiresAt: expiresAt}, nil
}

// SharedSnapshot is the read-only view a share code resolves to.
type SharedSnapshot struct {
	OwnerName    string                `json:"owner_name"`
	TotalBalance decimal.Decimal       `json:"total_balance"`
	Accounts     []*domain.Account     `json:"accounts"`
	Recent       []*domain.Transaction `json:"recent_transactions"`
}

// Resolve validates the code and builds the snapshot. A tampered or
// expired code yields ErrShareCodeInvalid.
func (uc *ShareUseCase) Resolve(ctx context.Context, code string) (*SharedSnapshot, error) {
	ownerID, err := uc.codec.Parse(code)
	if err != nil {
		return nil, domain.ErrShareCodeInvalid
	}

	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	recent, err := uc.txnRepo.Recent(ctx, ownerID, RecentTransactionLimit)
	if err != nil {
		return nil, err
	}

	return &SharedSnapshot{
		OwnerName:    owner.Name,
		TotalBalance: total,
		Accounts:     accounts,
		Recent:       recent,
	}, nil
}
