package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moneyman/moneyman/internal/domain"
)

// AccessUseCase runs the device pairing flow: a second device scans an
// owner's QR payload and requests access, the owner approves and gets a
// one-time code, and the device redeems the code for a shared session.
type AccessUseCase struct {
	store       AccessGrantStore
	accountRepo AccountRepository
	userRepo    UserRepository
	notifier    Notifier
	idGen       IDGenerator
}

// NewAccessUseCase creates a new AccessUseCase.
func NewAccessUseCase(
	store AccessGrantStore,
	accountRepo AccountRepository,
	userRepo UserRepository,
	notifier Notifier,
	idGen IDGenerator,
) *AccessUseCase {
	return &AccessUseCase{
		store:       store,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		idGen:       idGen,
	}
}

// RequestAccessInput represents a pairing request from a second device.
type RequestAccessInput struct {
	OwnerID    string
	AccountID  string
	DeviceInfo string
}

// Request registers a pending pairing request and pushes it to the
// owner's connected devices for approval.
func (uc *AccessUseCase) Request(ctx context.Context, input RequestAccessInput) (*domain.AccessGrantRequest, error) {
	owner, err := uc.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, input.OwnerID, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	req := &domain.AccessGrantRequest{
		ID:         uuid.NewString(),
		OwnerID:    owner.ID,
		AccountID:  account.ID,
		DeviceInfo: input.DeviceInfo,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.AccessGrantTTL),
	}

	if err := uc.store.Create(ctx, req); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.AccessRequested(owner.ID, domain.AccessRequestEvent{
			RequestID:   req.ID,
			OwnerID:     owner.ID,
			AccountID:   account.ID,
			AccountName: account.Name,
			DeviceInfo:  req.DeviceInfo,
			ExpiresAt:   req.ExpiresAt.Format(time.RFC3339),
		})
	}

	log.Info().Str("request_id", req.ID).Str("owner_id", owner.ID).Msg("access request created")

	return req, nil
}

// Approve marks the request approved and issues a six digit code. Only
// the owner may approve, and only once per request.
func (uc *AccessUseCase) Approve(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error) {
	req, err := uc.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	if req.Approved {
		return req, nil
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	req.Approved = true
	req.Code = code

	if err := uc.store.Update(ctx, req); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.AccessCodeIssued(ownerID, domain.AccessCodeEvent{
			RequestID: req.ID,
			OwnerID:   ownerID,
			Code:      req.Code,
			ExpiresAt: req.ExpiresAt.Format(time.RFC3339),
		})
	}

	return req, nil
}

// Reject drops a pending request without issuing a code. Only the owner
// may reject. A request that already vanished counts as rejected.
func (uc *AccessUseCase) Reject(ctx context.Context, ownerID, requestID string) error {
	req, err := uc.store.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessRequestNotFound) {
			return nil
		}
		return err
	}

	if req.OwnerID != ownerID {
		return domain.ErrForbidden
	}

	if err := uc.store.Delete(ctx, req.ID); err != nil {
		return err
	}

	log.Info().Str("request_id", req.ID).Str("owner_id", ownerID).Msg("access request rejected")

	return nil
}

// VerifyResult is what a successful code redemption yields: the owner
// whose data the shared session will read.
type VerifyResult struct {
	Owner   *domain.User
	Request *domain.AccessGrantRequest
}

// Verify redeems the pairing code. Three wrong codes burn the request;
// a correct code consumes it so it can never be redeemed twice.
func (uc *AccessUseCase) Verify(ctx context.Context, requestID, code string) (*VerifyResult, error) {
	req, err := uc.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Approved {
		return nil, domain.ErrApprovalPending
	}

	if req.Code != code {
		attempts, err := uc.store.IncrementAttempts(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if attempts >= domain.AccessGrantMaxAttempts {
			if err := uc.store.Delete(ctx, req.ID); err != nil {
				log.Warn().Err(err).Str("request_id", req.ID).Msg("burned access request cleanup failed")
			}
			return nil, domain.ErrAttemptsExhausted
		}
		remaining := domain.AccessGrantMaxAttempts - attempts
		return nil, fmt.Errorf("%w (%d attempts left)", domain.ErrCodeMismatch, remaining)
	}

	owner, err := uc.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	// Single use: consume before handing out the session.
	if err := uc.store.Delete(ctx, req.ID); err != nil {
		return nil, err
	}

	log.Info().Str("request_id", req.ID).Str("owner_id", owner.ID).Msg("access request redeemed")

	return &VerifyResult{Owner: owner, Request: req}, nil
}

// Sweep drops expired pairing requests. Called periodically by the
// server loop.
func (uc *AccessUseCase) Sweep(ctx context.Context) int {
	return uc.store.SweepExpired(ctx)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
