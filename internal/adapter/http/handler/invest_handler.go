package handler

import (
	"context"
	"net/http"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// InvestmentService defines the behavior needed by InvestHandler.
type InvestmentService interface {
	Create(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Investment, error)
	Types() []domain.InvestmentType
}

// InvestHandler handles investment requests.
type InvestHandler struct {
	investments InvestmentService
}

// NewInvestHandler creates a new InvestHandler.
func NewInvestHandler(investments InvestmentService) *InvestHandler {
	return &InvestHandler{investments: investments}
}

// Create debits an account into an investment.
func (h *InvestHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateInvestmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	investment, err := h.investments.Create(r.Context(), req.ToUseCaseInput(session.UserID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestmentFromDomain(investment))
}

// List lists the user's investments.
func (h *InvestHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, []*dto.InvestmentResponse{})
		return
	}

	investments, err := h.investments.List(r.Context(), session.UserID,
		parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentsFromDomain(investments))
}

// Types returns the supported investment catalog.
func (h *InvestHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.investments.Types())
}
