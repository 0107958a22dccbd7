package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	Create(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context, userID string) (*usecase.GroupedCategories, error)
	ListByKind(ctx context.Context, userID string, kind domain.CategoryKind) ([]*domain.Category, error)
	Update(ctx context.Context, input usecase.UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categories CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create creates a category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Create(r.Context(), req.ToUseCaseInput(session.UserID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// List lists the user's categories grouped by kind.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, dto.GroupedCategoriesResponse{
			Expense: []*dto.CategoryResponse{},
			Income:  []*dto.CategoryResponse{},
			Bill:    []*dto.CategoryResponse{},
		})
		return
	}

	grouped, err := h.categories.List(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupedCategoriesFromUseCase(grouped))
}

// ListByKind lists categories of one kind.
func (h *CategoryHandler) ListByKind(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, []*dto.CategoryResponse{})
		return
	}

	kind := domain.CategoryKind(chi.URLParam(r, "kind"))
	categories, err := h.categories.ListByKind(r.Context(), session.UserID, kind)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Update renames a category or changes its icon.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Update(r.Context(), req.ToUseCaseInput(session.UserID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Delete removes a category, detaching its transactions.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), session.UserID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
