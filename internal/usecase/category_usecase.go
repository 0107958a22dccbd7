package usecase

import (
	"context"
	"time"

	"github.com/moneyman/moneyman/internal/domain"
)

// CategoryUseCase manages the labels transactions are grouped under.
type CategoryUseCase struct {
	txManager    TransactionManager
	categoryRepo CategoryRepository
	txnRepo      TransactionRepository
	notifier     Notifier
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(
	txManager TransactionManager,
	categoryRepo CategoryRepository,
	txnRepo TransactionRepository,
	notifier Notifier,
	idGen IDGenerator,
) *CategoryUseCase {
	return &CategoryUseCase{
		txManager:    txManager,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		notifier:     notifier,
		idGen:        idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	UserID string
	Name   string
	Kind   domain.CategoryKind
	Icon   string
}

// Create adds a category.
func (uc *CategoryUseCase) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.ErrInvalidCategoryKind
	}

	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Name:      input.Name,
		Kind:      input.Kind,
		Icon:      input.Icon,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.CategoriesChanged(input.UserID)
	}

	return category, nil
}

// GroupedCategories is the list response shape, keyed by kind.
type GroupedCategories struct {
	Expense []*domain.Category `json:"expense"`
	Income  []*domain.Category `json:"income"`
	Bill    []*domain.Category `json:"bill"`
}

// List returns the user's categories grouped by kind. Empty groups
// come back as empty slices, not nulls.
func (uc *CategoryUseCase) List(ctx context.Context, userID string) (*GroupedCategories, error) {
	categories, err := uc.categoryRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedCategories{
		Expense: []*domain.Category{},
		Income:  []*domain.Category{},
		Bill:    []*domain.Category{},
	}

	for _, c := range categories {
		switch c.Kind {
		case domain.CategoryKindExpense:
			grouped.Expense = append(grouped.Expense, c)
		case domain.CategoryKindIncome:
			grouped.Income = append(grouped.Income, c)
		case domain.CategoryKindBill:
			grouped.Bill = append(grouped.Bill, c)
		}
	}

	return grouped, nil
}

// ListByKind returns categories of one kind.
func (uc *CategoryUseCase) ListByKind(ctx context.Context, userID string, kind domain.CategoryKind) ([]*domain.Category, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidCategoryKind
	}
	return uc.categoryRepo.ListByKind(ctx, userID, kind)
}

// UpdateCategoryInput represents mutable category fields.
type UpdateCategoryInput struct {
	Name       *string
	Icon       *string
	UserID     string
	CategoryID string
}

// Update renames a category or changes its icon.
func (uc *CategoryUseCase) Update(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	if input.Name == nil && input.Icon == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		category.Name = *input.Name
	}

	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.CategoriesChanged(input.UserID)
	}

	return category, nil
}

// Delete removes the category and detaches it from any transactions
// that referenced it. The transactions themselves survive.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.txnRepo.NullifyCategory(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := uc.categoryRepo.Delete(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.notifier != nil {
		uc.notifier.CategoriesChanged(userID)
		uc.notifier.TransactionsChanged(userID)
	}

	return nil
}
