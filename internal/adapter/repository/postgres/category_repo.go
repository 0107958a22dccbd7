package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, icon, kind, created_at`

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, user_id, name, icon, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID,
		category.UserID,
		category.Name,
		category.Icon,
		string(category.Kind),
		timeToPgTimestamptz(category.CreatedAt),
	)

	return err
}

// CreateBatch inserts several categories in one round trip.
func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []*domain.Category) error {
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(`
			INSERT INTO categories (id, user_id, name, icon, kind, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.UserID, c.Name, c.Icon, string(c.Kind), timeToPgTimestamptz(c.CreatedAt))
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range categories {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a category owned by userID.
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1 AND user_id = $2`, id, userID)

	category, err := scanCategoryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	return category, nil
}

// List returns all categories for a user.
func (r *CategoryRepository) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return r.query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at`, userID)
}

// ListByKind returns categories of one kind.
func (r *CategoryRepository) ListByKind(ctx context.Context, userID string, kind domain.CategoryKind) ([]*domain.Category, error) {
	return r.query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at`, userID, string(kind))
}

// Update renames a category or changes its icon.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $3, icon = $4
		WHERE id = $1 AND user_id = $2`,
		category.ID, category.UserID, category.Name, category.Icon)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Count returns the number of categories a user owns.
func (r *CategoryRepository) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&n)

	return n, err
}

func (r *CategoryRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategoryRow(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func scanCategoryRow(row pgx.Row) (*domain.Category, error) {
	var (
		category  domain.Category
		kind      string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &kind, &createdAt)
	if err != nil {
		return nil, err
	}

	category.Kind = domain.CategoryKind(kind)
	category.CreatedAt = createdAt.Time

	return &category, nil
}
