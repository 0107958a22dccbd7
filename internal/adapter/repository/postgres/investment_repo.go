package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

// Create inserts an investment row inside tx.
func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO investments (id, user_id, account_id, investment_type, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID,
		inv.UserID,
		inv.AccountID,
		inv.InvestmentType,
		decimalToNumeric(inv.Amount),
		inv.Note,
		timeToPgTimestamptz(inv.CreatedAt),
	)

	return err
}

// ListByUser returns a user's investments, newest first.
func (r *InvestmentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Investment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, account_id, investment_type, amount, note, created_at
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []*domain.Investment
	for rows.Next() {
		var (
			inv       domain.Investment
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.AccountID, &inv.InvestmentType, &amount, &inv.Note, &createdAt); err != nil {
			return nil, err
		}
		inv.Amount = numericToDecimal(amount)
		inv.CreatedAt = createdAt.Time
		investments = append(investments, &inv)
	}

	return investments, rows.Err()
}
