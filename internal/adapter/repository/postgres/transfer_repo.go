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

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `id, user_id, from_account_id, to_account_id, amount, note, created_at`

// Create inserts a transfer row inside tx.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO transfers (id, user_id, from_account_id, to_account_id, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transfer.ID,
		transfer.UserID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		decimalToNumeric(transfer.Amount),
		transfer.Note,
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// GetByID retrieves a transfer owned by userID.
func (r *TransferRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE id = $1 AND user_id = $2`, id, userID)

	transfer, err := scanTransferRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return transfer, nil
}

// ListByAccount returns transfers touching an account on either side.
func (r *TransferRepository) ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE user_id = $1 AND (from_account_id = $2 OR to_account_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, userID, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransferRow(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func scanTransferRow(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer  domain.Transfer
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&transfer.ID, &transfer.UserID, &transfer.FromAccountID, &transfer.ToAccountID, &amount, &transfer.Note, &createdAt)
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.CreatedAt = createdAt.Time

	return &transfer, nil
}
