package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, account_id, category_id, kind, amount, note, reference_id, created_at`

// Create inserts a ledger row inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO transactions (id, user_id, account_id, category_id, kind, amount, note, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.ID,
		txn.UserID,
		txn.AccountID,
		txn.CategoryID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		txn.Note,
		txn.ReferenceID,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction owned by userID.
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2`, id, userID)

	txn, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// Update applies the non-nil fields and returns the updated row.
func (r *TransactionRepository) Update(ctx context.Context, userID, id string, upd usecase.TransactionUpdate) (*domain.Transaction, error) {
	sets := make([]string, 0, 5)
	args := []any{id, userID}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Note != nil {
		addSet("note", *upd.Note)
	}
	if upd.Amount != nil {
		addSet("amount", decimalToNumeric(*upd.Amount))
	}
	if upd.CreatedAt != nil {
		addSet("created_at", timeToPgTimestamptz(*upd.CreatedAt))
	}
	if upd.CategoryID != nil {
		addSet("category_id", *upd.CategoryID)
	}
	if upd.AccountID != nil {
		addSet("account_id", *upd.AccountID)
	}

	if len(sets) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions SET `+strings.Join(sets, ", ")+`
		WHERE id = $1 AND user_id = $2
		RETURNING `+transactionColumns, args...)

	txn, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// Delete removes a transaction and returns the deleted row. RETURNING
// keeps the amount authoritative even when an edit raced the delete.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Transaction, error) {
	row := txQuerier(tx).QueryRow(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
		RETURNING `+transactionColumns, id, userID)

	txn, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// DeleteByAccount purges every transaction written against an account.
func (r *TransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, userID, accountID string) error {
	_, err := txQuerier(tx).Exec(ctx, `
		DELETE FROM transactions WHERE user_id = $1 AND account_id = $2`, userID, accountID)

	return err
}

// NullifyCategory detaches transactions from a deleted category.
func (r *TransactionRepository) NullifyCategory(ctx context.Context, tx usecase.Transaction, userID, categoryID string) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE transactions SET category_id = NULL
		WHERE user_id = $1 AND category_id = $2`, userID, categoryID)

	return err
}

// ListByAccount returns an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1 AND account_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, userID, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// Recent returns the user's latest transactions across all accounts.
func (r *TransactionRepository) Recent(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// SumByKind aggregates signed amounts per kind over [from, to).
func (r *TransactionRepository) SumByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY kind`, userID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[domain.TransactionKind]decimal.Decimal)
	for rows.Next() {
		var (
			kind string
			sum  pgtype.Numeric
		)
		if err := rows.Scan(&kind, &sum); err != nil {
			return nil, err
		}
		sums[domain.TransactionKind(kind)] = numericToDecimal(sum)
	}

	return sums, rows.Err()
}

// Count returns the number of transactions a user owns.
func (r *TransactionRepository) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&n)

	return n, err
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransactionRow(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		kind      string
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&txn.ID, &txn.UserID, &txn.AccountID, &txn.CategoryID, &kind, &amount, &txn.Note, &txn.ReferenceID, &createdAt)
	if err != nil {
		return nil, err
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
