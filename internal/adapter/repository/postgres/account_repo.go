package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, name, kind, balance, credit_limit, created_at, updated_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, user_id, name, kind, balance, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID,
		account.UserID,
		account.Name,
		string(account.Kind),
		decimalToNumeric(account.Balance),
		decimalToNumeric(account.CreditLimit),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account owned by userID.
func (r *AccountRepository) GetByID(ctx context.Context, userID, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND user_id = $2`, id, userID)

	return scanAccount(row)
}

// GetForUpdate retrieves an account with a FOR UPDATE lock.
func (r *AccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error) {
	row := txQuerier(tx).QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, id, userID)

	return scanAccount(row)
}

// GetManyForUpdate locks multiple accounts. Rows come back ordered by
// id so lock acquisition order matches the caller's sorted id slice.
func (r *AccountRepository) GetManyForUpdate(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error) {
	rows, err := txQuerier(tx).Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ANY($1) AND user_id = $2
		ORDER BY id
		FOR UPDATE`, ids, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE accounts SET balance = $2, updated_at = $3
		WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return err
}

// Update changes account metadata.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET name = $3, kind = $4, credit_limit = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`,
		account.ID,
		account.UserID,
		account.Name,
		string(account.Kind),
		decimalToNumeric(account.CreditLimit),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List returns all accounts for a user, oldest first.
func (r *AccountRepository) List(ctx context.Context, userID string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Count returns the number of accounts a user owns.
func (r *AccountRepository) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM accounts WHERE user_id = $1`, userID).Scan(&n)

	return n, err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

func scanAccountRow(row pgx.Row) (*domain.Account, error) {
	var (
		account     domain.Account
		kind        string
		balance     pgtype.Numeric
		creditLimit pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &account.UserID, &account.Name, &kind, &balance, &creditLimit, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	account.Kind = domain.AccountKind(kind)
	account.Balance = numericToDecimal(balance)
	account.CreditLimit = numericToDecimal(creditLimit)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
