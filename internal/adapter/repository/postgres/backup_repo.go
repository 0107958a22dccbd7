package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// BackupRepository implements usecase.BackupRepository: whole-profile
// export, import and wipe across the five user-owned tables.
type BackupRepository struct {
	pool         *pgxpool.Pool
	accounts     *AccountRepository
	categories   *CategoryRepository
	transactions *TransactionRepository
	transfers    *TransferRepository
	investments  *InvestmentRepository
}

// NewBackupRepository creates a new BackupRepository.
func NewBackupRepository(pool *pgxpool.Pool) *BackupRepository {
	return &BackupRepository{
		pool:         pool,
		accounts:     NewAccountRepository(pool),
		categories:   NewCategoryRepository(pool),
		transactions: NewTransactionRepository(pool),
		transfers:    NewTransferRepository(pool),
		investments:  NewInvestmentRepository(pool),
	}
}

// exportQueryLimit bounds snapshot reads; profiles are small but a
// runaway import should not be re-exportable unbounded.
const exportQueryLimit = 100000

// Export reads everything a user owns.
func (r *BackupRepository) Export(ctx context.Context, userID string) (*usecase.UserDataExport, error) {
	data := &usecase.UserDataExport{}

	var err error
	if data.Accounts, err = r.accounts.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Categories, err = r.categories.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Transactions, err = r.transactions.Recent(ctx, userID, exportQueryLimit); err != nil {
		return nil, err
	}
	if data.Investments, err = r.investments.ListByUser(ctx, userID, exportQueryLimit, 0); err != nil {
		return nil, err
	}

	transfers, err := r.listTransfers(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Transfers = transfers

	return data, nil
}

// Import inserts snapshot rows inside tx, forcing ownership to userID.
func (r *BackupRepository) Import(ctx context.Context, tx usecase.Transaction, userID string, data *usecase.UserDataExport) error {
	q := txQuerier(tx)

	for _, a := range data.Accounts {
		_, err := q.Exec(ctx, `
			INSERT INTO accounts (id, user_id, name, kind, balance, credit_limit, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			a.ID, userID, a.Name, string(a.Kind), decimalToNumeric(a.Balance),
			decimalToNumeric(a.CreditLimit), timeToPgTimestamptz(a.CreatedAt), timeToPgTimestamptz(a.UpdatedAt))
		if err != nil {
			return err
		}
	}

	for _, c := range data.Categories {
		_, err := q.Exec(ctx, `
			INSERT INTO categories (id, user_id, name, icon, kind, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, userID, c.Name, c.Icon, string(c.Kind), timeToPgTimestamptz(c.CreatedAt))
		if err != nil {
			return err
		}
	}

	for _, txn := range data.Transactions {
		_, err := q.Exec(ctx, `
			INSERT INTO transactions (id, user_id, account_id, category_id, kind, amount, note, reference_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING`,
			txn.ID, userID, txn.AccountID, txn.CategoryID, string(txn.Kind),
			decimalToNumeric(txn.Amount), txn.Note, txn.ReferenceID, timeToPgTimestamptz(txn.CreatedAt))
		if err != nil {
			return err
		}
	}

	for _, t := range data.Transfers {
		_, err := q.Exec(ctx, `
			INSERT INTO transfers (id, user_id, from_account_id, to_account_id, amount, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			t.ID, userID, t.FromAccountID, t.ToAccountID, decimalToNumeric(t.Amount), t.Note, timeToPgTimestamptz(t.CreatedAt))
		if err != nil {
			return err
		}
	}

	for _, inv := range data.Investments {
		_, err := q.Exec(ctx, `
			INSERT INTO investments (id, user_id, account_id, investment_type, amount, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			inv.ID, userID, inv.AccountID, inv.InvestmentType, decimalToNumeric(inv.Amount), inv.Note, timeToPgTimestamptz(inv.CreatedAt))
		if err != nil {
			return err
		}
	}

	return nil
}

// Clear deletes all user rows in dependency order and reports counts.
func (r *BackupRepository) Clear(ctx context.Context, tx usecase.Transaction, userID string) (map[string]int64, error) {
	q := txQuerier(tx)

	// Children before parents.
	tables := []string{"notifications", "transactions", "transfers", "investments", "categories", "accounts"}
	counts := make(map[string]int64, len(tables))

	for _, table := range tables {
		tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID)
		if err != nil {
			return nil, err
		}
		counts[table] = tag.RowsAffected()
	}

	return counts, nil
}

func (r *BackupRepository) listTransfers(ctx context.Context, userID string) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE user_id = $1
		ORDER BY created_at`, userID)
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
