package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
)

// AccountRepository defines data access for accounts. All lookups are
// scoped to the owning user.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, userID, id string) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx Transaction, userID, id string) (*domain.Account, error)
	GetManyForUpdate(ctx context.Context, tx Transaction, userID string, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, account *domain.Account) error
	List(ctx context.Context, userID string) ([]*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, userID, id string) error
	Count(ctx context.Context, userID string) (int64, error)
}

// TransactionUpdate carries the optional fields of a transaction edit.
// Nil fields are left unchanged.
type TransactionUpdate struct {
	Note       *string
	Amount     *decimal.Decimal
	CreatedAt  *time.Time
	CategoryID *string
	AccountID  *string
}

// TransactionRepository defines data access for ledger rows.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, userID, id string, upd TransactionUpdate) (*domain.Transaction, error)
	// Delete removes the row and returns what was deleted, so callers
	// can reverse the balance from the authoritative amount.
	Delete(ctx context.Context, tx Transaction, userID, id string) (*domain.Transaction, error)
	DeleteByAccount(ctx context.Context, tx Transaction, userID, accountID string) error
	NullifyCategory(ctx context.Context, tx Transaction, userID, categoryID string) error
	ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	Recent(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
	SumByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error)
	Count(ctx context.Context, userID string) (int64, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, userID, id string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transfer, error)
}

// InvestmentRepository defines data access for investments.
type InvestmentRepository interface {
	Create(ctx context.Context, tx Transaction, inv *domain.Investment) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Investment, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	CreateBatch(ctx context.Context, categories []*domain.Category) error
	GetByID(ctx context.Context, userID, id string) (*domain.Category, error)
	List(ctx context.Context, userID string) ([]*domain.Category, error)
	ListByKind(ctx context.Context, userID string, kind domain.CategoryKind) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, tx Transaction, userID, id string) error
	Count(ctx context.Context, userID string) (int64, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// NotificationRepository defines data access for the in-app feed.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	Clear(ctx context.Context, userID string) error
}

// UserDataExport is the portable snapshot of everything a user owns.
type UserDataExport struct {
	Accounts     []*domain.Account
	Categories   []*domain.Category
	Transactions []*domain.Transaction
	Transfers    []*domain.Transfer
	Investments  []*domain.Investment
}

// BackupRepository handles whole-profile export, import and wipe.
type BackupRepository interface {
	Export(ctx context.Context, userID string) (*UserDataExport, error)
	Import(ctx context.Context, tx Transaction, userID string, data *UserDataExport) error
	Clear(ctx context.Context, tx Transaction, userID string) (map[string]int64, error)
}

// AccessGrantStore holds ephemeral pairing records. Implementations
// evaluate expiry lazily: Get never returns an expired record.
type AccessGrantStore interface {
	Create(ctx context.Context, req *domain.AccessGrantRequest) error
	Get(ctx context.Context, id string) (*domain.AccessGrantRequest, error)
	Update(ctx context.Context, req *domain.AccessGrantRequest) error
	// IncrementAttempts bumps the failure counter atomically and
	// returns the new count.
	IncrementAttempts(ctx context.Context, id string) (int, error)
	// Delete is a no-op for absent records.
	Delete(ctx context.Context, id string) error
	SweepExpired(ctx context.Context) int
}

// SessionStore persists authenticated sessions.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// Notifier is the output port for post-commit events. Calls must never
// block or fail the mutation that triggered them.
type Notifier interface {
	AccountsChanged(userID string)
	TransactionsChanged(userID string)
	DashboardChanged(userID string)
	CategoriesChanged(userID string)
	AccessRequested(ownerID string, event domain.AccessRequestEvent)
	AccessCodeIssued(ownerID string, event domain.AccessCodeEvent)
	NotificationCreated(userID string, n *domain.Notification)
}

// ShareCodec issues and parses signed read-only share codes.
type ShareCodec interface {
	Issue(ownerID string) (code string, expiresAt time.Time, err error)
	Parse(code string) (ownerID string, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// RunInTx runs fn inside a transaction and commits it. Transient
	// failures such as deadlocks retry the whole closure.
	RunInTx(ctx context.Context, fn func(tx Transaction) error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
