package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// MockAccountRepository is a stateful mock of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, userID, id string) (*domain.Account, error)
	GetForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error)
	GetManyForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateFunc           func(ctx context.Context, account *domain.Account) error
	ListFunc             func(ctx context.Context, userID string) ([]*domain.Account, error)
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, userID, id string) error
	CountFunc            func(ctx context.Context, userID string) (int64, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.UserID == userID {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, userID, id)
	}
	return m.GetByID(ctx, userID, id)
}

func (m *MockAccountRepository) GetManyForUpdate(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error) {
	if m.GetManyForUpdateFunc != nil {
		return m.GetManyForUpdateFunc(ctx, tx, userID, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok && acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; !ok || acc.UserID != userID {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) Count(ctx context.Context, userID string) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			n++
		}
	}
	return n, nil
}

// MockTransactionRepository is a stateful mock of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc         func(ctx context.Context, userID, id string) (*domain.Transaction, error)
	UpdateFunc          func(ctx context.Context, userID, id string, upd usecase.TransactionUpdate) (*domain.Transaction, error)
	DeleteFunc          func(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Transaction, error)
	DeleteByAccountFunc func(ctx context.Context, tx usecase.Transaction, userID, accountID string) error
	NullifyCategoryFunc func(ctx context.Context, tx usecase.Transaction, userID, categoryID string) error
	ListByAccountFunc   func(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	RecentFunc          func(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
	SumByKindFunc       func(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error)
	CountFunc           func(ctx context.Context, userID string) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{txns: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.txns[id]; ok && txn.UserID == userID {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, userID, id string, upd usecase.TransactionUpdate) (*domain.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, upd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[id]
	if !ok || txn.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	if upd.Note != nil {
		txn.Note = *upd.Note
	}
	if upd.Amount != nil {
		txn.Amount = *upd.Amount
	}
	if upd.CreatedAt != nil {
		txn.CreatedAt = *upd.CreatedAt
	}
	if upd.CategoryID != nil {
		txn.CategoryID = upd.CategoryID
	}
	if upd.AccountID != nil {
		txn.AccountID = *upd.AccountID
	}
	return txn, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Transaction, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[id]
	if !ok || txn.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	delete(m.txns, id)
	return txn, nil
}

func (m *MockTransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, userID, accountID string) error {
	if m.DeleteByAccountFunc != nil {
		return m.DeleteByAccountFunc(ctx, tx, userID, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, txn := range m.txns {
		if txn.UserID == userID && txn.AccountID == accountID {
			delete(m.txns, id)
		}
	}
	return nil
}

func (m *MockTransactionRepository) NullifyCategory(ctx context.Context, tx usecase.Transaction, userID, categoryID string) error {
	if m.NullifyCategoryFunc != nil {
		return m.NullifyCategoryFunc(ctx, tx, userID, categoryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, txn := range m.txns {
		if txn.UserID == userID && txn.CategoryID != nil && *txn.CategoryID == categoryID {
			txn.CategoryID = nil
		}
	}
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, userID, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.txns {
		if txn.UserID == userID && txn.AccountID == accountID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (m *MockTransactionRepository) Recent(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, userID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.txns {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
		if len(txns) == limit {
			break
		}
	}
	return txns, nil
}

func (m *MockTransactionRepository) SumByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error) {
	if m.SumByKindFunc != nil {
		return m.SumByKindFunc(ctx, userID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[domain.TransactionKind]decimal.Decimal)
	for _, txn := range m.txns {
		if txn.UserID != userID || txn.CreatedAt.Before(from) || !txn.CreatedAt.Before(to) {
			continue
		}
		sums[txn.Kind] = sums[txn.Kind].Add(txn.Amount)
	}
	return sums, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context, userID string) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, txn := range m.txns {
		if txn.UserID == userID {
			n++
		}
	}
	return n, nil
}

// MockTransferRepository is a stateful mock of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc       func(ctx context.Context, userID, id string) (*domain.Transfer, error)
	ListByAccountFunc func(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{transfers: make(map[string]*domain.Transfer)}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, userID, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.UserID != userID {
			continue
		}
		if t.FromAccountID == accountID || (t.ToAccountID != nil && *t.ToAccountID == accountID) {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// MockInvestmentRepository is a stateful mock of InvestmentRepository.
type MockInvestmentRepository struct {
	mu          sync.RWMutex
	investments map[string]*domain.Investment

	CreateFunc func(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error
}

func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{investments: make(map[string]*domain.Investment)}
}

func (m *MockInvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, inv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.investments[inv.ID] = inv
	return nil
}

func (m *MockInvestmentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Investment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var investments []*domain.Investment
	for _, inv := range m.investments {
		if inv.UserID == userID {
			investments = append(investments, inv)
		}
	}
	return investments, nil
}

// MockCategoryRepository is a stateful mock of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc      func(ctx context.Context, category *domain.Category) error
	CreateBatchFunc func(ctx context.Context, categories []*domain.Category) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) CreateBatch(ctx context.Context, categories []*domain.Category) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, categories)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) ListByKind(ctx context.Context, userID string, kind domain.CategoryKind) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.categories {
		if c.UserID == userID && c.Kind == kind {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; !ok || c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryRepository) Count(ctx context.Context, userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, c := range m.categories {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

// MockUserRepository is a stateful mock of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// MockNotificationRepository is a stateful mock of NotificationRepository.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification

	CreateFunc func(ctx context.Context, n *domain.Notification) error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockNotificationRepository) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}

// All returns every stored notification, for assertions.
func (m *MockNotificationRepository) All() []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// MockAccessGrantStore is a stateful mock of AccessGrantStore.
type MockAccessGrantStore struct {
	mu       sync.RWMutex
	requests map[string]*domain.AccessGrantRequest
}

func NewMockAccessGrantStore() *MockAccessGrantStore {
	return &MockAccessGrantStore{requests: make(map[string]*domain.AccessGrantRequest)}
}

func (m *MockAccessGrantStore) Create(ctx context.Context, req *domain.AccessGrantRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *MockAccessGrantStore) Get(ctx context.Context, id string) (*domain.AccessGrantRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok || req.Expired(time.Now().UTC()) {
		return nil, domain.ErrAccessRequestNotFound
	}
	return req, nil
}

func (m *MockAccessGrantStore) Update(ctx context.Context, req *domain.AccessGrantRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return domain.ErrAccessRequestNotFound
	}
	m.requests[req.ID] = req
	return nil
}

func (m *MockAccessGrantStore) IncrementAttempts(ctx context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok || req.Expired(time.Now().UTC()) {
		return 0, domain.ErrAccessRequestNotFound
	}
	req.Attempts++
	return req.Attempts, nil
}

func (m *MockAccessGrantStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

func (m *MockAccessGrantStore) SweepExpired(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	var n int
	for id, req := range m.requests {
		if req.Expired(now) {
			delete(m.requests, id)
			n++
		}
	}
	return n
}

// MockSessionStore is a stateful mock of SessionStore.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	CreateFunc func(ctx context.Context, session *domain.Session, ttl time.Duration) error
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrUnauthorized
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// MockTransactionManager returns no-op transactions.
type MockTransactionManager struct {
	BeginFunc   func(ctx context.Context) (usecase.Transaction, error)
	RunInTxFunc func(ctx context.Context, fn func(tx usecase.Transaction) error) error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

func (m *MockTransactionManager) RunInTx(ctx context.Context, fn func(tx usecase.Transaction) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// MockTransaction is a no-op transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// MockNotifier records emitted events for assertions.
type MockNotifier struct {
	mu sync.Mutex

	AccountEvents      []string
	TransactionEvents  []string
	DashboardEvents    []string
	CategoryEvents     []string
	AccessRequests     []domain.AccessRequestEvent
	AccessCodes        []domain.AccessCodeEvent
	NotificationEvents []*domain.Notification
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) AccountsChanged(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountEvents = append(m.AccountEvents, userID)
}

func (m *MockNotifier) TransactionsChanged(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TransactionEvents = append(m.TransactionEvents, userID)
}

func (m *MockNotifier) DashboardChanged(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DashboardEvents = append(m.DashboardEvents, userID)
}

func (m *MockNotifier) CategoriesChanged(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CategoryEvents = append(m.CategoryEvents, userID)
}

func (m *MockNotifier) AccessRequested(ownerID string, event domain.AccessRequestEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccessRequests = append(m.AccessRequests, event)
}

func (m *MockNotifier) AccessCodeIssued(ownerID string, event domain.AccessCodeEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccessCodes = append(m.AccessCodes, event)
}

func (m *MockNotifier) NotificationCreated(userID string, n *domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationEvents = append(m.NotificationEvents, n)
}
