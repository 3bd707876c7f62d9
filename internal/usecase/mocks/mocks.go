package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

// MockAccountRepository is a map-backed mock implementation of
// AccountRepository. Lookups return copies so a unit of work only becomes
// visible through UpdateByID, mirroring the load-mutate-store contract.
type MockAccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]*domain.Account

	InsertFunc                 func(ctx context.Context, account *domain.Account) (int64, error)
	FindByIDFunc               func(ctx context.Context, id int64) (*domain.Account, error)
	FindByNumberFunc           func(ctx context.Context, number string) (*domain.Account, error)
	FindByNumberForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error)
	FindByNumbersForUpdateFunc func(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error)
	UpdateByIDFunc             func(ctx context.Context, tx usecase.Transaction, account *domain.Account) (int64, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

// Seed stores an account directly, assigning an id when missing.
func (m *MockAccountRepository) Seed(account *domain.Account) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	m.accounts[account.ID] = account
	return account
}

func (m *MockAccountRepository) Insert(ctx context.Context, account *domain.Account) (int64, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Number == account.Number {
			return 0, domain.ErrInvalidOperation
		}
	}
	m.nextID++
	copied := *account
	copied.ID = m.nextID
	m.accounts[copied.ID] = &copied
	return copied.ID, nil
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findByNumberLocked(number)
}

func (m *MockAccountRepository) findByNumberLocked(number string) (*domain.Account, error) {
	for _, a := range m.accounts {
		if a.Number == number {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByNumberForUpdate(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	if m.FindByNumberForUpdateFunc != nil {
		return m.FindByNumberForUpdateFunc(ctx, tx, number)
	}
	return m.FindByNumber(ctx, number)
}

func (m *MockAccountRepository) FindByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	if m.FindByNumbersForUpdateFunc != nil {
		return m.FindByNumbersForUpdateFunc(ctx, tx, numbers)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, n := range numbers {
		a, err := m.findByNumberLocked(n)
		if err != nil {
			continue
		}
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) UpdateByID(ctx context.Context, tx usecase.Transaction, account *domain.Account) (int64, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.ID]
	if !ok {
		return 0, nil
	}
	stored.Balance = account.Balance
	return 1, nil
}

func (m *MockAccountRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, a := range m.accounts {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockAccountRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			copied := *a
			accounts = append(accounts, &copied)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	if offset >= len(accounts) {
		return nil, nil
	}
	accounts = accounts[offset:]
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

// MockHistoryRepository is an append-only mock implementation of
// HistoryRepository.
type MockHistoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	entries []*domain.HistoryEntry

	InsertFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) (int64, error)
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Insert(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) (int64, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	copied := *entry
	copied.ID = m.nextID
	m.entries = append(m.entries, &copied)
	entry.ID = copied.ID
	return 1, nil
}

func (m *MockHistoryRepository) matches(e *domain.HistoryEntry, typ domain.HistoryType, accountID int64) bool {
	switch typ {
	case domain.HistoryWithdrawal:
		return e.WAccount != nil && *e.WAccount == accountID
	case domain.HistoryDeposit:
		return e.DAccount != nil && *e.DAccount == accountID
	default:
		return (e.WAccount != nil && *e.WAccount == accountID) ||
			(e.DAccount != nil && *e.DAccount == accountID)
	}
}

func (m *MockHistoryRepository) FindByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64, limit, offset int) ([]*domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.HistoryEntry
	for i := len(m.entries) - 1; i >= 0; i-- { // newest first
		if m.matches(m.entries[i], typ, accountID) {
			copied := *m.entries[i]
			matched = append(matched, &copied)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockHistoryRepository) CountByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, e := range m.entries {
		if m.matches(e, typ, accountID) {
			count++
		}
	}
	return count, nil
}

// All returns every stored entry in insertion order.
func (m *MockHistoryRepository) All() []*domain.HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.HistoryEntry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// MockTransactionManager serializes units of work with a mutex, emulating
// row-lock isolation: Begin blocks until the previous transaction commits or
// rolls back.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &MockTransaction{release: func() { m.mu.Unlock() }}, nil
}

// MockTransaction releases the manager's lock exactly once on commit or
// rollback.
type MockTransaction struct {
	once    sync.Once
	release func()

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.once.Do(func() {
		t.Committed = true
		if t.release != nil {
			t.release()
		}
	})
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.once.Do(func() {
		t.RolledBack = true
		if t.release != nil {
			t.release()
		}
	})
	return nil
}

// MockRetrier runs the operation exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockPasswordHasher prefixes instead of hashing so tests stay readable.
type MockPasswordHasher struct{}

func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Verify(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredential
	}
	return nil
}

// MockReferenceGenerator produces sequential references.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("ref-%04d", m.counter)
}

// MockCache is an in-memory Cache without expiry.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIdempotencyStore is an in-memory IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{values: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.values[key] = response
	} else {
		m.values[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
