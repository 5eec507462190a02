package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc    func(ctx context.Context, account *domain.Account) error
	CreateTxFunc  func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsFunc  func(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error)
	SetActiveFunc func(ctx context.Context, id string, active bool, updatedAt time.Time) error
	ListFunc      func(ctx context.Context, filter usecase.ListAccountsFilter) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
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

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDs(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Active = active
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, filter usecase.ListAccountsFilter) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if filter.OwnerID != "" && acc.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Classification != "" && acc.Classification != filter.Classification {
			continue
		}
		if filter.Currency != "" && acc.Currency != filter.Currency {
			continue
		}
		if filter.ActiveOnly && !acc.Active {
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc      func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Transaction, error)
	MarkPostedFunc  func(ctx context.Context, tx usecase.Tx, id string, postedAt time.Time) error
	DeleteDraftFunc func(ctx context.Context, tx usecase.Tx, id string) error
	ListPostedFunc  func(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) MarkPosted(ctx context.Context, tx usecase.Tx, id string, postedAt time.Time) error {
	if m.MarkPostedFunc != nil {
		return m.MarkPostedFunc(ctx, tx, id, postedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.transactions[id]; ok {
		t.PostedAt = &postedAt
	}
	return nil
}

func (m *MockTransactionRepository) DeleteDraft(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteDraftFunc != nil {
		return m.DeleteDraftFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) ListPosted(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListPostedFunc != nil {
		return m.ListPostedFunc(ctx, from, to, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if !t.IsPosted() {
			continue
		}
		if t.RecordedAt.Before(from) || t.RecordedAt.After(to) {
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc              func(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Entry, error)
	GetByTransactionFunc    func(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	GetByAccountFunc        func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	GetReversalsFunc        func(ctx context.Context, entryID string) ([]*domain.Entry, error)
	DeleteByTransactionFunc func(ctx context.Context, tx usecase.Tx, transactionID string) error
	SumAsOfFunc             func(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if m.GetByTransactionFunc != nil {
		return m.GetByTransactionFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) GetReversals(ctx context.Context, entryID string) ([]*domain.Entry, error) {
	if m.GetReversalsFunc != nil {
		return m.GetReversalsFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.Reverses != nil && *e.Reverses == entryID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) DeleteByTransaction(ctx context.Context, tx usecase.Tx, transactionID string) error {
	if m.DeleteByTransactionFunc != nil {
		return m.DeleteByTransactionFunc(ctx, tx, transactionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.TransactionID == transactionID {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *MockEntryRepository) SumAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumAsOfFunc != nil {
		return m.SumAsOfFunc(ctx, accountID, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range m.entries {
		if e.AccountID != accountID || e.EffectiveAt.After(asOf) {
			continue
		}
		if e.Direction == domain.DirectionDebit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	FindUnbalancedTransactionsFunc func(ctx context.Context, limit int) ([]string, error)
	TotalsByCurrencyFunc           func(ctx context.Context) (map[string]domain.CurrencyTotals, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) FindUnbalancedTransactions(ctx context.Context, limit int) ([]string, error) {
	if m.FindUnbalancedTransactionsFunc != nil {
		return m.FindUnbalancedTransactionsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockLedgerRepository) TotalsByCurrency(ctx context.Context) (map[string]domain.CurrencyTotals, error) {
	if m.TotalsByCurrencyFunc != nil {
		return m.TotalsByCurrencyFunc(ctx)
	}
	return map[string]domain.CurrencyTotals{}, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{
		events: make(map[string]*domain.OutboxEvent),
	}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) >= limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok {
		e.Published = true
		e.PublishedAt = &publishedAt
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			delete(m.events, id)
		}
	}
	return nil
}

// Events returns a snapshot of all stored events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	return events
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
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
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
