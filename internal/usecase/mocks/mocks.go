package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Began []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Began = append(m.Began, tx)
	return tx, nil
}

// MockRetrier runs the operation once, no backoff.
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

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu sync.Mutex
	n  int
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
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

// MockCurrencyRepository is an in-memory CurrencyRepository.
type MockCurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]*domain.Currency

	CreateFunc     func(ctx context.Context, currency *domain.Currency) error
	GetByCodeFunc  func(ctx context.Context, code string) (*domain.Currency, error)
	GetDefaultFunc func(ctx context.Context) (*domain.Currency, error)
}

func NewMockCurrencyRepository() *MockCurrencyRepository {
	return &MockCurrencyRepository{currencies: make(map[string]*domain.Currency)}
}

func (m *MockCurrencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, currency)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currencies[currency.Code] = currency
	return nil
}

func (m *MockCurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.currencies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.currencies[code]; ok {
		return c, nil
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) GetDefault(ctx context.Context) (*domain.Currency, error) {
	if m.GetDefaultFunc != nil {
		return m.GetDefaultFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.currencies {
		if c.IsDefault {
			return c, nil
		}
	}
	return nil, domain.ErrNoDefaultCurrency
}

func (m *MockCurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Currency, 0, len(m.currencies))
	for _, c := range m.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// MockRateRepository is an in-memory RateRepository over per-currency
// histories.
type MockRateRepository struct {
	mu    sync.RWMutex
	rates map[string][]*domain.ExchangeRate

	EffectiveOnFunc func(ctx context.Context, currencyID string, on time.Time) (*domain.ExchangeRate, error)
}

func NewMockRateRepository() *MockRateRepository {
	return &MockRateRepository{rates: make(map[string][]*domain.ExchangeRate)}
}

func (m *MockRateRepository) Create(ctx context.Context, tx usecase.Transaction, rate *domain.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rate.CurrencyID] = append(m.rates[rate.CurrencyID], rate)
	return nil
}

func (m *MockRateRepository) GetOpenForUpdate(ctx context.Context, tx usecase.Transaction, currencyID string) (*domain.ExchangeRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rates[currencyID] {
		if r.EffectiveTo == nil {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockRateRepository) CloseOpen(ctx context.Context, tx usecase.Transaction, currencyID string, effectiveTo time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rates[currencyID] {
		if r.EffectiveTo == nil {
			to := effectiveTo
			r.EffectiveTo = &to
		}
	}
	return nil
}

func (m *MockRateRepository) EffectiveOn(ctx context.Context, currencyID string, on time.Time) (*domain.ExchangeRate, error) {
	if m.EffectiveOnFunc != nil {
		return m.EffectiveOnFunc(ctx, currencyID, on)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rate, ok := domain.ResolveRate(m.rates[currencyID], on)
	if !ok {
		return nil, domain.ErrNoRateAvailable
	}
	return &domain.ExchangeRate{CurrencyID: currencyID, Rate: rate}, nil
}

func (m *MockRateRepository) ListByCurrency(ctx context.Context, currencyID string) ([]*domain.ExchangeRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.ExchangeRate, len(m.rates[currencyID]))
	copy(out, m.rates[currencyID])
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

// MockEntryRepository is an in-memory EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	UpdateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	DeleteFunc func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{entries: make(map[string]*domain.Entry)}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	return m.GetByID(ctx, id)
}

func (m *MockEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.ClientID != nil && *e.ClientID == clientID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (m *MockEntryRepository) ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.RegisterID != nil && *e.RegisterID == registerID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// MockClientBalanceRepository accumulates balances in memory.
type MockClientBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal

	AddFunc func(ctx context.Context, tx usecase.Transaction, clientID string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockClientBalanceRepository() *MockClientBalanceRepository {
	return &MockClientBalanceRepository{balances: make(map[string]decimal.Decimal)}
}

func (m *MockClientBalanceRepository) Get(ctx context.Context, clientID string) (*domain.ClientBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	balance, ok := m.balances[clientID]
	if !ok {
		balance = decimal.Zero
	}
	return &domain.ClientBalance{ClientID: clientID, Balance: balance}, nil
}

func (m *MockClientBalanceRepository) Add(ctx context.Context, tx usecase.Transaction, clientID string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, tx, clientID, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[clientID] = m.balances[clientID].Add(delta)
	return nil
}

// Balance is a test helper returning the raw stored balance.
func (m *MockClientBalanceRepository) Balance(clientID string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[clientID]
}

// MockRegisterRepository is an in-memory RegisterRepository.
type MockRegisterRepository struct {
	mu        sync.RWMutex
	registers map[string]*domain.CashRegister

	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.CashRegister, error)
	AddBalanceFunc        func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockRegisterRepository() *MockRegisterRepository {
	return &MockRegisterRepository{registers: make(map[string]*domain.CashRegister)}
}

func (m *MockRegisterRepository) Create(ctx context.Context, register *domain.CashRegister) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registers[register.ID] = register
	return nil
}

func (m *MockRegisterRepository) GetByID(ctx context.Context, id string) (*domain.CashRegister, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.registers[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, domain.ErrRegisterNotFound
}

func (m *MockRegisterRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.CashRegister, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CashRegister
	for _, id := range ids {
		if r, ok := m.registers[id]; ok {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockRegisterRepository) AddBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.AddBalanceFunc != nil {
		return m.AddBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.registers[id]
	if !ok {
		return domain.ErrRegisterNotFound
	}
	r.Balance = r.Balance.Add(delta)
	r.UpdatedAt = updatedAt
	return nil
}

func (m *MockRegisterRepository) List(ctx context.Context, limit, offset int) ([]*domain.CashRegister, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CashRegister
	for _, r := range m.registers {
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// MockTransferRepository is an in-memory TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.CashTransfer

	CreateFunc func(ctx context.Context, tx usecase.Transaction, transfer *domain.CashTransfer) error
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{transfers: make(map[string]*domain.CashTransfer)}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.CashTransfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.CashTransfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.CashTransfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CashTransfer
	for _, t := range m.transfers {
		if t.FromRegisterID == registerID || t.ToRegisterID == registerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// MockConverter converts 1:1 unless a func is provided.
type MockConverter struct {
	ConvertFunc func(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)
	ToBaseFunc  func(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, error)
}

func NewMockConverter() *MockConverter {
	return &MockConverter{}
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, amount, fromCode, toCode, asOf)
	}
	return amount, nil
}

func (m *MockConverter) ToBase(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, error) {
	if m.ToBaseFunc != nil {
		return m.ToBaseFunc(ctx, amount, fromCode, asOf)
	}
	return amount, nil
}

// MockNotifier records change events.
type MockNotifier struct {
	mu     sync.Mutex
	Events []domain.BalanceChangedEvent
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyChanged(ctx context.Context, event domain.BalanceChangedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// MockCache is an in-memory Cache; TTLs are ignored.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

var errCacheMiss = errors.New("cache miss")

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
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

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
