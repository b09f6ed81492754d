package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
)

// CurrencyRepository defines data access for currencies.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *domain.Currency) error
	GetByID(ctx context.Context, id string) (*domain.Currency, error)
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)
	// GetDefault returns the single base currency, or domain.ErrNoDefaultCurrency.
	GetDefault(ctx context.Context) (*domain.Currency, error)
	List(ctx context.Context) ([]*domain.Currency, error)
}

// RateRepository defines data access for the append-only exchange-rate log.
type RateRepository interface {
	Create(ctx context.Context, tx Transaction, rate *domain.ExchangeRate) error
	// GetOpenForUpdate locks and returns the currency's open-ended record,
	// or (nil, nil) when the currency has no open record yet.
	GetOpenForUpdate(ctx context.Context, tx Transaction, currencyID string) (*domain.ExchangeRate, error)
	// CloseOpen sets effective_to on the currency's open record.
	CloseOpen(ctx context.Context, tx Transaction, currencyID string, effectiveTo time.Time) error
	// EffectiveOn returns the record covering the date, latest effective_from
	// winning, or domain.ErrNoRateAvailable.
	EffectiveOn(ctx context.Context, currencyID string, on time.Time) (*domain.ExchangeRate, error)
	ListByCurrency(ctx context.Context, currencyID string) ([]*domain.ExchangeRate, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.Entry, error)
	ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.Entry, error)
}

// ClientBalanceRepository defines data access for the client balance aggregate.
type ClientBalanceRepository interface {
	// Get returns the client's balance, zero when no row exists yet.
	Get(ctx context.Context, clientID string) (*domain.ClientBalance, error)
	// Add atomically increments the balance, creating the row at zero first
	// if the client has none.
	Add(ctx context.Context, tx Transaction, clientID string, delta decimal.Decimal, updatedAt time.Time) error
}

// RegisterRepository defines data access for cash registers and their balances.
type RegisterRepository interface {
	Create(ctx context.Context, register *domain.CashRegister) error
	GetByID(ctx context.Context, id string) (*domain.CashRegister, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.CashRegister, error)
	// AddBalance atomically increments the register balance;
	// domain.ErrRegisterNotFound when the register does not exist.
	AddBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.CashRegister, error)
}

// TransferRepository defines data access for cash transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.CashTransfer) error
	GetByID(ctx context.Context, id string) (*domain.CashTransfer, error)
	ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.CashTransfer, error)
}

// Converter converts monetary amounts between currencies through the base
// currency, using the rate effective on a date.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)
	ToBase(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ChangeNotifier is the fire-and-forget sink told about committed balance
// mutations so dependent read caches can invalidate. Implementations must
// never propagate failures into the mutation path.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, event domain.BalanceChangedEvent)
}

// Cache defines caching operations for balance reads.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
