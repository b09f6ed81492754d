package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks/internal/domain"
)

// CurrencyRepository implements usecase.CurrencyRepository.
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

const currencyColumns = `id, code, symbol, is_default, created_at`

// Create creates a new currency.
func (r *CurrencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO currencies (`+currencyColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		currency.ID,
		currency.Code,
		currency.Symbol,
		currency.IsDefault,
		timeToPgTimestamptz(currency.CreatedAt),
	)

	return err
}

// GetByID retrieves a currency by ID.
func (r *CurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		WHERE id = $1`, id)

	return scanCurrency(row)
}

// GetByCode retrieves a currency by its three-letter code.
func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		WHERE code = $1`, code)

	return scanCurrency(row)
}

// GetDefault retrieves the base currency.
func (r *CurrencyRepository) GetDefault(ctx context.Context) (*domain.Currency, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		WHERE is_default`)

	currency, err := scanCurrency(row)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			return nil, domain.ErrNoDefaultCurrency
		}

		return nil, err
	}

	return currency, nil
}

// List lists currencies ordered by code.
func (r *CurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []*domain.Currency
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}

	return currencies, rows.Err()
}

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var c domain.Currency

	err := row.Scan(&c.ID, &c.Code, &c.Symbol, &c.IsDefault, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCurrencyNotFound
		}

		return nil, err
	}

	return &c, nil
}
