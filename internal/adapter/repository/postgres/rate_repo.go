package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// RateRepository implements usecase.RateRepository over the append-only
// exchange-rate log.
type RateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new RateRepository.
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

const rateColumns = `id, currency_id, rate, effective_from, effective_to, created_at`

// Create appends a rate record.
func (r *RateRepository) Create(ctx context.Context, tx usecase.Transaction, rate *domain.ExchangeRate) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO exchange_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rate.ID,
		rate.CurrencyID,
		decimalToNumeric(rate.Rate),
		timeToPgTimestamptz(rate.EffectiveFrom),
		timePtrToPgTimestamptz(rate.EffectiveTo),
		timeToPgTimestamptz(rate.CreatedAt),
	)

	return err
}

// GetOpenForUpdate locks and returns the currency's open-ended record, or
// (nil, nil) when there is none.
func (r *RateRepository) GetOpenForUpdate(ctx context.Context, tx usecase.Transaction, currencyID string) (*domain.ExchangeRate, error) {
	row := pgxTx(tx).QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE currency_id = $1 AND effective_to IS NULL
		FOR UPDATE`, currencyID)

	rate, err := scanRate(row)
	if err != nil {
		if errors.Is(err, domain.ErrNoRateAvailable) {
			return nil, nil
		}

		return nil, err
	}

	return rate, nil
}

// CloseOpen sets effective_to on the currency's open record.
func (r *RateRepository) CloseOpen(ctx context.Context, tx usecase.Transaction, currencyID string, effectiveTo time.Time) error {
	_, err := pgxTx(tx).Exec(ctx, `
		UPDATE exchange_rates
		SET effective_to = $2
		WHERE currency_id = $1 AND effective_to IS NULL`,
		currencyID,
		timeToPgTimestamptz(effectiveTo),
	)

	return err
}

// EffectiveOn returns the record covering the date. When ranges touch, the
// one with the latest effective_from wins.
func (r *RateRepository) EffectiveOn(ctx context.Context, currencyID string, on time.Time) (*domain.ExchangeRate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE currency_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
		LIMIT 1`,
		currencyID,
		timeToPgTimestamptz(on),
	)

	return scanRate(row)
}

// ListByCurrency lists a currency's rate records, newest first.
func (r *RateRepository) ListByCurrency(ctx context.Context, currencyID string) ([]*domain.ExchangeRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE currency_id = $1
		ORDER BY effective_from DESC`, currencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.ExchangeRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

func scanRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var (
		rate        domain.ExchangeRate
		rateValue   pgtype.Numeric
		effectiveTo pgtype.Timestamptz
	)

	err := row.Scan(&rate.ID, &rate.CurrencyID, &rateValue, &rate.EffectiveFrom, &effectiveTo, &rate.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoRateAvailable
		}

		return nil, err
	}

	rate.Rate = numericToDecimal(rateValue)
	rate.EffectiveTo = pgTimestamptzToTimePtr(effectiveTo)

	return &rate, nil
}
