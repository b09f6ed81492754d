package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// ClientBalanceRepository implements usecase.ClientBalanceRepository. The
// balance row is only ever moved by relative increments, so concurrent
// entries never lose updates.
type ClientBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewClientBalanceRepository creates a new ClientBalanceRepository.
func NewClientBalanceRepository(pool *pgxpool.Pool) *ClientBalanceRepository {
	return &ClientBalanceRepository{pool: pool}
}

// Get returns the client's balance, zero when the client has no row yet.
func (r *ClientBalanceRepository) Get(ctx context.Context, clientID string) (*domain.ClientBalance, error) {
	var (
		balance   pgtype.Numeric
		updatedAt time.Time
	)

	err := r.pool.QueryRow(ctx, `
		SELECT balance, updated_at
		FROM client_balances
		WHERE client_id = $1`, clientID).Scan(&balance, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ClientBalance{ClientID: clientID, Balance: decimal.Zero}, nil
		}

		return nil, err
	}

	return &domain.ClientBalance{
		ClientID:  clientID,
		Balance:   numericToDecimal(balance),
		UpdatedAt: updatedAt,
	}, nil
}

// Add atomically increments the client's balance, creating the row first
// when absent.
func (r *ClientBalanceRepository) Add(ctx context.Context, tx usecase.Transaction, clientID string, delta decimal.Decimal, updatedAt time.Time) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO client_balances (client_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id)
		DO UPDATE SET balance = client_balances.balance + EXCLUDED.balance,
		              updated_at = EXCLUDED.updated_at`,
		clientID,
		decimalToNumeric(delta),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}
