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

// RegisterRepository implements usecase.RegisterRepository.
type RegisterRepository struct {
	pool *pgxpool.Pool
}

// NewRegisterRepository creates a new RegisterRepository.
func NewRegisterRepository(pool *pgxpool.Pool) *RegisterRepository {
	return &RegisterRepository{pool: pool}
}

const registerColumns = `id, name, currency, balance, created_at, updated_at`

// Create creates a new cash register.
func (r *RegisterRepository) Create(ctx context.Context, register *domain.CashRegister) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cash_registers (`+registerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		register.ID,
		register.Name,
		register.Currency,
		decimalToNumeric(register.Balance),
		timeToPgTimestamptz(register.CreatedAt),
		timeToPgTimestamptz(register.UpdatedAt),
	)

	return err
}

// GetByID retrieves a register by ID.
func (r *RegisterRepository) GetByID(ctx context.Context, id string) (*domain.CashRegister, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+registerColumns+`
		FROM cash_registers
		WHERE id = $1`, id)

	return scanRegister(row)
}

// GetByIDsForUpdate locks and returns the registers. Callers pass IDs in
// sorted order so concurrent transfers acquire locks consistently.
func (r *RegisterRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.CashRegister, error) {
	rows, err := pgxTx(tx).Query(ctx, `
		SELECT `+registerColumns+`
		FROM cash_registers
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registers []*domain.CashRegister
	for rows.Next() {
		register, err := scanRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, register)
	}

	return registers, rows.Err()
}

// AddBalance atomically increments the register's balance.
func (r *RegisterRepository) AddBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE cash_registers
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1`,
		id,
		decimalToNumeric(delta),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRegisterNotFound
	}

	return nil
}

// List lists registers ordered by name.
func (r *RegisterRepository) List(ctx context.Context, limit, offset int) ([]*domain.CashRegister, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+registerColumns+`
		FROM cash_registers
		ORDER BY name, id
		LIMIT $1 OFFSET $2`, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registers []*domain.CashRegister
	for rows.Next() {
		register, err := scanRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, register)
	}

	return registers, rows.Err()
}

func scanRegister(row pgx.Row) (*domain.CashRegister, error) {
	var (
		register domain.CashRegister
		balance  pgtype.Numeric
	)

	err := row.Scan(&register.ID, &register.Name, &register.Currency, &balance, &register.CreatedAt, &register.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRegisterNotFound
		}

		return nil, err
	}

	register.Balance = numericToDecimal(balance)

	return &register, nil
}
