package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `id, from_register_id, to_register_id,
	withdrawal_entry_id, deposit_entry_id, amount, dest_amount, note, created_at`

// Create creates a new transfer record.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.CashTransfer) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO cash_transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transfer.ID,
		transfer.FromRegisterID,
		transfer.ToRegisterID,
		transfer.WithdrawalEntryID,
		transfer.DepositEntryID,
		decimalToNumeric(transfer.Amount),
		decimalToNumeric(transfer.DestAmount),
		transfer.Note,
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.CashTransfer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transferColumns+`
		FROM cash_transfers
		WHERE id = $1`, id)

	return scanTransfer(row)
}

// ListByRegister lists transfers where the register is either side, newest
// first.
func (r *TransferRepository) ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.CashTransfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+`
		FROM cash_transfers
		WHERE from_register_id = $1 OR to_register_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		registerID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.CashTransfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func scanTransfer(row pgx.Row) (*domain.CashTransfer, error) {
	var (
		transfer   domain.CashTransfer
		amount     pgtype.Numeric
		destAmount pgtype.Numeric
	)

	err := row.Scan(
		&transfer.ID, &transfer.FromRegisterID, &transfer.ToRegisterID,
		&transfer.WithdrawalEntryID, &transfer.DepositEntryID,
		&amount, &destAmount, &transfer.Note, &transfer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.DestAmount = numericToDecimal(destAmount)

	return &transfer, nil
}
