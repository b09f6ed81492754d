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

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, direction, amount, orig_amount, currency, kind,
	client_id, register_id, document_type, document_id, entry_date,
	created_at, updated_at`

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	docType, docID := documentColumns(entry.Document)

	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		int16(entry.Direction),
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.OrigAmount),
		entry.Currency,
		string(entry.Kind),
		stringPtrToText(entry.ClientID),
		stringPtrToText(entry.RegisterID),
		docType,
		docID,
		timeToPgTimestamptz(entry.Date),
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE id = $1`, id)

	return scanEntry(row)
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	row := pgxTx(tx).QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE id = $1
		FOR UPDATE`, id)

	return scanEntry(row)
}

// Update replaces the entry's mutable fields.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	docType, docID := documentColumns(entry.Document)

	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE entries
		SET direction = $2, amount = $3, orig_amount = $4, currency = $5,
		    kind = $6, client_id = $7, register_id = $8, document_type = $9,
		    document_id = $10, entry_date = $11, updated_at = $12
		WHERE id = $1`,
		entry.ID,
		int16(entry.Direction),
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.OrigAmount),
		entry.Currency,
		string(entry.Kind),
		stringPtrToText(entry.ClientID),
		stringPtrToText(entry.RegisterID),
		docType,
		docID,
		timeToPgTimestamptz(entry.Date),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := pgxTx(tx).Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListByClient lists a client's entries, newest first.
func (r *EntryRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE client_id = $1
		ORDER BY entry_date DESC, id DESC
		LIMIT $2 OFFSET $3`,
		clientID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListByRegister lists a register's entries, newest first.
func (r *EntryRepository) ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE register_id = $1
		ORDER BY entry_date DESC, id DESC
		LIMIT $2 OFFSET $3`,
		registerID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry      domain.Entry
		direction  int16
		amount     pgtype.Numeric
		origAmount pgtype.Numeric
		kind       string
		clientID   pgtype.Text
		registerID pgtype.Text
		docType    pgtype.Text
		docID      pgtype.Text
	)

	err := row.Scan(
		&entry.ID, &direction, &amount, &origAmount, &entry.Currency, &kind,
		&clientID, &registerID, &docType, &docID, &entry.Date,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Direction = domain.Direction(direction)
	entry.Amount = numericToDecimal(amount)
	entry.OrigAmount = numericToDecimal(origAmount)
	entry.Kind = domain.EntryKind(kind)
	entry.ClientID = textToStringPtr(clientID)
	entry.RegisterID = textToStringPtr(registerID)

	if docType.Valid && docID.Valid {
		entry.Document = &domain.DocumentRef{Type: docType.String, ID: docID.String}
	}

	return &entry, nil
}

func documentColumns(doc *domain.DocumentRef) (pgtype.Text, pgtype.Text) {
	if doc == nil {
		return pgtype.Text{}, pgtype.Text{}
	}

	return pgtype.Text{String: doc.Type, Valid: true}, pgtype.Text{String: doc.ID, Valid: true}
}
