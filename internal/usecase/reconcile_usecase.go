package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReconcileUseCase recomputes a client's balance from its live entries and
// compares it against the stored aggregate, surfacing drift.
type ReconcileUseCase struct {
	clientRepo ClientBalanceRepository
	entryRepo  EntryRepository
	converter  Converter
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(clientRepo ClientBalanceRepository, entryRepo EntryRepository, converter Converter) *ReconcileUseCase {
	return &ReconcileUseCase{
		clientRepo: clientRepo,
		entryRepo:  entryRepo,
		converter:  converter,
	}
}

// ReconciliationResult is the outcome of a client balance check.
type ReconciliationResult struct {
	ClientID          string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// reconcileBatchSize bounds how many entries a single recomputation reads.
const reconcileBatchSize = 10000

// ReconcileClient replays every balance-affecting entry of the client,
// converting each at its own date, and diffs the sum against the stored
// balance.
func (uc *ReconcileUseCase) ReconcileClient(ctx context.Context, clientID string) (*ReconciliationResult, error) {
	recorded, err := uc.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	calculated := decimal.Zero

	for offset := 0; ; offset += reconcileBatchSize {
		entries, err := uc.entryRepo.ListByClient(ctx, clientID, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if !entry.AffectsClientBalance() {
				continue
			}

			converted, err := uc.converter.ToBase(ctx, entry.Amount, entry.Currency, entry.Date)
			if err != nil {
				return nil, err
			}

			calculated = calculated.Add(entry.ClientDelta(converted))
		}

		if len(entries) < reconcileBatchSize {
			break
		}
	}

	diff := recorded.Balance.Sub(calculated)

	return &ReconciliationResult{
		ClientID:          clientID,
		RecordedBalance:   recorded.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}
