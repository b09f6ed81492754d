package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/infrastructure/metrics"
)

// EntryUseCase drives the ledger entry lifecycle and keeps the client and
// cash-register balance aggregates consistent with it. Every mutation runs
// inside one transaction: either the entry row and every affected balance
// row commit together, or none do.
type EntryUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	entryRepo    EntryRepository
	clientRepo   ClientBalanceRepository
	registerRepo RegisterRepository
	converter    Converter
	idGen        IDGenerator
	notifier     ChangeNotifier
	metrics      *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	retrier Retrier,
	entryRepo EntryRepository,
	clientRepo ClientBalanceRepository,
	registerRepo RegisterRepository,
	converter Converter,
	idGen IDGenerator,
	notifier ChangeNotifier,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:    txManager,
		retrier:      retrier,
		entryRepo:    entryRepo,
		clientRepo:   clientRepo,
		registerRepo: registerRepo,
		converter:    converter,
		idGen:        idGen,
		notifier:     notifier,
		metrics:      m,
	}
}

// CreateEntryInput represents input for creating a ledger entry.
type CreateEntryInput struct {
	Direction  domain.Direction
	Amount     decimal.Decimal
	Currency   string
	IsDebt     bool
	ClientID   *string
	RegisterID *string
	Document   *domain.DocumentRef
	Date       time.Time
}

// CreateEntry creates an entry and applies its effect to the affected
// balance aggregates.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	return uc.create(ctx, input, true, true)
}

// CreateEntryDetached creates an entry without touching any balance
// aggregate. Compound operations that manage balances themselves use this
// variant to avoid double application.
func (uc *EntryUseCase) CreateEntryDetached(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	return uc.create(ctx, input, false, false)
}

func (uc *EntryUseCase) create(ctx context.Context, input CreateEntryInput, applyClient, applyCash bool) (*domain.Entry, error) {
	var (
		entry  *domain.Entry
		events []domain.BalanceChangedEvent
	)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		entry, events, err = uc.createInTx(ctx, tx, input, applyClient, applyCash)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, events, domain.EventTypeEntryCreated)

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
		uc.metrics.EntryAmount.Observe(entry.Amount.InexactFloat64())
	}

	return entry, nil
}

// createInTx persists an entry and applies the aggregate arithmetic inside
// the caller's transaction. The returned events describe the aggregates
// touched; the caller emits them after commit.
func (uc *EntryUseCase) createInTx(ctx context.Context, tx Transaction, input CreateEntryInput, applyClient, applyCash bool) (*domain.Entry, []domain.BalanceChangedEvent, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	entry := &domain.Entry{
		ID:         uc.idGen.Generate(),
		Direction:  input.Direction,
		Amount:     input.Amount,
		OrigAmount: input.Amount,
		Currency:   input.Currency,
		Kind:       domain.KindOf(input.IsDebt, input.Document),
		ClientID:   input.ClientID,
		RegisterID: input.RegisterID,
		Document:   input.Document,
		Date:       input.Date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := entry.Validate(); err != nil {
		return nil, nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, nil, err
	}

	var events []domain.BalanceChangedEvent

	if applyClient && entry.AffectsClientBalance() {
		converted, err := uc.converter.ToBase(ctx, entry.Amount, entry.Currency, entry.Date)
		if err != nil {
			return nil, nil, err
		}

		if err := uc.clientRepo.Add(ctx, tx, *entry.ClientID, entry.ClientDelta(converted), now); err != nil {
			return nil, nil, err
		}

		events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindClient, ID: *entry.ClientID})
	}

	if applyCash && entry.AffectsCashBalance() {
		if err := uc.registerRepo.AddBalance(ctx, tx, *entry.RegisterID, entry.CashDelta(), now); err != nil {
			return nil, nil, err
		}

		events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindRegister, ID: *entry.RegisterID})
	}

	return entry, events, nil
}

// UpdateEntryInput represents the new field values for an entry.
type UpdateEntryInput struct {
	Direction  domain.Direction
	Amount     decimal.Decimal
	Currency   string
	IsDebt     bool
	ClientID   *string
	RegisterID *string
	Document   *domain.DocumentRef
	Date       time.Time
}

// UpdateEntry edits an entry, reconciling the client balance as
// revert-old-then-apply-new. Cash register balances are not reconciled on
// edit: an update that would change the cash effect of a committed
// cash-affecting entry is rejected outright.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, id string, input UpdateEntryInput) (*domain.Entry, error) {
	var (
		updated *domain.Entry
		events  []domain.BalanceChangedEvent
	)

	err := uc.retrier.Retry(ctx, func() error {
		events = events[:0]

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		old, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if old.OwnedByTransfer() {
			return domain.ErrTransferOwnsEntry
		}

		if err := domain.ValidateAmount(input.Amount); err != nil {
			return err
		}

		if old.AffectsCashBalance() && cashFieldsChanged(old, input) {
			return domain.ErrCashEntryImmutable
		}

		now := time.Now().UTC()

		// Revert the old client effect. Only a debt entry is reverted on
		// edit; this asymmetry is deliberate and matches the delete
		// eligibility evaluated against the pre-change values.
		if old.Kind == domain.KindDebt && old.ClientID != nil {
			converted, err := uc.converter.ToBase(ctx, old.Amount, old.Currency, old.Date)
			if err != nil {
				return err
			}

			if err := uc.clientRepo.Add(ctx, tx, *old.ClientID, old.ClientDelta(converted).Neg(), now); err != nil {
				return err
			}

			events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindClient, ID: *old.ClientID})
		}

		updated = &domain.Entry{
			ID:         old.ID,
			Direction:  input.Direction,
			Amount:     input.Amount,
			OrigAmount: input.Amount,
			Currency:   input.Currency,
			Kind:       domain.KindOf(input.IsDebt, input.Document),
			ClientID:   input.ClientID,
			RegisterID: input.RegisterID,
			Document:   input.Document,
			Date:       input.Date,
			CreatedAt:  old.CreatedAt,
			UpdatedAt:  now,
		}

		if err := updated.Validate(); err != nil {
			return err
		}

		// Apply the new client effect under the post-change eligibility.
		if updated.AffectsClientBalance() {
			converted, err := uc.converter.ToBase(ctx, updated.Amount, updated.Currency, updated.Date)
			if err != nil {
				return err
			}

			if err := uc.clientRepo.Add(ctx, tx, *updated.ClientID, updated.ClientDelta(converted), now); err != nil {
				return err
			}

			events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindClient, ID: *updated.ClientID})
		}

		if err := uc.entryRepo.Update(ctx, tx, updated); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, events, domain.EventTypeEntryUpdated)

	if uc.metrics != nil {
		uc.metrics.EntriesUpdated.Inc()
	}

	return updated, nil
}

// DeleteEntry removes an entry, fully reversing its aggregate effects first.
// Inversion uses the amount as originally recorded, not a since-rounded one.
// Entries owned by a cash transfer are refused; the transfer orchestrator
// manages that pair.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	var events []domain.BalanceChangedEvent

	err := uc.retrier.Retry(ctx, func() error {
		events = events[:0]

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if entry.OwnedByTransfer() {
			return domain.ErrTransferOwnsEntry
		}

		now := time.Now().UTC()

		if entry.AffectsClientBalance() {
			converted, err := uc.converter.ToBase(ctx, entry.OrigAmount, entry.Currency, entry.Date)
			if err != nil {
				return err
			}

			if err := uc.clientRepo.Add(ctx, tx, *entry.ClientID, entry.ClientDelta(converted).Neg(), now); err != nil {
				return err
			}

			events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindClient, ID: *entry.ClientID})
		}

		if entry.AffectsCashBalance() {
			if err := uc.registerRepo.AddBalance(ctx, tx, *entry.RegisterID, entry.CashDeltaOf(entry.OrigAmount).Neg(), now); err != nil {
				return err
			}

			events = append(events, domain.BalanceChangedEvent{Kind: domain.ChangeKindRegister, ID: *entry.RegisterID})
		}

		if err := uc.entryRepo.Delete(ctx, tx, entry.ID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.notify(ctx, events, domain.EventTypeEntryDeleted)

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntriesByClient lists a client's entries.
func (uc *EntryUseCase) ListEntriesByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.Entry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.ListByClient(ctx, clientID, limit, offset)
}

// ListEntriesByRegister lists a register's entries.
func (uc *EntryUseCase) ListEntriesByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.Entry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.ListByRegister(ctx, registerID, limit, offset)
}

func (uc *EntryUseCase) notify(ctx context.Context, events []domain.BalanceChangedEvent, eventType string) {
	if uc.notifier == nil {
		return
	}

	for _, ev := range events {
		ev.Type = eventType
		uc.notifier.NotifyChanged(ctx, ev)

		if uc.metrics != nil {
			uc.metrics.BalanceUpdates.WithLabelValues(string(ev.Kind)).Inc()
		}
	}
}

// cashFieldsChanged reports whether an update touches a field that feeds the
// cash register arithmetic.
func cashFieldsChanged(old *domain.Entry, input UpdateEntryInput) bool {
	if !old.Amount.Equal(input.Amount) {
		return true
	}
	if old.Currency != input.Currency {
		return true
	}
	if old.Direction != input.Direction {
		return true
	}

	switch {
	case old.RegisterID == nil && input.RegisterID == nil:
		return false
	case old.RegisterID == nil || input.RegisterID == nil:
		return true
	default:
		return *old.RegisterID != *input.RegisterID
	}
}
