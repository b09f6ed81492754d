package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates money movement between two cash registers: a
// matched withdrawal/deposit entry pair plus the transfer record, all in one
// transaction. Register arithmetic is delegated to the entry lifecycle; the
// orchestrator itself never touches a balance, so the effect is applied
// exactly once.
type TransferUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	registerRepo RegisterRepository
	transferRepo TransferRepository
	entryUC      *EntryUseCase
	converter    Converter
	idGen        IDGenerator
	notifier     ChangeNotifier
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	registerRepo RegisterRepository,
	transferRepo TransferRepository,
	entryUC *EntryUseCase,
	converter Converter,
	idGen IDGenerator,
	notifier ChangeNotifier,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		retrier:      retrier,
		registerRepo: registerRepo,
		transferRepo: transferRepo,
		entryUC:      entryUC,
		converter:    converter,
		idGen:        idGen,
		notifier:     notifier,
		metrics:      m,
	}
}

// TransferInput represents input for a register-to-register transfer.
type TransferInput struct {
	FromRegisterID string
	ToRegisterID   string
	Amount         decimal.Decimal
	Note           string
}

// Transfer moves an amount from one register to another, converting between
// the registers' currencies when they differ.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.CashTransfer, error) {
	if input.FromRegisterID == input.ToRegisterID {
		return nil, domain.ErrSameRegister
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	var transfer *domain.CashTransfer

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Lock both registers in sorted ID order (deadlock prevention).
		ids := []string{input.FromRegisterID, input.ToRegisterID}
		sort.Strings(ids)

		registers, err := uc.registerRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		if len(registers) != len(ids) {
			return domain.ErrRegisterNotFound
		}

		var from, to *domain.CashRegister
		for _, r := range registers {
			switch r.ID {
			case input.FromRegisterID:
				from = r
			case input.ToRegisterID:
				to = r
			}
		}

		now := time.Now().UTC()

		destAmount, err := uc.converter.Convert(ctx, input.Amount, from.Currency, to.Currency, now)
		if err != nil {
			return err
		}

		transferID := uc.idGen.Generate()
		doc := &domain.DocumentRef{Type: domain.DocumentTypeCashTransfer, ID: transferID}

		withdrawal, _, err := uc.entryUC.createInTx(ctx, tx, CreateEntryInput{
			Direction:  domain.Expense,
			Amount:     input.Amount,
			Currency:   from.Currency,
			RegisterID: &from.ID,
			Document:   doc,
			Date:       now,
		}, false, true)
		if err != nil {
			return err
		}

		deposit, _, err := uc.entryUC.createInTx(ctx, tx, CreateEntryInput{
			Direction:  domain.Income,
			Amount:     destAmount,
			Currency:   to.Currency,
			RegisterID: &to.ID,
			Document:   doc,
			Date:       now,
		}, false, true)
		if err != nil {
			return err
		}

		transfer = &domain.CashTransfer{
			ID:                transferID,
			FromRegisterID:    from.ID,
			ToRegisterID:      to.ID,
			WithdrawalEntryID: withdrawal.ID,
			DepositEntryID:    deposit.ID,
			Amount:            input.Amount,
			DestAmount:        destAmount,
			Note:              input.Note,
			CreatedAt:         now,
		}

		if err := transfer.Validate(); err != nil {
			return err
		}

		if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.NotifyChanged(ctx, domain.BalanceChangedEvent{
			Kind: domain.ChangeKindRegister, ID: transfer.FromRegisterID, Type: domain.EventTypeTransferCreated,
		})
		uc.notifier.NotifyChanged(ctx, domain.BalanceChangedEvent{
			Kind: domain.ChangeKindRegister, ID: transfer.ToRegisterID, Type: domain.EventTypeTransferCreated,
		})
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.CashTransfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByRegister lists transfers touching a register.
func (uc *TransferUseCase) ListTransfersByRegister(ctx context.Context, registerID string, limit, offset int) ([]*domain.CashTransfer, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.transferRepo.ListByRegister(ctx, registerID, limit, offset)
}
