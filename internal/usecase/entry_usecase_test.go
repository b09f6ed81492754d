package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
	"github.com/finbooks/finbooks/internal/usecase/mocks"
)

type entryFixture struct {
	uc           *usecase.EntryUseCase
	entryRepo    *mocks.MockEntryRepository
	clientRepo   *mocks.MockClientBalanceRepository
	registerRepo *mocks.MockRegisterRepository
	converter    *mocks.MockConverter
	notifier     *mocks.MockNotifier
}

func newEntryFixture() *entryFixture {
	f := &entryFixture{
		entryRepo:    mocks.NewMockEntryRepository(),
		clientRepo:   mocks.NewMockClientBalanceRepository(),
		registerRepo: mocks.NewMockRegisterRepository(),
		converter:    mocks.NewMockConverter(),
		notifier:     mocks.NewMockNotifier(),
	}

	f.uc = usecase.NewEntryUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockRetrier(),
		f.entryRepo,
		f.clientRepo,
		f.registerRepo,
		f.converter,
		mocks.NewMockIDGenerator(),
		f.notifier,
		nil,
	)

	return f
}

func strPtr(s string) *string { return &s }

var entryDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestEntryUseCase_CreateEntry_ClientBalance(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateEntryInput
		wantBalance decimal.Decimal
	}{
		{
			// Scenario: income settlement with no document is the client
			// paying us, so what they owe drops.
			name: "direct settlement income",
			input: usecase.CreateEntryInput{
				Direction: domain.Income,
				Amount:    decimal.NewFromInt(100),
				Currency:  "USD",
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			},
			wantBalance: decimal.NewFromInt(-100),
		},
		{
			name: "direct settlement expense",
			input: usecase.CreateEntryInput{
				Direction: domain.Expense,
				Amount:    decimal.NewFromInt(100),
				Currency:  "USD",
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			},
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name: "debt income raises what the client owes",
			input: usecase.CreateEntryInput{
				Direction: domain.Income,
				Amount:    decimal.NewFromInt(50),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			},
			wantBalance: decimal.NewFromInt(50),
		},
		{
			name: "debt expense",
			input: usecase.CreateEntryInput{
				Direction: domain.Expense,
				Amount:    decimal.NewFromInt(50),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			},
			wantBalance: decimal.NewFromInt(-50),
		},
		{
			// A debt with a document is still applied to the client.
			name: "debt with document still applied",
			input: usecase.CreateEntryInput{
				Direction: domain.Income,
				Amount:    decimal.NewFromInt(30),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Document:  &domain.DocumentRef{Type: "order", ID: "order-9"},
				Date:      entryDate,
			},
			wantBalance: decimal.NewFromInt(30),
		},
		{
			// A document-linked settlement is accounted for by the document
			// workflow, never by the client balance.
			name: "document settlement leaves client balance alone",
			input: usecase.CreateEntryInput{
				Direction: domain.Income,
				Amount:    decimal.NewFromInt(75),
				Currency:  "USD",
				ClientID:  strPtr("client-1"),
				Document:  &domain.DocumentRef{Type: "sale", ID: "sale-4"},
				Date:      entryDate,
			},
			wantBalance: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEntryFixture()

			_, err := f.uc.CreateEntry(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := f.clientRepo.Balance("client-1")
			if !got.Equal(tt.wantBalance) {
				t.Errorf("client balance = %s, want %s", got, tt.wantBalance)
			}
		})
	}
}

func TestEntryUseCase_CreateEntry_CashBalance(t *testing.T) {
	f := newEntryFixture()
	f.registerRepo.Create(context.Background(), &domain.CashRegister{
		ID: "reg-1", Name: "Main", Currency: "USD", Balance: decimal.NewFromInt(1000),
	})

	t.Run("income adds to the register in its own currency", func(t *testing.T) {
		_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction:  domain.Income,
			Amount:     decimal.NewFromInt(200),
			Currency:   "USD",
			RegisterID: strPtr("reg-1"),
			Date:       entryDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reg, _ := f.registerRepo.GetByID(context.Background(), "reg-1")
		if !reg.Balance.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("register balance = %s, want 1200", reg.Balance)
		}
	})

	t.Run("debt never touches cash", func(t *testing.T) {
		_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction:  domain.Income,
			Amount:     decimal.NewFromInt(500),
			Currency:   "USD",
			IsDebt:     true,
			ClientID:   strPtr("client-1"),
			RegisterID: strPtr("reg-1"),
			Date:       entryDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reg, _ := f.registerRepo.GetByID(context.Background(), "reg-1")
		if !reg.Balance.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("register balance = %s, want unchanged 1200", reg.Balance)
		}
	})

	t.Run("unknown register aborts the whole operation", func(t *testing.T) {
		_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction:  domain.Income,
			Amount:     decimal.NewFromInt(10),
			Currency:   "USD",
			RegisterID: strPtr("missing"),
			Date:       entryDate,
		})
		if !errors.Is(err, domain.ErrRegisterNotFound) {
			t.Fatalf("expected ErrRegisterNotFound, got %v", err)
		}
	})
}

func TestEntryUseCase_CreateEntry_InvalidAmount(t *testing.T) {
	f := newEntryFixture()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction: domain.Income,
			Amount:    amount,
			Currency:  "USD",
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if got := f.clientRepo.Balance("client-1"); !got.IsZero() {
		t.Errorf("client balance mutated on rejected entry: %s", got)
	}
}

func TestEntryUseCase_CreateEntryDetached(t *testing.T) {
	f := newEntryFixture()
	f.registerRepo.Create(context.Background(), &domain.CashRegister{
		ID: "reg-1", Currency: "USD", Balance: decimal.NewFromInt(100),
	})

	entry, err := f.uc.CreateEntryDetached(context.Background(), usecase.CreateEntryInput{
		Direction:  domain.Income,
		Amount:     decimal.NewFromInt(40),
		Currency:   "USD",
		ClientID:   strPtr("client-1"),
		RegisterID: strPtr("reg-1"),
		Date:       entryDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry == nil {
		t.Fatal("expected entry")
	}

	if got := f.clientRepo.Balance("client-1"); !got.IsZero() {
		t.Errorf("detached create touched client balance: %s", got)
	}

	reg, _ := f.registerRepo.GetByID(context.Background(), "reg-1")
	if !reg.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("detached create touched register balance: %s", reg.Balance)
	}

	if len(f.notifier.Events) != 0 {
		t.Errorf("detached create emitted %d change events", len(f.notifier.Events))
	}
}

// Create followed by delete leaves every aggregate at its pre-create value.
func TestEntryUseCase_DeleteReversesCreate(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateEntryInput
	}{
		{
			name: "direct settlement income with register",
			input: usecase.CreateEntryInput{
				Direction:  domain.Income,
				Amount:     decimal.NewFromInt(100),
				Currency:   "USD",
				ClientID:   strPtr("client-1"),
				RegisterID: strPtr("reg-1"),
				Date:       entryDate,
			},
		},
		{
			name: "debt expense",
			input: usecase.CreateEntryInput{
				Direction: domain.Expense,
				Amount:    decimal.NewFromInt(50),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			},
		},
		{
			name: "document settlement expense with register",
			input: usecase.CreateEntryInput{
				Direction:  domain.Expense,
				Amount:     decimal.NewFromInt(75),
				Currency:   "USD",
				ClientID:   strPtr("client-1"),
				RegisterID: strPtr("reg-1"),
				Document:   &domain.DocumentRef{Type: "receipt", ID: "rcpt-2"},
				Date:       entryDate,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEntryFixture()
			f.registerRepo.Create(context.Background(), &domain.CashRegister{
				ID: "reg-1", Currency: "USD", Balance: decimal.NewFromInt(1000),
			})

			entry, err := f.uc.CreateEntry(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			if err := f.uc.DeleteEntry(context.Background(), entry.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}

			if got := f.clientRepo.Balance("client-1"); !got.IsZero() {
				t.Errorf("client balance after create+delete = %s, want 0", got)
			}

			reg, _ := f.registerRepo.GetByID(context.Background(), "reg-1")
			if !reg.Balance.Equal(decimal.NewFromInt(1000)) {
				t.Errorf("register balance after create+delete = %s, want 1000", reg.Balance)
			}

			if _, err := f.uc.GetEntry(context.Background(), entry.ID); !errors.Is(err, domain.ErrEntryNotFound) {
				t.Errorf("entry still present after delete: %v", err)
			}
		})
	}
}

func TestEntryUseCase_UpdateEntry(t *testing.T) {
	t.Run("debt amount change reverts old and applies new", func(t *testing.T) {
		f := newEntryFixture()

		entry, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(100),
			Currency:  "USD",
			IsDebt:    true,
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		_, err = f.uc.UpdateEntry(context.Background(), entry.ID, usecase.UpdateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(60),
			Currency:  "USD",
			IsDebt:    true,
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		if got := f.clientRepo.Balance("client-1"); !got.Equal(decimal.NewFromInt(60)) {
			t.Errorf("client balance = %s, want 60", got)
		}
	})

	t.Run("debt moved to another client", func(t *testing.T) {
		f := newEntryFixture()

		entry, _ := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(100),
			Currency:  "USD",
			IsDebt:    true,
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})

		_, err := f.uc.UpdateEntry(context.Background(), entry.ID, usecase.UpdateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(100),
			Currency:  "USD",
			IsDebt:    true,
			ClientID:  strPtr("client-2"),
			Date:      entryDate,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		if got := f.clientRepo.Balance("client-1"); !got.IsZero() {
			t.Errorf("old client balance = %s, want 0", got)
		}
		if got := f.clientRepo.Balance("client-2"); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("new client balance = %s, want 100", got)
		}
	})

	t.Run("settlement edits are not reverted", func(t *testing.T) {
		// Only debt entries are reverted on edit; the settlement's original
		// effect stays and the new state is applied on top. Preserved
		// reference behavior.
		f := newEntryFixture()

		entry, _ := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(100),
			Currency:  "USD",
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})

		_, err := f.uc.UpdateEntry(context.Background(), entry.ID, usecase.UpdateEntryInput{
			Direction: domain.Income,
			Amount:    decimal.NewFromInt(60),
			Currency:  "USD",
			ClientID:  strPtr("client-1"),
			Date:      entryDate,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		if got := f.clientRepo.Balance("client-1"); !got.Equal(decimal.NewFromInt(-160)) {
			t.Errorf("client balance = %s, want -160", got)
		}
	})

	t.Run("cash-affecting fields are immutable once committed", func(t *testing.T) {
		f := newEntryFixture()
		f.registerRepo.Create(context.Background(), &domain.CashRegister{
			ID: "reg-1", Currency: "USD", Balance: decimal.NewFromInt(1000),
		})

		entry, _ := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
			Direction:  domain.Income,
			Amount:     decimal.NewFromInt(100),
			Currency:   "USD",
			RegisterID: strPtr("reg-1"),
			Date:       entryDate,
		})

		_, err := f.uc.UpdateEntry(context.Background(), entry.ID, usecase.UpdateEntryInput{
			Direction:  domain.Income,
			Amount:     decimal.NewFromInt(60),
			Currency:   "USD",
			RegisterID: strPtr("reg-1"),
			Date:       entryDate,
		})
		if !errors.Is(err, domain.ErrCashEntryImmutable) {
			t.Fatalf("expected ErrCashEntryImmutable, got %v", err)
		}

		reg, _ := f.registerRepo.GetByID(context.Background(), "reg-1")
		if !reg.Balance.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("register balance = %s, want 1100", reg.Balance)
		}
	})

	t.Run("update equals delete plus create for debt entries", func(t *testing.T) {
		run := func(viaUpdate bool) decimal.Decimal {
			f := newEntryFixture()

			entry, _ := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
				Direction: domain.Expense,
				Amount:    decimal.NewFromInt(80),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			})

			newState := usecase.UpdateEntryInput{
				Direction: domain.Income,
				Amount:    decimal.NewFromInt(35),
				Currency:  "USD",
				IsDebt:    true,
				ClientID:  strPtr("client-1"),
				Date:      entryDate,
			}

			if viaUpdate {
				if _, err := f.uc.UpdateEntry(context.Background(), entry.ID, newState); err != nil {
					t.Fatalf("update: %v", err)
				}
			} else {
				if err := f.uc.DeleteEntry(context.Background(), entry.ID); err != nil {
					t.Fatalf("delete: %v", err)
				}
				if _, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput(newState)); err != nil {
					t.Fatalf("recreate: %v", err)
				}
			}

			return f.clientRepo.Balance("client-1")
		}

		updated := run(true)
		recreated := run(false)

		if !updated.Equal(recreated) {
			t.Errorf("update path = %s, delete+create path = %s", updated, recreated)
		}
	})
}

func TestEntryUseCase_ChangeNotifications(t *testing.T) {
	f := newEntryFixture()
	f.registerRepo.Create(context.Background(), &domain.CashRegister{
		ID: "reg-1", Currency: "USD", Balance: decimal.Zero,
	})

	_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Direction:  domain.Income,
		Amount:     decimal.NewFromInt(10),
		Currency:   "USD",
		ClientID:   strPtr("client-1"),
		RegisterID: strPtr("reg-1"),
		Date:       entryDate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(f.notifier.Events) != 2 {
		t.Fatalf("expected 2 change events, got %d", len(f.notifier.Events))
	}

	kinds := map[domain.ChangeKind]string{}
	for _, ev := range f.notifier.Events {
		kinds[ev.Kind] = ev.ID
		if ev.Type != domain.EventTypeEntryCreated {
			t.Errorf("event type = %s, want %s", ev.Type, domain.EventTypeEntryCreated)
		}
	}

	if kinds[domain.ChangeKindClient] != "client-1" || kinds[domain.ChangeKindRegister] != "reg-1" {
		t.Errorf("unexpected change events: %+v", f.notifier.Events)
	}
}

// Conversion happens as of the entry date, so historical entries use
// historical rates.
func TestEntryUseCase_ConvertsAsOfEntryDate(t *testing.T) {
	f := newEntryFixture()

	var asOf time.Time
	f.converter.ToBaseFunc = func(ctx context.Context, amount decimal.Decimal, fromCode string, at time.Time) (decimal.Decimal, error) {
		asOf = at
		return amount.Mul(decimal.NewFromInt(10)), nil
	}

	_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Direction: domain.Income,
		Amount:    decimal.NewFromInt(5),
		Currency:  "UZS",
		IsDebt:    true,
		ClientID:  strPtr("client-1"),
		Date:      entryDate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !asOf.Equal(entryDate) {
		t.Errorf("converted as of %s, want entry date %s", asOf, entryDate)
	}

	if got := f.clientRepo.Balance("client-1"); !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("client balance = %s, want 50 (converted)", got)
	}
}

func TestEntryUseCase_ConversionFailureAborts(t *testing.T) {
	f := newEntryFixture()
	f.converter.ToBaseFunc = func(ctx context.Context, amount decimal.Decimal, fromCode string, at time.Time) (decimal.Decimal, error) {
		return decimal.Zero, domain.ErrNoRateAvailable
	}

	_, err := f.uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Direction: domain.Income,
		Amount:    decimal.NewFromInt(5),
		Currency:  "XXX",
		IsDebt:    true,
		ClientID:  strPtr("client-1"),
		Date:      entryDate,
	})
	if !errors.Is(err, domain.ErrNoRateAvailable) {
		t.Fatalf("expected ErrNoRateAvailable, got %v", err)
	}

	if got := f.clientRepo.Balance("client-1"); !got.IsZero() {
		t.Errorf("client balance mutated on failed conversion: %s", got)
	}
}
