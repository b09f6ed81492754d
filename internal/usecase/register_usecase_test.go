package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
	"github.com/finbooks/finbooks/internal/usecase/mocks"
)

func newRegisterUC(t *testing.T) *usecase.RegisterUseCase {
	t.Helper()

	currencyRepo := mocks.NewMockCurrencyRepository()
	if err := currencyRepo.Create(context.Background(), &domain.Currency{ID: "cur-usd", Code: "USD", IsDefault: true}); err != nil {
		t.Fatalf("seed currency: %v", err)
	}

	return usecase.NewRegisterUseCase(mocks.NewMockRegisterRepository(), currencyRepo, mocks.NewMockIDGenerator())
}

func TestRegisterUseCase_CreateRegister(t *testing.T) {
	uc := newRegisterUC(t)

	register, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Name: "  Front desk  ", Currency: "usd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.Name != "Front desk" {
		t.Errorf("name = %q, want trimmed", register.Name)
	}
	if register.Currency != "USD" {
		t.Errorf("currency = %q, want USD", register.Currency)
	}
	if !register.Balance.IsZero() {
		t.Errorf("new register balance = %s, want 0", register.Balance)
	}

	got, err := uc.GetRegister(context.Background(), register.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Front desk" {
		t.Errorf("stored register = %+v", got)
	}
}

func TestRegisterUseCase_CreateRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateRegisterInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   usecase.CreateRegisterInput{Name: "   ", Currency: "USD"},
			wantErr: domain.ErrInvalidRegisterName,
		},
		{
			name:    "name too long",
			input:   usecase.CreateRegisterInput{Name: strings.Repeat("x", 256), Currency: "USD"},
			wantErr: domain.ErrInvalidRegisterName,
		},
		{
			name:    "malformed currency code",
			input:   usecase.CreateRegisterInput{Name: "Desk", Currency: "DOLLARS"},
			wantErr: domain.ErrInvalidCurrencyCode,
		},
		{
			name:    "unknown currency",
			input:   usecase.CreateRegisterInput{Name: "Desk", Currency: "EUR"},
			wantErr: domain.ErrCurrencyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newRegisterUC(t)

			_, err := uc.CreateRegister(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterUseCase_ListRegisters(t *testing.T) {
	uc := newRegisterUC(t)

	for _, name := range []string{"A", "B", "C"} {
		if _, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{Name: name, Currency: "USD"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	registers, err := uc.ListRegisters(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(registers) != 2 {
		t.Errorf("page size = %d, want 2", len(registers))
	}

	registers, err = uc.ListRegisters(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(registers) != 3 {
		t.Errorf("default page = %d, want all 3", len(registers))
	}
}
