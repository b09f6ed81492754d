package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
)

// BalanceUseCase serves balance reads through a cache. Cached values are
// invalidated by the change notifier on every balance-affecting mutation;
// cache failures fall through to storage and are never surfaced.
type BalanceUseCase struct {
	clientRepo   ClientBalanceRepository
	registerRepo RegisterRepository
	cache        Cache
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(clientRepo ClientBalanceRepository, registerRepo RegisterRepository, cache Cache) *BalanceUseCase {
	return &BalanceUseCase{
		clientRepo:   clientRepo,
		registerRepo: registerRepo,
		cache:        cache,
	}
}

// ClientBalanceKey is the cache key for a client balance.
func ClientBalanceKey(clientID string) string {
	return "balance:client:" + clientID
}

// RegisterBalanceKey is the cache key for a register balance.
func RegisterBalanceKey(registerID string) string {
	return "balance:register:" + registerID
}

// GetClientBalance returns the client's balance in the base currency, zero
// when the client has no balance row yet.
func (uc *BalanceUseCase) GetClientBalance(ctx context.Context, clientID string) (*domain.ClientBalance, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, ClientBalanceKey(clientID)); err == nil {
			if balance, err := decimal.NewFromString(cached); err == nil {
				return &domain.ClientBalance{ClientID: clientID, Balance: balance}, nil
			}
		}
	}

	balance, err := uc.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, ClientBalanceKey(clientID), balance.Balance.String(), BalanceCacheTTL)
	}

	return balance, nil
}

// GetRegisterBalance returns a register with its current balance. The whole
// register is cached, not just the amount, so a hit serves the name and
// currency too.
func (uc *BalanceUseCase) GetRegisterBalance(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, RegisterBalanceKey(registerID)); err == nil {
			var register domain.CashRegister
			if err := json.Unmarshal([]byte(cached), &register); err == nil {
				return &register, nil
			}
		}
	}

	register, err := uc.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(register); err == nil {
			_ = uc.cache.Set(ctx, RegisterBalanceKey(registerID), string(payload), BalanceCacheTTL)
		}
	}

	return register, nil
}
