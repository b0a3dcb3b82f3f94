package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

// Seed describes an account created when the table is built.
type Seed struct {
	ID      string
	Pin     string
	Balance decimal.Decimal
}

// AccountRepository implements usecase.AccountRepository over a fixed,
// in-process account table.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository builds the account table from seeds.
func NewAccountRepository(seeds []Seed) (*AccountRepository, error) {
	accounts := make(map[string]*domain.Account, len(seeds))

	for _, s := range seeds {
		if _, dup := accounts[s.ID]; dup {
			return nil, fmt.Errorf("duplicate seed account %q", s.ID)
		}

		acc, err := domain.NewAccount(s.ID, s.Pin, s.Balance)
		if err != nil {
			return nil, fmt.Errorf("seed account %q: %w", s.ID, err)
		}

		accounts[s.ID] = acc
	}

	return &AccountRepository{accounts: accounts}, nil
}

// GetByID returns the account with id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if acc, ok := r.accounts[id]; ok {
		return acc, nil
	}

	return nil, domain.ErrAccountNotFound
}

// List returns all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
