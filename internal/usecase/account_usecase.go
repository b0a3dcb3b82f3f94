package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountSummary is the public view of an account. It never carries the PIN.
type AccountSummary struct {
	ID      string
	Balance decimal.Decimal
}

// AccountUseCase lists the account table.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// List returns a summary of every account in repository order.
func (uc *AccountUseCase) List(ctx context.Context) ([]AccountSummary, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		account.Lock()
		balance := account.Balance()
		account.Unlock()

		summaries = append(summaries, AccountSummary{ID: account.ID, Balance: balance})
	}

	return summaries, nil
}
