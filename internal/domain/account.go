package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a teller account: credential, balance and its entry log.
//
// The balance never goes negative through any operation exposed here.
// Callers sharing an account between sessions must hold Lock while mutating.
type Account struct {
	ID string

	mu      sync.Mutex
	pin     string
	balance decimal.Decimal
	entries []Entry
}

// NewAccount creates an account with an opening balance.
func NewAccount(id, pin string, balance decimal.Decimal) (*Account, error) {
	if id == "" {
		return nil, ErrInvalidAccountID
	}

	if balance.IsNegative() {
		return nil, ErrNegativeOpeningBalance
	}

	return &Account{
		ID:      id,
		pin:     pin,
		balance: balance,
	}, nil
}

// Lock acquires the account's critical section.
func (a *Account) Lock() { a.mu.Lock() }

// Unlock releases the account's critical section.
func (a *Account) Unlock() { a.mu.Unlock() }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// History returns a copy of the entry log in insertion order.
func (a *Account) History() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// VerifyPin reports whether pin matches the stored credential exactly.
func (a *Account) VerifyPin(pin string) bool {
	return a.pin == pin
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	if a.balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}

	return nil
}

// Deposit credits amount and records a deposit entry.
func (a *Account) Deposit(id string, amount decimal.Decimal, at time.Time) (Entry, error) {
	if err := ValidateAmount(amount); err != nil {
		return Entry{}, err
	}

	a.balance = a.balance.Add(amount)

	return a.append(Entry{
		ID:        id,
		Kind:      EntryKindDeposit,
		Amount:    amount,
		CreatedAt: at,
	}), nil
}

// Withdraw debits amount and records a withdraw entry.
func (a *Account) Withdraw(id string, amount decimal.Decimal, at time.Time) (Entry, error) {
	if err := a.ValidateDebit(amount); err != nil {
		return Entry{}, err
	}

	a.balance = a.balance.Sub(amount)

	return a.append(Entry{
		ID:        id,
		Kind:      EntryKindWithdraw,
		Amount:    amount,
		CreatedAt: at,
	}), nil
}

// TransferTo moves amount from a to target and records the paired entries.
// Every check runs before the first mutation, so either both sides are
// posted or neither is. Both entries share id.
func (a *Account) TransferTo(target *Account, id string, amount decimal.Decimal, at time.Time) (out, in Entry, err error) {
	if target == nil {
		return Entry{}, Entry{}, ErrAccountNotFound
	}

	if target == a || target.ID == a.ID {
		return Entry{}, Entry{}, ErrSameAccount
	}

	if err := a.ValidateDebit(amount); err != nil {
		return Entry{}, Entry{}, err
	}

	a.balance = a.balance.Sub(amount)
	target.balance = target.balance.Add(amount)

	out = a.append(Entry{
		ID:           id,
		Kind:         EntryKindTransferOut,
		Amount:       amount,
		Counterparty: target.ID,
		CreatedAt:    at,
	})
	in = target.append(Entry{
		ID:           id,
		Kind:         EntryKindTransferIn,
		Amount:       amount,
		Counterparty: a.ID,
		CreatedAt:    at,
	})

	return out, in, nil
}

// ChangePin replaces the credential. The caller is expected to force
// re-authentication on success.
func (a *Account) ChangePin(oldPin, newPin string) error {
	if !a.VerifyPin(oldPin) {
		return ErrWrongPin
	}

	if oldPin == newPin {
		return ErrDuplicatePin
	}

	a.pin = newPin

	return nil
}

func (a *Account) append(e Entry) Entry {
	e.BalanceAfter = a.balance
	a.entries = append(a.entries, e)
	return e
}
