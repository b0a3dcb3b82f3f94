package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

// SessionState is the state of a teller session.
type SessionState int

const (
	StateLoggedOut SessionState = iota
	StateLoggedIn
	StateTerminated
)

func (s SessionState) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// SessionUseCase drives one teller session: authentication, the
// current-account binding and dispatch to ledger operations.
//
// A SessionUseCase is not safe for concurrent use. Several sessions may
// share one AccountRepository; account mutations lock the accounts they
// touch.
type SessionUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	clock       Clock
	recorder    Recorder
	log         zerolog.Logger

	state   SessionState
	current *domain.Account
}

// NewSessionUseCase creates a new SessionUseCase in the logged-out state.
// A nil recorder disables activity recording.
func NewSessionUseCase(
	accountRepo AccountRepository,
	idGen IDGenerator,
	clock Clock,
	recorder Recorder,
	log zerolog.Logger,
) *SessionUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &SessionUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		clock:       clock,
		recorder:    recorder,
		log:         log,
		state:       StateLoggedOut,
	}
}

// State returns the current session state.
func (uc *SessionUseCase) State() SessionState {
	return uc.state
}

// CurrentAccountID returns the bound account's ID, or "" when logged out.
func (uc *SessionUseCase) CurrentAccountID() string {
	if uc.current == nil {
		return ""
	}
	return uc.current.ID
}

// Authenticate binds the account identified by id when pin matches.
func (uc *SessionUseCase) Authenticate(ctx context.Context, id, pin string) error {
	if uc.state == StateTerminated {
		return domain.ErrSessionTerminated
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil || !verifyPin(account, pin) {
		uc.recorder.RecordLogin(false)
		uc.log.Info().Str("account_id", id).Msg("login rejected")
		return domain.ErrInvalidCredentials
	}

	if uc.state == StateLoggedIn {
		uc.recorder.SessionClosed()
	}

	uc.current = account
	uc.state = StateLoggedIn
	uc.recorder.RecordLogin(true)
	uc.recorder.SessionOpened()
	uc.log.Info().Str("account_id", id).Msg("login succeeded")

	return nil
}

// Logout clears the current-account binding.
func (uc *SessionUseCase) Logout() {
	if uc.state != StateLoggedIn {
		return
	}

	uc.log.Debug().Str("account_id", uc.current.ID).Msg("logout")
	uc.clearSession()
	uc.state = StateLoggedOut
}

// Exit ends the session when confirmed and reports whether it did.
func (uc *SessionUseCase) Exit(confirmed bool) bool {
	if !confirmed {
		return uc.state == StateTerminated
	}

	uc.terminate()
	return true
}

// DeclineRetry ends a logged-out session after a failed login.
func (uc *SessionUseCase) DeclineRetry() {
	if uc.state == StateLoggedOut {
		uc.terminate()
	}
}

// Balance returns the current account's balance.
func (uc *SessionUseCase) Balance(ctx context.Context) (decimal.Decimal, error) {
	account, err := uc.requireAccount()
	if err != nil {
		return decimal.Zero, err
	}

	account.Lock()
	defer account.Unlock()

	uc.recorder.RecordOperation(OperationBalance, nil)

	return account.Balance(), nil
}

// History returns the current account's entries in chronological order.
func (uc *SessionUseCase) History(ctx context.Context) ([]domain.Entry, error) {
	account, err := uc.requireAccount()
	if err != nil {
		return nil, err
	}

	account.Lock()
	defer account.Unlock()

	uc.recorder.RecordOperation(OperationHistory, nil)

	return account.History(), nil
}

// Deposit credits the current account.
func (uc *SessionUseCase) Deposit(ctx context.Context, amount decimal.Decimal) (*domain.Entry, error) {
	account, err := uc.requireAccount()
	if err != nil {
		return nil, err
	}

	account.Lock()
	entry, err := account.Deposit(uc.idGen.Generate(), amount, uc.clock.Now().UTC())
	account.Unlock()

	return uc.posted(OperationDeposit, account.ID, amount, entry, err)
}

// Withdraw debits the current account.
func (uc *SessionUseCase) Withdraw(ctx context.Context, amount decimal.Decimal) (*domain.Entry, error) {
	account, err := uc.requireAccount()
	if err != nil {
		return nil, err
	}

	account.Lock()
	entry, err := account.Withdraw(uc.idGen.Generate(), amount, uc.clock.Now().UTC())
	account.Unlock()

	return uc.posted(OperationWithdraw, account.ID, amount, entry, err)
}

// Transfer moves amount from the current account to targetID and returns
// the transfer-out entry.
func (uc *SessionUseCase) Transfer(ctx context.Context, targetID string, amount decimal.Decimal) (*domain.Entry, error) {
	if _, err := uc.requireAccount(); err != nil {
		return nil, err
	}

	account, target, err := uc.transferTarget(ctx, targetID)
	if err != nil {
		uc.recorder.RecordOperation(OperationTransfer, err)
		return nil, err
	}

	// Lock in ID order so two opposing transfers cannot deadlock.
	unlock := lockAccounts(account, target)
	out, _, err := account.TransferTo(target, uc.idGen.Generate(), amount, uc.clock.Now().UTC())
	unlock()

	return uc.posted(OperationTransfer, account.ID, amount, out, err)
}

// ValidateTransferTarget checks that targetID names another account
// without moving funds.
func (uc *SessionUseCase) ValidateTransferTarget(ctx context.Context, targetID string) error {
	_, _, err := uc.transferTarget(ctx, targetID)
	return err
}

func (uc *SessionUseCase) transferTarget(ctx context.Context, targetID string) (account, target *domain.Account, err error) {
	account, err = uc.requireAccount()
	if err != nil {
		return nil, nil, err
	}

	target, err = uc.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}

	if target.ID == account.ID {
		return nil, nil, domain.ErrSameAccount
	}

	return account, target, nil
}

// ChangePin replaces the current account's PIN. On success the session
// is logged out and the user must authenticate with the new PIN.
func (uc *SessionUseCase) ChangePin(ctx context.Context, oldPin, newPin string) error {
	account, err := uc.requireAccount()
	if err != nil {
		return err
	}

	account.Lock()
	err = account.ChangePin(oldPin, newPin)
	account.Unlock()

	uc.recorder.RecordOperation(OperationChangePin, err)
	if err != nil {
		uc.log.Info().Str("account_id", account.ID).Err(err).Msg("pin change rejected")
		return err
	}

	uc.log.Info().Str("account_id", account.ID).Msg("pin changed, session cleared")
	uc.clearSession()
	uc.state = StateLoggedOut

	return nil
}

func (uc *SessionUseCase) requireAccount() (*domain.Account, error) {
	switch uc.state {
	case StateTerminated:
		return nil, domain.ErrSessionTerminated
	case StateLoggedIn:
		return uc.current, nil
	default:
		return nil, domain.ErrNotAuthenticated
	}
}

func (uc *SessionUseCase) posted(operation, accountID string, amount decimal.Decimal, entry domain.Entry, err error) (*domain.Entry, error) {
	uc.recorder.RecordOperation(operation, err)

	if err != nil {
		uc.log.Info().
			Str("account_id", accountID).
			Str("operation", operation).
			Str("amount", amount.String()).
			Err(err).
			Msg("posting rejected")
		return nil, err
	}

	uc.recorder.RecordAmount(operation, amount)
	uc.log.Debug().
		Str("account_id", accountID).
		Str("operation", operation).
		Str("entry_id", entry.ID).
		Str("amount", amount.StringFixed(domain.AmountPlaces)).
		Msg("posted")

	return &entry, nil
}

func (uc *SessionUseCase) clearSession() {
	if uc.current != nil {
		uc.recorder.SessionClosed()
	}
	uc.current = nil
}

func (uc *SessionUseCase) terminate() {
	if uc.state == StateTerminated {
		return
	}

	uc.clearSession()
	uc.state = StateTerminated
	uc.log.Debug().Msg("session terminated")
}

func verifyPin(account *domain.Account, pin string) bool {
	account.Lock()
	defer account.Unlock()

	return account.VerifyPin(pin)
}

func lockAccounts(accounts ...*domain.Account) func() {
	ordered := make([]*domain.Account, len(accounts))
	copy(ordered, accounts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, a := range ordered {
		a.Lock()
	}

	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].Unlock()
		}
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(bool) {}
func (nopRecorder) RecordOperation(string, error) {}
func (nopRecorder) RecordAmount(string, decimal.Decimal) {}
func (nopRecorder) SessionOpened() {}
func (nopRecorder) SessionClosed() {}
