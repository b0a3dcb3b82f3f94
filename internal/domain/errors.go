package domain

import "errors"

var (
	// Account errors
	ErrInvalidAccountID       = errors.New("account id cannot be empty")
	ErrNegativeOpeningBalance = errors.New("opening balance cannot be negative")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInsufficientFunds      = errors.New("insufficient balance")

	// Amount errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrAmountFormat  = errors.New("amount is not a number")

	// Transfer errors
	ErrSameAccount = errors.New("cannot transfer to same account")

	// Credential errors
	ErrWrongPin           = errors.New("incorrect current pin")
	ErrDuplicatePin       = errors.New("new pin must differ from the old pin")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrNotAuthenticated  = errors.New("no authenticated session")
	ErrSessionTerminated = errors.New("session terminated")
)

// ErrorKind classifies an error for presentation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidAmount
	KindInsufficientFunds
	KindWrongPin
	KindUnknownTarget
	KindSelfTransfer
	KindDuplicatePin
	KindInvalidCredentials
	KindNotAuthenticated
	KindSessionTerminated
)

var kindNames = map[ErrorKind]string{
	KindUnknown:            "unknown",
	KindInvalidAmount:      "invalid_amount",
	KindInsufficientFunds:  "insufficient_funds",
	KindWrongPin:           "wrong_pin",
	KindUnknownTarget:      "unknown_target",
	KindSelfTransfer:       "self_transfer",
	KindDuplicatePin:       "duplicate_pin",
	KindInvalidCredentials: "invalid_credentials",
	KindNotAuthenticated:   "not_authenticated",
	KindSessionTerminated:  "session_terminated",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

var kindByError = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrAmountFormat, KindInvalidAmount},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrWrongPin, KindWrongPin},
	{ErrAccountNotFound, KindUnknownTarget},
	{ErrSameAccount, KindSelfTransfer},
	{ErrDuplicatePin, KindDuplicatePin},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrNotAuthenticated, KindNotAuthenticated},
	{ErrSessionTerminated, KindSessionTerminated},
}

// KindOf returns the kind of err. A nil error has no kind and reports
// KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	for _, k := range kindByError {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindUnknown
}
