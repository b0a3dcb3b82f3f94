package cli

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// failureMessages renders error kinds per operation. Kinds missing for an
// operation fall back to genericMessages.
var failureMessages = map[string]map[domain.ErrorKind]string{
	usecase.OperationDeposit: {
		domain.KindInvalidAmount: "Invalid deposit amount.",
	},
	usecase.OperationWithdraw: {
		domain.KindInvalidAmount:     "Invalid withdrawal amount.",
		domain.KindInsufficientFunds: "Insufficient balance.",
	},
	usecase.OperationTransfer: {
		domain.KindInvalidAmount:     "Invalid transfer amount.",
		domain.KindInsufficientFunds: "Insufficient balance for transfer.",
		domain.KindUnknownTarget:     "Target account not found.",
		domain.KindSelfTransfer:      "Cannot transfer to your own account.",
	},
	usecase.OperationChangePin: {
		domain.KindWrongPin:     "Incorrect current PIN.",
		domain.KindDuplicatePin: "New PIN cannot be the same as the old PIN.",
	},
	usecase.OperationLogin: {
		domain.KindInvalidCredentials: "Invalid credentials.",
	},
}

var genericMessages = map[domain.ErrorKind]string{
	domain.KindInvalidAmount:      "Invalid amount entered.",
	domain.KindInsufficientFunds:  "Insufficient balance.",
	domain.KindWrongPin:           "Incorrect PIN.",
	domain.KindUnknownTarget:      "Account not found.",
	domain.KindSelfTransfer:       "Cannot transfer to your own account.",
	domain.KindDuplicatePin:       "New PIN cannot be the same as the old PIN.",
	domain.KindInvalidCredentials: "Invalid credentials.",
	domain.KindNotAuthenticated:   "Please login first.",
	domain.KindSessionTerminated:  "Session has ended.",
}

func failureMessage(operation string, err error) string {
	kind := domain.KindOf(err)

	if msg, ok := failureMessages[operation][kind]; ok {
		return msg
	}

	if msg, ok := genericMessages[kind]; ok {
		return msg
	}

	return "Operation failed: " + err.Error()
}

func (t *Terminal) money(amount decimal.Decimal) string {
	return t.currency + amount.StringFixed(domain.AmountPlaces)
}

func (t *Terminal) formatEntry(e domain.Entry) string {
	stamp := e.CreatedAt.In(t.location).Format(historyTimeLayout)

	switch e.Kind {
	case domain.EntryKindDeposit:
		return fmt.Sprintf("%s - Deposit: %s", stamp, t.money(e.Amount))
	case domain.EntryKindWithdraw:
		return fmt.Sprintf("%s - Withdraw: %s", stamp, t.money(e.Amount))
	case domain.EntryKindTransferOut:
		return fmt.Sprintf("%s - Transferred %s to User %s", stamp, t.money(e.Amount), e.Counterparty)
	case domain.EntryKindTransferIn:
		return fmt.Sprintf("%s - Received %s from User %s", stamp, t.money(e.Amount), e.Counterparty)
	default:
		return fmt.Sprintf("%s - %s: %s", stamp, e.Kind, t.money(e.Amount))
	}
}
