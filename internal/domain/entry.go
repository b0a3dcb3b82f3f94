package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies what produced an entry.
type EntryKind string

const (
	EntryKindDeposit     EntryKind = "deposit"
	EntryKindWithdraw    EntryKind = "withdraw"
	EntryKindTransferOut EntryKind = "transfer_out"
	EntryKindTransferIn  EntryKind = "transfer_in"
)

// IsTransfer reports whether the kind is one leg of a transfer.
func (k EntryKind) IsTransfer() bool {
	return k == EntryKindTransferOut || k == EntryKindTransferIn
}

// Entry represents a single posting in an account's log.
type Entry struct {
	CreatedAt    time.Time
	ID           string
	Kind         EntryKind
	Counterparty string // set for transfers only
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
}
