package usecase

// Operation names reported to the Recorder and used as log fields.
const (
	OperationLogin     = "login"
	OperationBalance   = "balance"
	OperationHistory   = "history"
	OperationDeposit   = "deposit"
	OperationWithdraw  = "withdraw"
	OperationTransfer  = "transfer"
	OperationChangePin = "change_pin"
)
