package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

// AccountRepository defines access to the account table.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies posting timestamps.
type Clock interface {
	Now() time.Time
}

// Recorder observes session activity, typically for metrics.
type Recorder interface {
	RecordLogin(success bool)
	RecordOperation(operation string, err error)
	RecordAmount(operation string, amount decimal.Decimal)
	SessionOpened()
	SessionClosed()
}
