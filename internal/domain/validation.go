package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	// AmountPlaces is the number of fractional digits a monetary amount may carry.
	AmountPlaces = 2
	// MaxAmount bounds a single posting.
	MaxAmount = "1000000000" // 1 billion

	// Exponent bounds for parsed input; comparisons rescale to 10^|exp|.
	minAmountExponent = -AmountPlaces - 10
	maxAmountExponent = 12
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// ValidateAmount validates a deposit, withdraw or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(AmountPlaces)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, AmountPlaces)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	return nil
}

// ParseAmount parses user input into an amount. It only checks the
// input is numeric with a bounded exponent; business rules are left to
// ValidateAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrAmountFormat
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountFormat, s)
	}

	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrAmountFormat, s)
	}

	return amount, nil
}
