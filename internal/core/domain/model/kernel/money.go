package kernel

import (
	"fmt"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
)

// Money is an immutable value object for rupee amounts, stored as integer
// paise to avoid floating point drift in order totals. The zero value is a
// valid ₹0.00 amount.
type Money struct {
	paise int64
}

// NewMoney creates a Money value from integer paise.
// Negative amounts are rejected: order totals, fees, and commissions are
// never negative in this domain.
func NewMoney(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d paise is negative", paise))
	}
	return Money{paise: paise}, nil
}

// Paise returns the amount in integer paise.
func (m Money) Paise() int64 {
	return m.paise
}

// Rupees returns the amount as a rupee float for display.
func (m Money) Rupees() float64 {
	return float64(m.paise) / 100
}

// IsZero reports whether the amount is exactly ₹0.00.
func (m Money) IsZero() bool {
	return m.paise == 0
}

// IsPositive reports whether the amount is strictly greater than ₹0.00.
func (m Money) IsPositive() bool {
	return m.paise > 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// Multiply returns the amount scaled by a non-negative integer quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{paise: m.paise * int64(quantity)}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.paise == other.paise
}

// String returns the amount formatted as rupees, e.g. "₹450.00".
func (m Money) String() string {
	return fmt.Sprintf("₹%d.%02d", m.paise/100, m.paise%100)
}
