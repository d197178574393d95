package valueobjects

import "fmt"

// Money is a fixed-point amount in IDR. Rupiah has no circulating sub-unit,
// so the amount is carried in whole rupiah.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = "IDR"
	}
	return Money{
		amount:   amount,
		currency: currency,
	}
}

// NewIDR builds an IDR amount in whole rupiah.
func NewIDR(amount int64) Money {
	return NewMoney(amount, "IDR")
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

// Add returns the sum of two amounts. Currencies must match; mixing them is
// a programming error.
func (m Money) Add(other Money) Money {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot add %s to %s", other.currency, m.currency))
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}
}

// ServiceFee computes the fee in basis points, rounded up so the platform
// never undercharges by a fraction of a rupiah.
func (m Money) ServiceFee(basisPoints int64) Money {
	fee := (m.amount*basisPoints + 9999) / 10000
	return Money{amount: fee, currency: m.currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
