// Package core holds the borrower data model and the pure aggregation
// logic shared by every view of a ledger.
//
// This file defines the Money value type and its parsing helpers.
// Amounts are decimal throughout; float64 only appears at the display
// boundary.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal monetary amount. The zero value is zero money.
type Money struct {
	Amount decimal.Decimal
}

// NewMoney builds a Money from an integer number of currency units.
func NewMoney(units int64) Money {
	return Money{Amount: decimal.NewFromInt(units)}
}

// ParseMoney parses a decimal string, accepting a comma decimal
// separator. Empty or malformed input is an error; negative values are
// allowed here and rejected by the callers that forbid them.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidInput
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidInput
	}
	return Money{Amount: d}, nil
}

// ParseMoneyLenient parses like ParseMoney but maps any failure to
// zero. Used when reading payment cells back from a workbook, where a
// malformed amount must count as a zero-amount row rather than abort
// the load.
func ParseMoneyLenient(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount)}
}

// MulPercent returns m * pct / 100.
func (m Money) MulPercent(pct Money) Money {
	return Money{Amount: m.Amount.Mul(pct.Amount).Div(decimal.NewFromInt(100))}
}

// MulInt returns m * n.
func (m Money) MulInt(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount)
}

// String renders the bare amount with two decimal places, the way it
// is shown in every view and written into workbook cells.
func (m Money) String() string {
	return m.Amount.StringFixed(2)
}
