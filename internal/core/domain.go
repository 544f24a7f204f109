package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar format written into new records. Loaded
// dates are kept verbatim, so hand-edited files still round-trip.
const DateLayout = "2006-01-02"

type (
	// LoanApplication carries the user-entered terms for a new borrower.
	LoanApplication struct {
		Name         string
		LoanAmount   Money
		InterestRate Money // percent per month
		PeriodMonths int
	}

	// BorrowerRecord is one borrower's full ledger: the loan metadata
	// plus the append-only payment history. Identity is Name; the
	// record maps 1:1 to a single workbook file in the store.
	BorrowerRecord struct {
		Name            string
		LoanAmount      Money
		InterestRate    Money
		StartDate       string
		PeriodMonths    int
		MonthlyInterest Money // cached at creation, never recomputed
		Payments        []PaymentEntry
	}

	// PaymentEntry is one row of the payment ledger. Date is free text.
	PaymentEntry struct {
		Date   string
		Amount Money
		Note   string
	}
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyName      = fmt.Errorf("%w: borrower name is empty", ErrInvalidInput)
	ErrNegativeAmount = fmt.Errorf("%w: amount is negative", ErrInvalidInput)
	ErrNegativeRate   = fmt.Errorf("%w: interest rate is negative", ErrInvalidInput)
	ErrInvalidPeriod  = fmt.Errorf("%w: loan period must be at least 1 month", ErrInvalidInput)

	ErrAlreadyExists = errors.New("borrower already exists")
	ErrNotFound      = errors.New("borrower not found")
	ErrCorruptRecord = errors.New("borrower record is corrupt")
)

func (a LoanApplication) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.LoanAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if a.InterestRate.IsNegative() {
		return ErrNegativeRate
	}
	if a.PeriodMonths < 1 {
		return ErrInvalidPeriod
	}
	return nil
}

// NewRecord builds the stored record for a validated application.
// MonthlyInterest is computed once here and persisted as-is.
func (a LoanApplication) NewRecord(now time.Time) BorrowerRecord {
	return BorrowerRecord{
		Name:            strings.TrimSpace(a.Name),
		LoanAmount:      a.LoanAmount,
		InterestRate:    a.InterestRate,
		StartDate:       now.Format(DateLayout),
		PeriodMonths:    a.PeriodMonths,
		MonthlyInterest: a.LoanAmount.MulPercent(a.InterestRate),
	}
}

func (p PaymentEntry) Validate() error {
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
