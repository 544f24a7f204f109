package core

import "testing"

func record(loan, rate int64, months int, payments ...int64) BorrowerRecord {
	r := BorrowerRecord{
		Name:            "A",
		LoanAmount:      NewMoney(loan),
		InterestRate:    NewMoney(rate),
		PeriodMonths:    months,
		MonthlyInterest: NewMoney(loan).MulPercent(NewMoney(rate)),
	}
	for _, amt := range payments {
		r.Payments = append(r.Payments, PaymentEntry{Date: "2024-01-01", Amount: NewMoney(amt)})
	}
	return r
}

func TestSummarize(t *testing.T) {
	s := Summarize(record(10000, 5, 12, 100, 150))

	if !s.TotalInterestDue.Equal(NewMoney(6000)) {
		t.Fatalf("due = %s, want 6000.00", s.TotalInterestDue)
	}
	if !s.TotalPaid.Equal(NewMoney(250)) {
		t.Fatalf("paid = %s, want 250.00", s.TotalPaid)
	}
	if !s.RemainingInterest.Equal(NewMoney(5750)) {
		t.Fatalf("remaining = %s, want 5750.00", s.RemainingInterest)
	}
	if s.PercentComplete != 4 {
		t.Fatalf("percent = %d, want 4", s.PercentComplete)
	}
}

func TestSummarizeZeroTarget(t *testing.T) {
	// Zero monthly interest means a zero target; progress must not
	// divide by zero.
	s := Summarize(record(10000, 0, 12, 100))
	if s.PercentComplete != 0 {
		t.Fatalf("percent = %d, want 0", s.PercentComplete)
	}
	if !s.TotalInterestDue.IsZero() {
		t.Fatalf("due = %s, want 0.00", s.TotalInterestDue)
	}
}

func TestSummarizeOverpaidNotClamped(t *testing.T) {
	s := Summarize(record(100, 5, 1, 50))
	// Due 5.00, paid 50.00: remaining goes negative, percent clamps.
	if !s.RemainingInterest.Equal(NewMoney(-45)) {
		t.Fatalf("remaining = %s, want -45.00", s.RemainingInterest)
	}
	if s.PercentComplete != 100 {
		t.Fatalf("percent = %d, want 100", s.PercentComplete)
	}
}

func TestSummarizeNoPayments(t *testing.T) {
	s := Summarize(record(10000, 5, 12))
	if !s.TotalPaid.IsZero() {
		t.Fatalf("paid = %s, want 0.00", s.TotalPaid)
	}
	if !s.RemainingInterest.Equal(s.TotalInterestDue) {
		t.Fatalf("remaining should equal due with no payments")
	}
}

func TestSummarizePortfolio(t *testing.T) {
	stats := SummarizePortfolio([]BorrowerRecord{
		record(10000, 5, 12, 100, 150),
		record(5000, 2, 6, 30),
	})
	if stats.BorrowerCount != 2 {
		t.Fatalf("count = %d, want 2", stats.BorrowerCount)
	}
	if !stats.TotalLoanAmount.Equal(NewMoney(15000)) {
		t.Fatalf("total loans = %s, want 15000.00", stats.TotalLoanAmount)
	}
	if !stats.TotalInterestPaid.Equal(NewMoney(280)) {
		t.Fatalf("total paid = %s, want 280.00", stats.TotalInterestPaid)
	}

	empty := SummarizePortfolio(nil)
	if empty.BorrowerCount != 0 || !empty.TotalLoanAmount.IsZero() {
		t.Fatalf("empty portfolio should be all zero")
	}
}
