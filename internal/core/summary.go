package core

import "github.com/shopspring/decimal"

// LoanSummary is the aggregate view of one borrower's ledger. All
// fields derive from the record alone; the same summary feeds the
// profile page, the all-borrowers list, and the PDF report.
type LoanSummary struct {
	TotalInterestDue  Money
	TotalPaid         Money
	RemainingInterest Money // may be negative when overpaid
	PercentComplete   int   // 0-100
}

// PortfolioStats aggregates across every loadable borrower record.
type PortfolioStats struct {
	BorrowerCount     int
	TotalLoanAmount   Money
	TotalInterestPaid Money
}

// Summarize computes the ledger totals for a single record.
// A zero interest target yields PercentComplete 0 rather than a
// division error.
func Summarize(r BorrowerRecord) LoanSummary {
	due := r.MonthlyInterest.MulInt(r.PeriodMonths)

	var paid Money
	for _, p := range r.Payments {
		paid = paid.Add(p.Amount)
	}

	s := LoanSummary{
		TotalInterestDue:  due,
		TotalPaid:         paid,
		RemainingInterest: due.Sub(paid),
	}
	if !due.IsZero() {
		pct := paid.Amount.Div(due.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		s.PercentComplete = int(pct)
	}
	return s
}

// SummarizePortfolio folds the records that did load into the home
// page statistics. The caller decides what to do about records it
// could not load; they simply never reach this function.
func SummarizePortfolio(records []BorrowerRecord) PortfolioStats {
	var stats PortfolioStats
	for _, r := range records {
		stats.BorrowerCount++
		stats.TotalLoanAmount = stats.TotalLoanAmount.Add(r.LoanAmount)
		stats.TotalInterestPaid = stats.TotalInterestPaid.Add(Summarize(r).TotalPaid)
	}
	return stats
}
