// Package report renders a borrower's profile and payment history as
// a paginated PDF document.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"lendtrack/internal/core"
)

// Borrower renders the report for one record and its summary. It is a
// pure function of its inputs; the caller owns fetching both.
func Borrower(rec core.BorrowerRecord, sum core.LoanSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Borrower Profile Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	metaLine(pdf, "Name", rec.Name)
	metaLine(pdf, "Loan Amount", rec.LoanAmount.String())
	metaLine(pdf, "Interest Rate", rec.InterestRate.String()+"%")
	metaLine(pdf, "Start Date", rec.StartDate)
	metaLine(pdf, "Loan Period", fmt.Sprintf("%d months", rec.PeriodMonths))
	metaLine(pdf, "Monthly Interest", rec.MonthlyInterest.String())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Payment History", "", 1, "L", false, 0, "")

	widths := []float64{45, 45, 100}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(120, 120, 120)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Date", "Amount Paid", "Note"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	if len(rec.Payments) == 0 {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "No payments made yet.", "1", 1, "L", false, 0, "")
	}
	for _, p := range rec.Payments {
		pdf.CellFormat(widths[0], 7, p.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, p.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, p.Note, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	metaLine(pdf, "Total Interest Due", sum.TotalInterestDue.String())
	metaLine(pdf, "Total Interest Paid", sum.TotalPaid.String())
	metaLine(pdf, "Remaining Interest Due", sum.RemainingInterest.String())
	metaLine(pdf, "Progress", fmt.Sprintf("%d%%", sum.PercentComplete))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a borrower's report.
func Filename(name string) string {
	return core.StorageKey(name) + "_report.pdf"
}

func metaLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 7, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
