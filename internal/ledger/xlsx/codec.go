// Package xlsx implements the ledger store over one .xlsx workbook per
// borrower.
//
// Workbook layout (fixed for compatibility with existing files):
// sheet "Payments", row 1 headers, row 2 the single metadata record,
// rows 3-4 reserved, rows 5+ the payment ledger. Payment columns are
// G (date), H (amount), I (note).
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"lendtrack/internal/core"
)

const (
	// SheetName is the single sheet every borrower workbook carries.
	SheetName = "Payments"

	metaRow         = 2
	firstPaymentRow = 5
)

// 0-based column indexes into a row slice returned by GetRows.
const (
	colName = iota
	colLoanAmount
	colInterestRate
	colStartDate
	colPeriod
	colMonthlyInterest
	colPaymentDate
	colAmountPaid
	colNote
)

var header = []interface{}{
	"Name", "Loan Amount", "Interest Rate(%)", "Start Date",
	"Loan Period(months)", "Monthly Interest",
	"Payment Date", "Amount Paid", "Note",
}

// EncodeWorkbook renders a full record as a fresh workbook. Used when
// creating a borrower file and by the memory adapter's export.
func EncodeWorkbook(rec core.BorrowerRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	meta := []interface{}{
		rec.Name,
		rec.LoanAmount.Amount.InexactFloat64(),
		rec.InterestRate.Amount.InexactFloat64(),
		rec.StartDate,
		rec.PeriodMonths,
		rec.MonthlyInterest.Amount.InexactFloat64(),
	}
	if err := f.SetSheetRow(SheetName, "A2", &meta); err != nil {
		return nil, fmt.Errorf("write metadata row: %w", err)
	}
	for i, p := range rec.Payments {
		row := firstPaymentRow + i
		entry := []interface{}{p.Date, p.Amount.Amount.InexactFloat64(), p.Note}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("G%d", row), &entry); err != nil {
			return nil, fmt.Errorf("write payment row %d: %w", row, err)
		}
	}
	return f, nil
}

// decodeRecord reads a record out of an opened workbook. Metadata
// numeric cells are strict (a bad one makes the record corrupt);
// payment amount cells are lenient and coerce to zero, still counting
// as a row. fallbackName is used when the name cell is blank.
func decodeRecord(f *excelize.File, fallbackName string) (core.BorrowerRecord, error) {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: missing %q sheet", core.ErrCorruptRecord, SheetName)
	}
	if len(rows) < metaRow {
		return core.BorrowerRecord{}, fmt.Errorf("%w: missing metadata row", core.ErrCorruptRecord)
	}
	meta := rows[metaRow-1]

	rec := core.BorrowerRecord{
		Name:      cell(meta, colName),
		StartDate: cell(meta, colStartDate),
	}
	if rec.Name == "" {
		rec.Name = fallbackName
	}
	if rec.LoanAmount, err = core.ParseMoney(cell(meta, colLoanAmount)); err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: unparsable loan amount %q", core.ErrCorruptRecord, cell(meta, colLoanAmount))
	}
	if rec.InterestRate, err = core.ParseMoney(cell(meta, colInterestRate)); err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: unparsable interest rate %q", core.ErrCorruptRecord, cell(meta, colInterestRate))
	}
	if rec.PeriodMonths, err = strconv.Atoi(cell(meta, colPeriod)); err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: unparsable loan period %q", core.ErrCorruptRecord, cell(meta, colPeriod))
	}
	if rec.MonthlyInterest, err = core.ParseMoney(cell(meta, colMonthlyInterest)); err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: unparsable monthly interest %q", core.ErrCorruptRecord, cell(meta, colMonthlyInterest))
	}

	// Ledger rows run from the fixed first row until the first row
	// with both date and amount blank. A half-filled row still counts.
	for i := firstPaymentRow - 1; i < len(rows); i++ {
		date := cell(rows[i], colPaymentDate)
		amount := cell(rows[i], colAmountPaid)
		if date == "" && amount == "" {
			break
		}
		rec.Payments = append(rec.Payments, core.PaymentEntry{
			Date:   date,
			Amount: core.ParseMoneyLenient(amount),
			Note:   cell(rows[i], colNote),
		})
	}
	return rec, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
