package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lendtrack/internal/core"
	"lendtrack/internal/ledger"
)

// Store keeps one workbook file per borrower under a flat directory.
// Single-process access is assumed; concurrent writers to the same
// file race with last-write-wins semantics.
type Store struct {
	dir string
}

var _ ledger.Store = (*Store)(nil)

// New ensures the store directory exists and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, core.StorageKey(name)+".xlsx")
}

func (s *Store) Create(_ context.Context, app core.LoanApplication) (core.BorrowerRecord, error) {
	if err := app.Validate(); err != nil {
		return core.BorrowerRecord{}, err
	}
	path := s.path(app.Name)
	if _, err := os.Stat(path); err == nil {
		return core.BorrowerRecord{}, core.ErrAlreadyExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return core.BorrowerRecord{}, fmt.Errorf("stat %s: %w", path, err)
	}

	rec := app.NewRecord(time.Now())
	f, err := EncodeWorkbook(rec)
	if err != nil {
		return core.BorrowerRecord{}, err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("save borrower workbook: %w", err)
	}
	return rec, nil
}

func (s *Store) Load(_ context.Context, name string) (core.BorrowerRecord, error) {
	if strings.TrimSpace(name) == "" {
		return core.BorrowerRecord{}, core.ErrEmptyName
	}
	return s.loadPath(s.path(name), strings.TrimSpace(name))
}

func (s *Store) loadPath(path, fallbackName string) (core.BorrowerRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return core.BorrowerRecord{}, core.ErrNotFound
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return core.BorrowerRecord{}, fmt.Errorf("%w: %v", core.ErrCorruptRecord, err)
	}
	defer f.Close()
	return decodeRecord(f, fallbackName)
}

func (s *Store) AppendPayment(_ context.Context, name string, p core.PaymentEntry) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrEmptyName
	}
	if err := p.Validate(); err != nil {
		return err
	}
	path := s.path(name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return core.ErrNotFound
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrCorruptRecord, err)
	}
	defer f.Close()
	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx < 0 {
		return fmt.Errorf("%w: missing %q sheet", core.ErrCorruptRecord, SheetName)
	}

	// Linear scan from the fixed first ledger row for the first row
	// with both date and amount blank. This keeps the append position
	// deterministic: the end of the contiguous payment block.
	row := firstPaymentRow
	for {
		date, _ := f.GetCellValue(SheetName, fmt.Sprintf("G%d", row))
		amount, _ := f.GetCellValue(SheetName, fmt.Sprintf("H%d", row))
		if strings.TrimSpace(date) == "" && strings.TrimSpace(amount) == "" {
			break
		}
		row++
	}

	if err := f.SetCellValue(SheetName, fmt.Sprintf("G%d", row), p.Date); err != nil {
		return fmt.Errorf("write payment date: %w", err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("H%d", row), p.Amount.Amount.InexactFloat64()); err != nil {
		return fmt.Errorf("write payment amount: %w", err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("I%d", row), p.Note); err != nil {
		return fmt.Errorf("write payment note: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save borrower workbook: %w", err)
	}
	return nil
}

func (s *Store) ListAll(_ context.Context) ([]core.BorrowerRecord, []ledger.ListError, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read store directory %s: %w", s.dir, err)
	}

	var (
		records []core.BorrowerRecord
		skipped []ledger.ListError
	)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		rec, err := s.loadPath(filepath.Join(s.dir, e.Name()), "Unknown")
		if err != nil {
			skipped = append(skipped, ledger.ListError{File: e.Name(), Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (s *Store) ExportFile(_ context.Context, name string) ([]byte, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", core.ErrEmptyName
	}
	path := s.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", core.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read borrower workbook: %w", err)
	}
	return data, filepath.Base(path), nil
}
