// Package memory is an in-process ledger store mirroring the workbook
// adapter's semantics. It backs tests and the "memory" data backend.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lendtrack/internal/core"
	"lendtrack/internal/ledger"
	"lendtrack/internal/ledger/xlsx"
)

type Store struct {
	mu      sync.Mutex
	records map[string]core.BorrowerRecord // keyed by storage key
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]core.BorrowerRecord)}
}

func (s *Store) Create(_ context.Context, app core.LoanApplication) (core.BorrowerRecord, error) {
	if err := app.Validate(); err != nil {
		return core.BorrowerRecord{}, err
	}
	key := core.StorageKey(app.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; ok {
		return core.BorrowerRecord{}, core.ErrAlreadyExists
	}
	rec := app.NewRecord(time.Now())
	s.records[key] = rec
	return rec, nil
}

func (s *Store) Load(_ context.Context, name string) (core.BorrowerRecord, error) {
	if strings.TrimSpace(name) == "" {
		return core.BorrowerRecord{}, core.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[core.StorageKey(name)]
	if !ok {
		return core.BorrowerRecord{}, core.ErrNotFound
	}
	return clone(rec), nil
}

func (s *Store) AppendPayment(_ context.Context, name string, p core.PaymentEntry) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrEmptyName
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := core.StorageKey(name)
	rec, ok := s.records[key]
	if !ok {
		return core.ErrNotFound
	}
	rec.Payments = append(rec.Payments, p)
	s.records[key] = rec
	return nil
}

func (s *Store) ListAll(_ context.Context) ([]core.BorrowerRecord, []ledger.ListError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]core.BorrowerRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, clone(rec))
	}
	return records, nil, nil
}

func (s *Store) ExportFile(ctx context.Context, name string) ([]byte, string, error) {
	rec, err := s.Load(ctx, name)
	if err != nil {
		return nil, "", err
	}
	f, err := xlsx.EncodeWorkbook(rec)
	if err != nil {
		return nil, "", fmt.Errorf("render workbook: %w", err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), core.StorageKey(name) + ".xlsx", nil
}

// clone copies the record so callers cannot mutate stored payments.
func clone(rec core.BorrowerRecord) core.BorrowerRecord {
	out := rec
	out.Payments = append([]core.PaymentEntry(nil), rec.Payments...)
	return out
}
