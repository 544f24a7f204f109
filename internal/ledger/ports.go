package ledger

import (
	"context"

	"lendtrack/internal/core"
)

// Ports for the ledger store adapters.
type (
	RecordCreator interface {
		// Create validates the application, persists a fresh record and
		// returns it. Creating an existing borrower fails with
		// core.ErrAlreadyExists; nothing is overwritten.
		Create(ctx context.Context, app core.LoanApplication) (core.BorrowerRecord, error)
	}

	RecordLoader interface {
		Load(ctx context.Context, name string) (core.BorrowerRecord, error)
	}

	PaymentAppender interface {
		// AppendPayment writes the entry into the first free ledger row
		// and persists the whole record back.
		AppendPayment(ctx context.Context, name string, p core.PaymentEntry) error
	}

	RecordLister interface {
		// ListAll loads every borrower in the store. A record that fails
		// to load is returned in the second slice and does not abort the
		// scan; only a store-directory failure does.
		ListAll(ctx context.Context) ([]core.BorrowerRecord, []ListError, error)
	}

	FileExporter interface {
		// ExportFile returns the borrower's backing workbook as bytes
		// plus the filename to serve it under.
		ExportFile(ctx context.Context, name string) ([]byte, string, error)
	}

	// Store is the full ledger store surface the HTTP layer consumes.
	Store interface {
		RecordCreator
		RecordLoader
		PaymentAppender
		RecordLister
		FileExporter
	}
)

// ListError reports one backing file that failed to load during a scan.
type ListError struct {
	File string
	Err  error
}
