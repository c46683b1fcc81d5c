package contact

import (
	"context"
	"encoding/json"
)

// UpsertSession is one batched insert-or-overwrite pass against the
// contacts table. A session is scoped to a single save request: acquired
// at request start, released via Close on every exit path. Commit flushes
// the rows upserted so far and opens the next batch.
type UpsertSession interface {
	Upsert(ctx context.Context, c Contact) error
	Commit(ctx context.Context) error
	Close()
}

type Repository interface {
	BeginUpsert(ctx context.Context) (UpsertSession, error)
	Count(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]Contact, error)
}

// LegacyRowRepository persists schema-less JSON blobs. Every ReplaceAll
// discards the table's prior contents before inserting, unlike the
// upsert-by-id semantics of Repository.
type LegacyRowRepository interface {
	ReplaceAll(ctx context.Context, rows []json.RawMessage) (int64, error)
}

// Workbook gives read access to the sheets of an uploaded spreadsheet.
// Rows returns data rows only; the header row is not repeated.
type Workbook interface {
	SheetNames() []string
	Header(sheet string) ([]string, error)
	Rows(sheet string) ([][]string, error)
}

type WorkbookOpener interface {
	Open(data []byte) (Workbook, error)
}

type WorkbookWriter interface {
	Write(sheetName string, header []string, rows [][]string) ([]byte, error)
}
