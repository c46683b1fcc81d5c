package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lmartinez/contact-upload/internal/application/progress"
	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
)

const (
	commitEvery   = 100
	progressEvery = 10
)

type SaveContactsInput struct {
	Records []map[string]any
}

// RowFailure records one skipped row. RowIndex is 1-based.
type RowFailure struct {
	RowIndex int    `json:"row_index"`
	ID       string `json:"id,omitempty"`
	Reason   string `json:"reason"`
}

type SaveContactsOutput struct {
	SavedCount int          `json:"saved_count"`
	Failures   []RowFailure `json:"failures,omitempty"`
}

type SaveContacts interface {
	Execute(ctx context.Context, in SaveContactsInput) (SaveContactsOutput, error)
}

type upsertSessionStarter interface {
	BeginUpsert(ctx context.Context) (domain.UpsertSession, error)
}

type saveContacts struct {
	repo   upsertSessionStarter
	events eventPublisher
	log    *slog.Logger
}

func NewSaveContacts(repo upsertSessionStarter, events eventPublisher, log *slog.Logger) SaveContacts {
	return &saveContacts{repo: repo, events: events, log: log}
}

// Execute upserts the records in input order. A bad row is logged to the
// progress channel and skipped; it never aborts the batch. Accumulated
// changes are committed every 100 rows and once after the loop, so a
// mid-batch failure loses at most the rows since the last commit. A
// commit failure is batch-fatal: the open transaction is rolled back and
// a single error is returned, while earlier commits stay persisted.
func (uc *saveContacts) Execute(ctx context.Context, in SaveContactsInput) (SaveContactsOutput, error) {
	total := len(in.Records)
	if total == 0 {
		return SaveContactsOutput{}, ErrEmptySave
	}

	uc.events.Publish(progress.Status("Starting contact import..."))

	session, err := uc.repo.BeginUpsert(ctx)
	if err != nil {
		return SaveContactsOutput{}, fmt.Errorf("%w: %v", ErrBeginSave, err)
	}
	defer session.Close()

	out := SaveContactsOutput{}
	for i, record := range in.Records {
		rowNum := i + 1

		row, convErr := toContact(record)
		if convErr != nil {
			out.Failures = append(out.Failures, RowFailure{RowIndex: rowNum, Reason: convErr.Error()})
			uc.events.Publish(progress.Log(fmt.Sprintf("Row %d skipped: %v", rowNum, convErr)))
		} else if upsertErr := session.Upsert(ctx, row); upsertErr != nil {
			out.Failures = append(out.Failures, RowFailure{RowIndex: rowNum, ID: row.ID, Reason: upsertErr.Error()})
			uc.events.Publish(progress.Log(fmt.Sprintf("Row %d (id %s) skipped: %v", rowNum, row.ID, upsertErr)))
		} else {
			out.SavedCount++
		}

		if rowNum%commitEvery == 0 {
			if err := session.Commit(ctx); err != nil {
				return SaveContactsOutput{}, uc.failBatch(err)
			}
		}
		if rowNum%progressEvery == 0 || rowNum == total {
			uc.events.Publish(progress.Progress(rowNum * 100 / total))
		}
		if rowNum%commitEvery == 0 || rowNum == total {
			uc.events.Publish(progress.Log(fmt.Sprintf("%d/%d rows processed.", rowNum, total)))
		}
	}

	if err := session.Commit(ctx); err != nil {
		return SaveContactsOutput{}, uc.failBatch(err)
	}

	uc.log.Info("contact import finished",
		"total", total,
		"saved", out.SavedCount,
		"failed", len(out.Failures))
	uc.events.Publish(progress.Status(fmt.Sprintf(
		"Import finished: %d of %d rows saved.", out.SavedCount, total)))

	return out, nil
}

func (uc *saveContacts) failBatch(err error) error {
	uc.events.Publish(progress.Log(fmt.Sprintf("Import aborted: %v", err)))
	return fmt.Errorf("%w: %v", ErrCommitFailed, err)
}

// toContact projects a flat record to the canonical schema: fields
// outside the schema are dropped, absent values stay absent, and a
// missing or blank id rejects the row.
func toContact(record map[string]any) (domain.Contact, error) {
	id, ok := scalarText(record[domain.ColumnID])
	if !ok || strings.TrimSpace(id) == "" {
		return domain.Contact{}, domain.ErrMissingContactID
	}

	c := domain.Contact{ID: strings.TrimSpace(id)}
	if v, ok := scalarText(record[domain.ColumnNombre]); ok {
		c.Nombre = &v
	}
	if v, ok := scalarText(record[domain.ColumnDireccion]); ok {
		c.Direccion = &v
	}
	if v, ok := scalarText(record[domain.ColumnTelefono]); ok {
		c.Telefono = &v
	}
	if v, ok := scalarText(record[domain.ColumnCorreo]); ok {
		c.Correo = &v
	}
	return c, nil
}

// scalarText renders a decoded JSON scalar as its stored text form.
// nil and missing values report absent.
func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
