package contact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lmartinez/contact-upload/internal/application/progress"
)

type LegacyImportInput struct {
	Records []json.RawMessage
}

type LegacyImportOutput struct {
	ReplacedCount int64 `json:"replaced_count"`
}

// LegacyImport is the superseded ingestion path: every call fully
// replaces the blob table's contents with the given rows.
type LegacyImport interface {
	Execute(ctx context.Context, in LegacyImportInput) (LegacyImportOutput, error)
}

type legacyRowReplacer interface {
	ReplaceAll(ctx context.Context, rows []json.RawMessage) (int64, error)
}

type legacyImport struct {
	repo   legacyRowReplacer
	events eventPublisher
}

func NewLegacyImport(repo legacyRowReplacer, events eventPublisher) LegacyImport {
	return &legacyImport{repo: repo, events: events}
}

func (uc *legacyImport) Execute(ctx context.Context, in LegacyImportInput) (LegacyImportOutput, error) {
	if len(in.Records) == 0 {
		return LegacyImportOutput{}, ErrEmptySave
	}

	uc.events.Publish(progress.Status("Starting legacy import..."))

	count, err := uc.repo.ReplaceAll(ctx, in.Records)
	if err != nil {
		uc.events.Publish(progress.Log(fmt.Sprintf("Legacy import aborted: %v", err)))
		return LegacyImportOutput{}, fmt.Errorf("%w: %v", ErrLegacyImport, err)
	}

	uc.events.Publish(progress.Status(fmt.Sprintf("Legacy import finished: %d rows saved.", count)))
	return LegacyImportOutput{ReplacedCount: count}, nil
}
