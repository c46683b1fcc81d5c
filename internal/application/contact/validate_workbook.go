package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lmartinez/contact-upload/internal/application/progress"
	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
)

type ValidateWorkbookInput struct {
	Filename string
	Data     []byte
}

type ValidSheetOutput struct {
	SheetName string       `json:"sheet_name"`
	Columns   []string     `json:"columns"`
	Data      []domain.Row `json:"data"`
}

type InvalidSheetOutput struct {
	SheetName       string   `json:"sheet_name"`
	ColumnsFound    []string `json:"columns_found"`
	ColumnsExpected []string `json:"columns_expected"`
	Error           string   `json:"error,omitempty"`
}

type ValidateWorkbookOutput struct {
	Filename      string               `json:"filename"`
	ValidSheets   []ValidSheetOutput   `json:"valid_sheets"`
	InvalidSheets []InvalidSheetOutput `json:"invalid_sheets"`
}

type ValidateWorkbook interface {
	Execute(ctx context.Context, in ValidateWorkbookInput) (ValidateWorkbookOutput, error)
}

type eventPublisher interface {
	Publish(event progress.Event)
}

type validateWorkbook struct {
	opener domain.WorkbookOpener
	events eventPublisher
	log    *slog.Logger
}

func NewValidateWorkbook(opener domain.WorkbookOpener, events eventPublisher, log *slog.Logger) ValidateWorkbook {
	return &validateWorkbook{opener: opener, events: events, log: log}
}

// Execute scans every sheet of the uploaded workbook and classifies it.
// A sheet whose header cannot be read is reported invalid with the error
// text; the remaining sheets are still processed.
func (uc *validateWorkbook) Execute(ctx context.Context, in ValidateWorkbookInput) (ValidateWorkbookOutput, error) {
	uc.events.Publish(progress.Log(fmt.Sprintf("Uploading file: %s...", in.Filename)))

	workbook, err := uc.opener.Open(in.Data)
	if err != nil {
		uc.events.Publish(progress.Log(fmt.Sprintf("Failed to read file %s: %v", in.Filename, err)))
		return ValidateWorkbookOutput{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	expected := domain.ExpectedColumns()
	out := ValidateWorkbookOutput{
		Filename:      in.Filename,
		ValidSheets:   []ValidSheetOutput{},
		InvalidSheets: []InvalidSheetOutput{},
	}

	for _, sheetName := range workbook.SheetNames() {
		header, err := workbook.Header(sheetName)
		if err != nil {
			out.InvalidSheets = append(out.InvalidSheets, InvalidSheetOutput{
				SheetName:       sheetName,
				ColumnsFound:    []string{},
				ColumnsExpected: expected,
				Error:           err.Error(),
			})
			continue
		}

		rename, ok := matchColumns(header, expected)
		if !ok {
			out.InvalidSheets = append(out.InvalidSheets, InvalidSheetOutput{
				SheetName:       sheetName,
				ColumnsFound:    header,
				ColumnsExpected: expected,
			})
			continue
		}

		rows, err := workbook.Rows(sheetName)
		if err != nil {
			out.InvalidSheets = append(out.InvalidSheets, InvalidSheetOutput{
				SheetName:       sheetName,
				ColumnsFound:    header,
				ColumnsExpected: expected,
				Error:           err.Error(),
			})
			continue
		}

		out.ValidSheets = append(out.ValidSheets, ValidSheetOutput{
			SheetName: sheetName,
			Columns:   expected,
			Data:      projectRows(header, rows, rename, expected),
		})
	}

	uc.log.Info("workbook validated",
		"filename", in.Filename,
		"valid_sheets", len(out.ValidSheets),
		"invalid_sheets", len(out.InvalidSheets))
	uc.events.Publish(progress.Log(fmt.Sprintf(
		"File read: %d valid sheet(s), %d invalid sheet(s). Data ready for review.",
		len(out.ValidSheets), len(out.InvalidSheets))))

	return out, nil
}

// matchColumns maps each expected canonical name to the raw header label
// whose normalized form matches it, and reports whether every expected
// column was found. Extra columns are ignored. When two raw labels
// normalize to the same form the last one wins; earlier duplicates are
// shadowed. The returned map goes from winning raw label to canonical
// name, restricted to the expected columns.
func matchColumns(raw []string, expected []string) (map[string]string, bool) {
	byNormalized := make(map[string]string, len(raw))
	for _, label := range raw {
		byNormalized[NormalizeColumn(label)] = label
	}

	rename := make(map[string]string, len(expected))
	for _, want := range expected {
		label, ok := byNormalized[NormalizeColumn(want)]
		if !ok {
			return nil, false
		}
		rename[label] = want
	}
	return rename, true
}

// projectRows applies the rename map and keeps exactly the expected
// columns, in order. Cells missing from a short row and empty cells both
// become the absent marker. Row order is preserved.
func projectRows(header []string, rows [][]string, rename map[string]string, expected []string) []domain.Row {
	colIndex := make(map[string]int, len(expected))
	for idx, label := range header {
		if canonical, ok := rename[label]; ok {
			colIndex[canonical] = idx
		}
	}

	projected := make([]domain.Row, 0, len(rows))
	for _, cells := range rows {
		row := make(domain.Row, len(expected))
		for _, name := range expected {
			idx, ok := colIndex[name]
			if !ok || idx >= len(cells) || cells[idx] == "" {
				row[name] = nil
				continue
			}
			value := cells[idx]
			row[name] = &value
		}
		projected = append(projected, row)
	}
	return projected
}
