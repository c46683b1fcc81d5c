package contact_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	app "github.com/lmartinez/contact-upload/internal/application/contact"
	"github.com/lmartinez/contact-upload/internal/application/progress"
	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
)

type capturingPublisher struct {
	events []progress.Event
}

func (p *capturingPublisher) Publish(event progress.Event) {
	p.events = append(p.events, event)
}

type fakeSheet struct {
	header    []string
	headerErr error
	rows      [][]string
	rowsErr   error
}

type fakeWorkbook struct {
	order  []string
	sheets map[string]fakeSheet
}

func (f *fakeWorkbook) SheetNames() []string { return f.order }

func (f *fakeWorkbook) Header(sheet string) ([]string, error) {
	s := f.sheets[sheet]
	if s.headerErr != nil {
		return nil, s.headerErr
	}
	return s.header, nil
}

func (f *fakeWorkbook) Rows(sheet string) ([][]string, error) {
	s := f.sheets[sheet]
	if s.rowsErr != nil {
		return nil, s.rowsErr
	}
	return s.rows, nil
}

type fakeOpener struct {
	workbook *fakeWorkbook
	err      error
}

func (f *fakeOpener) Open(data []byte) (domain.Workbook, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.workbook, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateWorkbookValidSheetWithExtraColumn(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Contactos"},
		sheets: map[string]fakeSheet{
			"Contactos": {
				header: []string{"ID", "Nombre", "Dirección", "Teléfono", "Correo", "Extra"},
				rows: [][]string{
					{"c-1", "Ana", "Calle 1", "555-0001", "ana@example.com", "ignored"},
					{"c-2", "Luis", "Calle 2", "555-0002", "luis@example.com", "ignored"},
				},
			},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "contactos.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.ValidSheets) != 1 {
		t.Fatalf("expected 1 valid sheet, got %d", len(out.ValidSheets))
	}
	if len(out.InvalidSheets) != 0 {
		t.Fatalf("expected 0 invalid sheets, got %d", len(out.InvalidSheets))
	}

	sheet := out.ValidSheets[0]
	if !reflect.DeepEqual(sheet.Columns, domain.ExpectedColumns()) {
		t.Fatalf("unexpected columns: %v", sheet.Columns)
	}
	if len(sheet.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Data))
	}

	first := sheet.Data[0]
	if len(first) != 5 {
		t.Fatalf("expected exactly 5 projected columns, got %d", len(first))
	}
	if first["id"] == nil || *first["id"] != "c-1" {
		t.Fatalf("unexpected id cell: %v", first["id"])
	}
	if first["direccion"] == nil || *first["direccion"] != "Calle 1" {
		t.Fatalf("unexpected direccion cell: %v", first["direccion"])
	}
	if _, found := first["Extra"]; found {
		t.Fatal("extra column must be dropped from projected rows")
	}
}

func TestValidateWorkbookMissingColumnIsInvalid(t *testing.T) {
	t.Parallel()

	rawHeader := []string{"ID", "Nombre", "Dirección", "Correo"}
	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Hoja1"},
		sheets: map[string]fakeSheet{
			"Hoja1": {header: rawHeader},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.ValidSheets) != 0 {
		t.Fatalf("expected 0 valid sheets, got %d", len(out.ValidSheets))
	}
	if len(out.InvalidSheets) != 1 {
		t.Fatalf("expected 1 invalid sheet, got %d", len(out.InvalidSheets))
	}

	invalid := out.InvalidSheets[0]
	if !reflect.DeepEqual(invalid.ColumnsFound, rawHeader) {
		t.Fatalf("columns_found must be the raw header verbatim, got %v", invalid.ColumnsFound)
	}
	if !reflect.DeepEqual(invalid.ColumnsExpected, domain.ExpectedColumns()) {
		t.Fatalf("unexpected expected-column list: %v", invalid.ColumnsExpected)
	}
}

func TestValidateWorkbookHeaderErrorKeepsScanning(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Broken", "Contactos"},
		sheets: map[string]fakeSheet{
			"Broken": {headerErr: errors.New("corrupt sheet header")},
			"Contactos": {
				header: []string{"id", "nombre", "direccion", "telefono", "correo"},
				rows:   [][]string{{"c-1", "Ana", "", "", ""}},
			},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.InvalidSheets) != 1 {
		t.Fatalf("expected 1 invalid sheet, got %d", len(out.InvalidSheets))
	}
	if out.InvalidSheets[0].Error != "corrupt sheet header" {
		t.Fatalf("unexpected invalid sheet error: %q", out.InvalidSheets[0].Error)
	}
	if len(out.ValidSheets) != 1 {
		t.Fatalf("expected remaining sheet to validate, got %d valid", len(out.ValidSheets))
	}
}

func TestValidateWorkbookShortRowsProjectAbsent(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Contactos"},
		sheets: map[string]fakeSheet{
			"Contactos": {
				header: []string{"id", "nombre", "direccion", "telefono", "correo"},
				rows:   [][]string{{"c-1", "Ana"}},
			},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row := out.ValidSheets[0].Data[0]
	if row["nombre"] == nil || *row["nombre"] != "Ana" {
		t.Fatalf("unexpected nombre cell: %v", row["nombre"])
	}
	if row["telefono"] != nil {
		t.Fatalf("missing cell must project as absent, got %v", *row["telefono"])
	}
	if row["correo"] != nil {
		t.Fatalf("missing cell must project as absent, got %v", *row["correo"])
	}
}

func TestValidateWorkbookEmptyCellsProjectAbsent(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Contactos"},
		sheets: map[string]fakeSheet{
			"Contactos": {
				header: []string{"id", "nombre", "direccion", "telefono", "correo"},
				rows:   [][]string{{"c-1", "", "Calle 1", "555", "a@b.com"}},
			},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row := out.ValidSheets[0].Data[0]
	if row["nombre"] != nil {
		t.Fatalf("empty cell must project as absent, got %q", *row["nombre"])
	}
	if row["direccion"] == nil || *row["direccion"] != "Calle 1" {
		t.Fatalf("unexpected direccion cell: %v", row["direccion"])
	}
}

func TestValidateWorkbookDuplicateHeaderLastWins(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{workbook: &fakeWorkbook{
		order: []string{"Contactos"},
		sheets: map[string]fakeSheet{
			"Contactos": {
				header: []string{"Nombre", "id", "nombre", "direccion", "telefono", "correo"},
				rows:   [][]string{{"shadowed", "c-1", "Ana", "Calle 1", "555", "a@b.com"}},
			},
		},
	}}

	uc := app.NewValidateWorkbook(opener, &capturingPublisher{}, discardLogger())

	out, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("x")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	row := out.ValidSheets[0].Data[0]
	if row["nombre"] == nil || *row["nombre"] != "Ana" {
		t.Fatalf("last duplicate header must win, got %v", row["nombre"])
	}
}

func TestValidateWorkbookUnreadableFile(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{}
	uc := app.NewValidateWorkbook(&fakeOpener{err: errors.New("not a zip archive")}, publisher, discardLogger())

	_, err := uc.Execute(context.Background(), app.ValidateWorkbookInput{Filename: "f.xlsx", Data: []byte("junk")})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, app.ErrUnreadableFile) {
		t.Fatalf("expected ErrUnreadableFile, got %v", err)
	}
	if len(publisher.events) == 0 {
		t.Fatal("expected failure to be mirrored on the progress channel")
	}
}
