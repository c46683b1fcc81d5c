package contact

import (
	"context"
	"fmt"

	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
)

const exportSheetName = "Contactos"

type ExportContactsOutput struct {
	Filename string
	Data     []byte
}

type ExportContacts interface {
	Execute(ctx context.Context) (ExportContactsOutput, error)
}

type contactLister interface {
	ListAll(ctx context.Context) ([]domain.Contact, error)
}

type exportContacts struct {
	repo   contactLister
	writer domain.WorkbookWriter
}

func NewExportContacts(repo contactLister, writer domain.WorkbookWriter) ExportContacts {
	return &exportContacts{repo: repo, writer: writer}
}

// Execute writes every persisted contact to a single-sheet workbook whose
// header satisfies the expected schema, so a re-import of the exported
// file validates cleanly.
func (uc *exportContacts) Execute(ctx context.Context) (ExportContactsOutput, error) {
	contacts, err := uc.repo.ListAll(ctx)
	if err != nil {
		return ExportContactsOutput{}, fmt.Errorf("%w: %v", ErrExportContacts, err)
	}
	if len(contacts) == 0 {
		return ExportContactsOutput{}, ErrNoContacts
	}

	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			c.ID,
			stringOrEmpty(c.Nombre),
			stringOrEmpty(c.Direccion),
			stringOrEmpty(c.Telefono),
			stringOrEmpty(c.Correo),
		})
	}

	data, err := uc.writer.Write(exportSheetName, domain.ExpectedColumns(), rows)
	if err != nil {
		return ExportContactsOutput{}, fmt.Errorf("%w: %v", ErrExportContacts, err)
	}

	return ExportContactsOutput{
		Filename: "contactos.xlsx",
		Data:     data,
	}, nil
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
