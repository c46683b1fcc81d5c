package excel

import (
	"bytes"
	"fmt"

	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// Codec reads and writes .xlsx workbooks.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) Open(data []byte) (domain.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &workbook{f: f}, nil
}

// Write produces a single-sheet workbook with the header in row 1 and
// the data rows below it.
func (c *Codec) Write(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", sheetName, err)
	}
	if sheetName != defaultSheetName {
		if err := f.DeleteSheet(defaultSheetName); err != nil {
			return nil, fmt.Errorf("drop default sheet: %w", err)
		}
	}

	if err := setRow(f, sheetName, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setRow(f, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}

type workbook struct {
	f *excelize.File
}

func (w *workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *workbook) Header(sheet string) ([]string, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Error(); err != nil {
			return nil, fmt.Errorf("read sheet %s header: %w", sheet, err)
		}
		return nil, fmt.Errorf("sheet %s has no header row", sheet)
	}

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s header: %w", sheet, err)
	}
	return header, nil
}

// Rows returns the data rows of the sheet, skipping the header row.
func (w *workbook) Rows(sheet string) ([][]string, error) {
	all, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s rows: %w", sheet, err)
	}
	if len(all) <= 1 {
		return nil, nil
	}
	return all[1:], nil
}
