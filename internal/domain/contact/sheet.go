package contact

// ValidSheet is the verdict for a sheet whose header satisfies the
// expected schema. Data holds the projected rows in sheet order.
type ValidSheet struct {
	SheetName string
	Columns   []string
	Data      []Row
}

// InvalidSheet is the verdict for a sheet that failed validation.
// ColumnsFound carries the raw header labels verbatim; Error holds the
// read failure text when the header itself could not be read.
type InvalidSheet struct {
	SheetName       string
	ColumnsFound    []string
	ColumnsExpected []string
	Error           string
}
