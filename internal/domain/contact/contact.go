package contact

// Canonical column names a valid sheet must supply. ColumnID is the
// primary key; a row without it cannot be persisted.
const (
	ColumnID        = "id"
	ColumnNombre    = "nombre"
	ColumnDireccion = "direccion"
	ColumnTelefono  = "telefono"
	ColumnCorreo    = "correo"
)

// ExpectedColumns returns the canonical schema in projection order.
func ExpectedColumns() []string {
	return []string{ColumnID, ColumnNombre, ColumnDireccion, ColumnTelefono, ColumnCorreo}
}

// Row maps a canonical column name to its cell value. A nil value is the
// absent marker, distinct from a present empty string.
type Row map[string]*string

// Contact is one persisted record, keyed by a caller-supplied id.
type Contact struct {
	ID        string
	Nombre    *string
	Direccion *string
	Telefono  *string
	Correo    *string
}
