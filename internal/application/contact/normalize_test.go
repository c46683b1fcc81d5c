package contact_test

import (
	"testing"

	app "github.com/lmartinez/contact-upload/internal/application/contact"
)

func TestNormalizeColumnFoldsAccents(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Dirección":   "direccion",
		"direccion":   "direccion",
		"  Teléfono ": "telefono",
		"CORREO":      "correo",
		"Año Nuevo":   "anonuevo",
		"ID":          "id",
		"Nombre completo": "nombrecompleto",
	}
	for input, want := range cases {
		if got := app.NormalizeColumn(input); got != want {
			t.Fatalf("NormalizeColumn(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeColumnIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Dirección", "  TELÉFONO  ", "nombre", "Ñandú", "Extra Column", "", "123"}
	for _, input := range inputs {
		once := app.NormalizeColumn(input)
		twice := app.NormalizeColumn(once)
		if once != twice {
			t.Fatalf("NormalizeColumn not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeColumnPassesUnknownRunes(t *testing.T) {
	t.Parallel()

	if got := app.NormalizeColumn("côde-01"); got != "côde-01" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
