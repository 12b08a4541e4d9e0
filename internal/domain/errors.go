package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrSnapshotNotFound  = errors.New("snapshot no encontrado")
	ErrMissingColumns    = errors.New("faltan columnas requeridas")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
	ErrInvalidInput      = errors.New("entrada inválida")
)

// SchemaError indica que un snapshot no tiene la forma mínima para reconciliar.
// Issues contiene los hallazgos de esquema (empty_file, missing_required_column)
// para que el llamador pueda mostrarlos antes de abortar.
type SchemaError struct {
	Source  entity.SourceFile
	Missing []string
	Issues  []entity.DataQualityIssue
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Source, ErrMissingColumns.Error(), strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumns }

// SchemaErrors extrae todos los *SchemaError de err, incluidos los unidos con errors.Join.
func SchemaErrors(err error) []*SchemaError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SchemaError); ok {
		return []*SchemaError{se}
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*SchemaError
		for _, e := range joined.Unwrap() {
			out = append(out, SchemaErrors(e)...)
		}
		return out
	}
	return SchemaErrors(errors.Unwrap(err))
}
