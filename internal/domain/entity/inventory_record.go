package entity

import (
	"errors"
	"fmt"
)

// Columnas canónicas de un snapshot (después de mapear nombres alternativos).
const (
	ColumnSKU         = "sku"
	ColumnName        = "name"
	ColumnQuantity    = "quantity"
	ColumnLocation    = "location"
	ColumnLastCounted = "last_counted"
)

// CanonicalColumns en el orden en que se reportan como faltantes.
var CanonicalColumns = []string{ColumnSKU, ColumnName, ColumnQuantity, ColumnLocation, ColumnLastCounted}

// Key es la clave compuesta (sku, location) que identifica una posición de inventario.
type Key struct {
	SKU      string
	Location string
}

func (k Key) String() string { return k.SKU + "@" + k.Location }

// Less ordena por sku y luego por location.
func (k Key) Less(o Key) bool {
	if k.SKU != o.SKU {
		return k.SKU < o.SKU
	}
	return k.Location < o.Location
}

// RawRecord es una fila tal como llegó del archivo, con las columnas ya mapeadas
// pero sin normalizar. Las celdas ausentes quedan como "".
type RawRecord struct {
	SKU         string
	Name        string
	Quantity    string
	Location    string
	LastCounted string
	Extra       map[string]string // columnas no canónicas, pasan sin validar
}

// Key devuelve la clave compuesta con los valores crudos.
func (r RawRecord) Key() Key { return Key{SKU: r.SKU, Location: r.Location} }

// Snapshot es la tabla cruda de una exportación del inventario.
type Snapshot struct {
	Columns []string
	Records []RawRecord
}

// HasColumn indica si la columna (canónica o no) existe en el encabezado.
func (s *Snapshot) HasColumn(name string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len devuelve el número de filas de datos (sin encabezado).
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Empty es true cuando el snapshot no tiene filas de datos.
func (s *Snapshot) Empty() bool { return s.Len() == 0 }

// Errores de validación de un registro normalizado.
var (
	ErrEmptySKU      = errors.New("sku vacío")
	ErrEmptyName     = errors.New("nombre vacío")
	ErrEmptyLocation = errors.New("ubicación vacía")
)

// InventoryRecord es una fila normalizada de un snapshot.
// Quantity es nil sólo si el registro no pasó por el normalizador.
type InventoryRecord struct {
	Row         int // 1-indexed, sin contar el encabezado
	SKU         string
	Name        string
	Quantity    *int
	Location    string
	LastCounted string
}

// Key devuelve la clave compuesta (sku, location).
func (r InventoryRecord) Key() Key { return Key{SKU: r.SKU, Location: r.Location} }

// Validate comprueba que sku, name y location no estén vacíos.
// Un registro inválido es un defecto de datos, no un error de carga.
func (r InventoryRecord) Validate() error {
	var errs []error
	if r.SKU == "" {
		errs = append(errs, ErrEmptySKU)
	}
	if r.Name == "" {
		errs = append(errs, ErrEmptyName)
	}
	if r.Location == "" {
		errs = append(errs, ErrEmptyLocation)
	}
	if len(errs) > 0 {
		return fmt.Errorf("fila %d: %w", r.Row, errors.Join(errs...))
	}
	return nil
}
