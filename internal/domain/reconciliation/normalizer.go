// Package reconciliation contiene el motor de reconciliación de snapshots de inventario:
// normalización, detección de claves duplicadas, comparación por clave (sku, location)
// y la batería de detectores de calidad de datos. Todas las funciones son puras.
package reconciliation

import (
	"regexp"
	"strings"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// Category agrupa las filas que requirieron normalización en un campo.
type Category string

const (
	CategorySKUNormalized     Category = "sku_normalized"
	CategoryNameTrimmed       Category = "name_trimmed"
	CategoryLocationTrimmed   Category = "location_trimmed"
	CategoryQuantityDefaulted Category = "quantity_defaulted" // texto no numérico forzado a 0
)

// Normalizations mapea cada categoría a los índices (0-based) de las filas afectadas.
type Normalizations map[Category][]int

// skuCompact reconoce "SKU001" (sin separador) para insertar el guion.
var skuCompact = regexp.MustCompile(`^SKU\d{3}$`)

// NormalizeSKU recorta, pasa a mayúsculas y convierte SKU001 en SKU-001.
// Una entrada vacía produce "".
func NormalizeSKU(raw string) string {
	clean := strings.ToUpper(strings.TrimSpace(raw))
	if skuCompact.MatchString(clean) {
		clean = clean[:3] + "-" + clean[3:]
	}
	return clean
}

// NormalizeText recorta espacios al inicio y al final; los internos se conservan.
func NormalizeText(raw string) string {
	return strings.TrimSpace(raw)
}

// Normalize devuelve una copia normalizada de las filas del snapshot y las filas
// afectadas por categoría. No modifica el snapshot de entrada.
func Normalize(s *entity.Snapshot) ([]entity.InventoryRecord, Normalizations) {
	norms := Normalizations{
		CategorySKUNormalized:     []int{},
		CategoryNameTrimmed:       []int{},
		CategoryLocationTrimmed:   []int{},
		CategoryQuantityDefaulted: []int{},
	}
	if s == nil {
		return []entity.InventoryRecord{}, norms
	}

	out := make([]entity.InventoryRecord, 0, len(s.Records))
	for i, raw := range s.Records {
		rec := entity.InventoryRecord{
			Row:         i + 1,
			SKU:         NormalizeSKU(raw.SKU),
			Name:        NormalizeText(raw.Name),
			Location:    NormalizeText(raw.Location),
			LastCounted: raw.LastCounted,
		}

		qty, ok := ParseQuantity(raw.Quantity)
		if !ok && strings.TrimSpace(raw.Quantity) != "" {
			norms[CategoryQuantityDefaulted] = append(norms[CategoryQuantityDefaulted], i)
		}
		rec.Quantity = &qty

		if strings.TrimSpace(raw.SKU) != rec.SKU {
			norms[CategorySKUNormalized] = append(norms[CategorySKUNormalized], i)
		}
		if raw.Name != rec.Name {
			norms[CategoryNameTrimmed] = append(norms[CategoryNameTrimmed], i)
		}
		if raw.Location != rec.Location {
			norms[CategoryLocationTrimmed] = append(norms[CategoryLocationTrimmed], i)
		}
		out = append(out, rec)
	}
	return out, norms
}
