package reconciliation

import (
	"strings"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// columnAliases nombres alternativos conocidos → nombre canónico.
var columnAliases = map[string]string{
	"product_name": entity.ColumnName,
	"qty":          entity.ColumnQuantity,
	"warehouse":    entity.ColumnLocation,
	"updated_at":   entity.ColumnLastCounted,
}

// CanonicalColumn resuelve un encabezado. renamed es true sólo si el encabezado
// era un alias; cualquier otra columna se devuelve recortada y en minúsculas.
func CanonicalColumn(header string) (name string, renamed bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := columnAliases[key]; ok {
		return canonical, true
	}
	return key, false
}

// MissingColumns lista las columnas canónicas ausentes, en orden canónico.
func MissingColumns(columns []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	missing := []string{}
	for _, c := range entity.CanonicalColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
