package reconciliation

import "github.com/jhoicas/Inventario-reconciler/internal/domain/entity"

// KeyFunc define la clave compuesta usada para detectar duplicados.
type KeyFunc func(entity.InventoryRecord) entity.Key

// CompositeKey es la clave por defecto: (sku, location).
var CompositeKey KeyFunc = entity.InventoryRecord.Key

// FindDuplicates devuelve todas las ocurrencias (no sólo la segunda en adelante)
// de las claves que aparecen más de una vez, en el orden original.
func FindDuplicates(records []entity.InventoryRecord, key KeyFunc) []entity.InventoryRecord {
	if key == nil {
		key = CompositeKey
	}
	counts := make(map[entity.Key]int, len(records))
	for _, r := range records {
		counts[key(r)]++
	}
	dupes := []entity.InventoryRecord{}
	for _, r := range records {
		if counts[key(r)] > 1 {
			dupes = append(dupes, r)
		}
	}
	return dupes
}

// ExcludeDuplicates separa las filas reconciliables de las que comparten clave.
func ExcludeDuplicates(records []entity.InventoryRecord, key KeyFunc) (kept, dupes []entity.InventoryRecord) {
	if key == nil {
		key = CompositeKey
	}
	dupes = FindDuplicates(records, key)
	if len(dupes) == 0 {
		return append([]entity.InventoryRecord{}, records...), dupes
	}
	excluded := make(map[entity.Key]struct{}, len(dupes))
	for _, d := range dupes {
		excluded[key(d)] = struct{}{}
	}
	kept = make([]entity.InventoryRecord, 0, len(records)-len(dupes))
	for _, r := range records {
		if _, ok := excluded[key(r)]; !ok {
			kept = append(kept, r)
		}
	}
	return kept, dupes
}
