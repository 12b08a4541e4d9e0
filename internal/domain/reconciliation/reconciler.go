package reconciliation

import "github.com/jhoicas/Inventario-reconciler/internal/domain/entity"

// Reconcile compara dos snapshots normalizados y sin duplicados y clasifica cada clave
// de la unión en unchanged, quantity_changed, added o removed.
//
// Recorrido en una sola pasada con índice por clave: O(n+m). Si una clave aparece más
// de una vez en un lado (el llamador no filtró duplicados) se usa la primera ocurrencia.
func Reconcile(old, current []entity.InventoryRecord) []entity.ReconciliationResult {
	if len(old) == 0 {
		return onlyAdded(current)
	}
	if len(current) == 0 {
		return onlyRemoved(old)
	}

	oldIdx := indexRecords(old)
	newIdx := indexRecords(current)

	results := make([]entity.ReconciliationResult, 0, len(oldIdx)+len(newIdx))
	seen := make(map[entity.Key]struct{}, len(oldIdx))
	for _, o := range old {
		k := o.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		o = oldIdx[k]
		if n, ok := newIdx[k]; ok {
			results = append(results, compare(o, n))
		} else {
			results = append(results, removed(o))
		}
	}
	for _, n := range current {
		k := n.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		results = append(results, added(newIdx[k]))
	}
	return results
}

func indexRecords(records []entity.InventoryRecord) map[entity.Key]entity.InventoryRecord {
	idx := make(map[entity.Key]entity.InventoryRecord, len(records))
	for _, r := range records {
		if _, ok := idx[r.Key()]; !ok {
			idx[r.Key()] = r
		}
	}
	return idx
}

func onlyAdded(records []entity.InventoryRecord) []entity.ReconciliationResult {
	results := make([]entity.ReconciliationResult, 0, len(records))
	seen := make(map[entity.Key]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Key()]; ok {
			continue
		}
		seen[r.Key()] = struct{}{}
		results = append(results, added(r))
	}
	return results
}

func onlyRemoved(records []entity.InventoryRecord) []entity.ReconciliationResult {
	results := make([]entity.ReconciliationResult, 0, len(records))
	seen := make(map[entity.Key]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Key()]; ok {
			continue
		}
		seen[r.Key()] = struct{}{}
		results = append(results, removed(r))
	}
	return results
}

func added(n entity.InventoryRecord) entity.ReconciliationResult {
	return entity.ReconciliationResult{
		SKU:         n.SKU,
		Location:    n.Location,
		Status:      entity.StatusAdded,
		NewQuantity: copyInt(n.Quantity),
		NewName:     strPtr(n.Name),
	}
}

func removed(o entity.InventoryRecord) entity.ReconciliationResult {
	return entity.ReconciliationResult{
		SKU:         o.SKU,
		Location:    o.Location,
		Status:      entity.StatusRemoved,
		OldQuantity: copyInt(o.Quantity),
		OldName:     strPtr(o.Name),
	}
}

// compare clasifica una clave presente en ambos lados. Una cantidad ausente nunca
// provoca pánico: si falta de un solo lado la clave cuenta como cambiada sin delta;
// si falta en ambos, queda sin cambio con delta 0.
func compare(o, n entity.InventoryRecord) entity.ReconciliationResult {
	res := entity.ReconciliationResult{
		SKU:         o.SKU,
		Location:    o.Location,
		OldQuantity: copyInt(o.Quantity),
		NewQuantity: copyInt(n.Quantity),
		OldName:     strPtr(o.Name),
		NewName:     strPtr(n.Name),
	}
	switch {
	case o.Quantity != nil && n.Quantity != nil:
		delta := *n.Quantity - *o.Quantity
		res.QuantityDelta = &delta
		if delta == 0 {
			res.Status = entity.StatusUnchanged
		} else {
			res.Status = entity.StatusQuantityChanged
		}
	case o.Quantity == nil && n.Quantity == nil:
		delta := 0
		res.QuantityDelta = &delta
		res.Status = entity.StatusUnchanged
	default:
		res.Status = entity.StatusQuantityChanged
	}
	return res
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func strPtr(s string) *string { return &s }
