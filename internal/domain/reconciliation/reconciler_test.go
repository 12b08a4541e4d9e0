package reconciliation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/reconciliation"
)

func rec(sku, loc string, qty int) entity.InventoryRecord {
	return entity.InventoryRecord{SKU: sku, Name: sku + " name", Quantity: &qty, Location: loc}
}

func byKey(results []entity.ReconciliationResult) map[entity.Key]entity.ReconciliationResult {
	out := make(map[entity.Key]entity.ReconciliationResult, len(results))
	for _, r := range results {
		out[r.Key()] = r
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: 1 sin cambio, 3 con cambio de cantidad, 1 alta, 1 baja.
// ──────────────────────────────────────────────────────────────────────────────
func TestReconcile_EscenarioDeReferencia(t *testing.T) {
	old := []entity.InventoryRecord{
		rec("SKU-001", "A", 100),
		rec("SKU-002", "A", 50),
		rec("SKU-003", "B", 200),
		rec("SKU-004", "A", 75),
		rec("SKU-005", "B", 500),
	}
	current := []entity.InventoryRecord{
		rec("SKU-001", "A", 95),
		rec("SKU-002", "A", 50),
		rec("SKU-003", "B", 180),
		rec("SKU-005", "B", 480),
		rec("SKU-006", "A", 40),
	}

	results := reconciliation.Reconcile(old, current)
	require.Len(t, results, 6)

	idx := byKey(results)
	counts := map[entity.Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	assert.Equal(t, 1, counts[entity.StatusUnchanged])
	assert.Equal(t, 3, counts[entity.StatusQuantityChanged])
	assert.Equal(t, 1, counts[entity.StatusAdded])
	assert.Equal(t, 1, counts[entity.StatusRemoved])

	for key, delta := range map[entity.Key]int{
		{SKU: "SKU-001", Location: "A"}: -5,
		{SKU: "SKU-003", Location: "B"}: -20,
		{SKU: "SKU-005", Location: "B"}: -20,
		{SKU: "SKU-002", Location: "A"}: 0,
	} {
		r := idx[key]
		require.NotNil(t, r.QuantityDelta, key.String())
		assert.Equal(t, delta, *r.QuantityDelta, key.String())
	}

	added := idx[entity.Key{SKU: "SKU-006", Location: "A"}]
	assert.Equal(t, entity.StatusAdded, added.Status)
	assert.Nil(t, added.OldQuantity)
	assert.Nil(t, added.OldName)
	assert.Nil(t, added.QuantityDelta)
	require.NotNil(t, added.NewQuantity)
	assert.Equal(t, 40, *added.NewQuantity)

	removed := idx[entity.Key{SKU: "SKU-004", Location: "A"}]
	assert.Equal(t, entity.StatusRemoved, removed.Status)
	assert.Nil(t, removed.NewQuantity)
	assert.Nil(t, removed.NewName)
	require.NotNil(t, removed.OldQuantity)
	assert.Equal(t, 75, *removed.OldQuantity)
}

func TestReconcile_ClavesDisjuntas(t *testing.T) {
	old := []entity.InventoryRecord{rec("SKU-001", "A", 1), rec("SKU-002", "A", 2)}
	current := []entity.InventoryRecord{rec("SKU-001", "B", 1), rec("SKU-003", "A", 3), rec("SKU-004", "A", 4)}

	results := reconciliation.Reconcile(old, current)
	require.Len(t, results, len(old)+len(current))
	for _, r := range results[:len(old)] {
		assert.Equal(t, entity.StatusRemoved, r.Status)
	}
	for _, r := range results[len(old):] {
		assert.Equal(t, entity.StatusAdded, r.Status)
	}
}

func TestReconcile_UnLadoVacio(t *testing.T) {
	records := []entity.InventoryRecord{rec("SKU-001", "A", 1), rec("SKU-002", "A", 2)}

	for _, r := range reconciliation.Reconcile(nil, records) {
		assert.Equal(t, entity.StatusAdded, r.Status)
	}
	for _, r := range reconciliation.Reconcile(records, []entity.InventoryRecord{}) {
		assert.Equal(t, entity.StatusRemoved, r.Status)
	}
	assert.Empty(t, reconciliation.Reconcile(nil, nil))
}

func TestReconcile_CantidadAusenteNoProvocaPanico(t *testing.T) {
	withQty := rec("SKU-001", "A", 5)
	noQty := entity.InventoryRecord{SKU: "SKU-001", Location: "A"}

	require.NotPanics(t, func() {
		results := reconciliation.Reconcile([]entity.InventoryRecord{noQty}, []entity.InventoryRecord{withQty})
		require.Len(t, results, 1)
		assert.Equal(t, entity.StatusQuantityChanged, results[0].Status)
		assert.Nil(t, results[0].QuantityDelta)
	})
}

func TestReconcile_SinCantidadEnAmbosLados_DeltaCero(t *testing.T) {
	noQty := entity.InventoryRecord{SKU: "SKU-001", Location: "A"}

	results := reconciliation.Reconcile([]entity.InventoryRecord{noQty}, []entity.InventoryRecord{noQty})
	require.Len(t, results, 1)
	assert.Equal(t, entity.StatusUnchanged, results[0].Status)
	require.NotNil(t, results[0].QuantityDelta)
	assert.Equal(t, 0, *results[0].QuantityDelta)
	assert.Nil(t, results[0].OldQuantity)
	assert.Nil(t, results[0].NewQuantity)
}

func TestExcludeDuplicates_ExcluyeTodasLasOcurrencias(t *testing.T) {
	records := []entity.InventoryRecord{
		rec("SKU-001", "Warehouse A", 10),
		rec("SKU-002", "Warehouse A", 20),
		rec("SKU-001", "Warehouse A", 30),
	}

	dupes := reconciliation.FindDuplicates(records, nil)
	require.Len(t, dupes, 2)

	kept, excluded := reconciliation.ExcludeDuplicates(records, reconciliation.CompositeKey)
	assert.Len(t, excluded, 2)
	require.Len(t, kept, 1)
	assert.Equal(t, "SKU-002", kept[0].SKU)

	results := reconciliation.Reconcile(kept, kept)
	for _, r := range results {
		assert.NotEqual(t, "SKU-001", r.SKU)
	}
}

func TestFindDuplicates_ClavePersonalizada(t *testing.T) {
	records := []entity.InventoryRecord{rec("SKU-001", "A", 1), rec("SKU-001", "B", 2)}

	assert.Empty(t, reconciliation.FindDuplicates(records, nil))

	bySKU := func(r entity.InventoryRecord) entity.Key { return entity.Key{SKU: r.SKU} }
	assert.Len(t, reconciliation.FindDuplicates(records, bySKU), 2)
}
