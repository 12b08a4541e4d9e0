package entity

// Status de una clave tras comparar los dos snapshots.
type Status string

const (
	StatusUnchanged       Status = "unchanged"
	StatusQuantityChanged Status = "quantity_changed"
	StatusAdded           Status = "added"
	StatusRemoved         Status = "removed"
)

// Statuses en el orden en que se presentan en el reporte.
var Statuses = []Status{StatusUnchanged, StatusQuantityChanged, StatusAdded, StatusRemoved}

// ReconciliationResult es el resultado de comparar una clave (sku, location).
// removed: sólo campos Old*; added: sólo campos New*. En unchanged QuantityDelta
// es siempre 0; en quantity_changed falta si una de las cantidades se desconoce.
type ReconciliationResult struct {
	SKU           string  `json:"sku"`
	Location      string  `json:"location"`
	Status        Status  `json:"status"`
	OldQuantity   *int    `json:"old_quantity"`
	NewQuantity   *int    `json:"new_quantity"`
	QuantityDelta *int    `json:"quantity_delta"`
	OldName       *string `json:"old_name"`
	NewName       *string `json:"new_name"`
}

// Key devuelve la clave compuesta del resultado.
func (r ReconciliationResult) Key() Key { return Key{SKU: r.SKU, Location: r.Location} }
