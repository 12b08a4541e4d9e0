package reconciliation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// SnapshotFindings reúne un snapshot crudo con los hallazgos del cargador.
type SnapshotFindings struct {
	Source          entity.SourceFile
	Snapshot        *entity.Snapshot
	Mapped          []string       // encabezados originales renombrados a canónicos
	Missing         []string       // columnas canónicas ausentes tras el mapeo
	FloatQuantities map[int]string // índice 0-based → texto original con punto decimal
}

// RunAllChecks ejecuta la batería completa en orden fijo: archivos vacíos, columnas
// faltantes, columnas renombradas, chequeos por archivo y chequeos cruzados.
// El resultado es la concatenación sin deduplicar.
func RunAllChecks(first, second SnapshotFindings) []entity.DataQualityIssue {
	issues := []entity.DataQualityIssue{}

	issues = append(issues, CheckEmptyFile(first.Snapshot, first.Source)...)
	issues = append(issues, CheckEmptyFile(second.Snapshot, second.Source)...)
	issues = append(issues, CheckMissingColumns(first.Missing, first.Source)...)
	issues = append(issues, CheckMissingColumns(second.Missing, second.Source)...)
	issues = append(issues, CheckColumnMapping(first.Mapped, first.Source)...)
	issues = append(issues, CheckColumnMapping(second.Mapped, second.Source)...)

	for _, f := range []SnapshotFindings{first, second} {
		if f.Snapshot.Empty() {
			continue
		}
		issues = append(issues, CheckDuplicateKeys(f.Snapshot, f.Source)...)
		issues = append(issues, CheckNegativeQuantities(f.Snapshot, f.Source)...)
		issues = append(issues, CheckQuantityCoerced(f.Snapshot, f.FloatQuantities, f.Source)...)
		issues = append(issues, CheckSKUFormat(f.Snapshot, f.Source)...)
		issues = append(issues, CheckWhitespace(f.Snapshot, f.Source)...)
		issues = append(issues, CheckDateFormat(f.Snapshot, f.Source)...)
	}

	if !first.Snapshot.Empty() && !second.Snapshot.Empty() {
		issues = append(issues, CheckNameDrift(first.Snapshot, second.Snapshot)...)
		issues = append(issues, CheckDateRegression(first.Snapshot, second.Snapshot)...)
	}
	return issues
}

// SchemaIssues devuelve sólo los hallazgos que impiden reconciliar un snapshot.
func SchemaIssues(f SnapshotFindings) []entity.DataQualityIssue {
	issues := CheckEmptyFile(f.Snapshot, f.Source)
	return append(issues, CheckMissingColumns(f.Missing, f.Source)...)
}

// ── Chequeos de esquema ──────────────────────────────────────────────────────

func CheckEmptyFile(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	if !s.Empty() {
		return nil
	}
	return []entity.DataQualityIssue{
		entity.NewIssue(entity.IssueEmptyFile, source,
			fmt.Sprintf("File %s contains no data rows", source)),
	}
}

func CheckMissingColumns(missing []string, source entity.SourceFile) []entity.DataQualityIssue {
	issues := make([]entity.DataQualityIssue, 0, len(missing))
	for _, col := range missing {
		issues = append(issues, entity.NewIssue(entity.IssueMissingRequiredColumn, source,
			fmt.Sprintf("Required column '%s' not found in %s", col, source)).
			OnField(col))
	}
	return issues
}

func CheckColumnMapping(mapped []string, source entity.SourceFile) []entity.DataQualityIssue {
	issues := make([]entity.DataQualityIssue, 0, len(mapped))
	for _, orig := range mapped {
		canonical, _ := CanonicalColumn(orig)
		issues = append(issues, entity.NewIssue(entity.IssueColumnNameMismatch, source,
			fmt.Sprintf("Column '%s' mapped to '%s'", orig, canonical)).
			OnField(orig).
			WithOriginal(orig).
			WithNormalized(canonical))
	}
	return issues
}

// ── Chequeos por archivo ─────────────────────────────────────────────────────

// CheckDuplicateKeys reporta cada fila (todas las ocurrencias) cuya clave normalizada
// se repite. Se compara la clave normalizada porque es la que usa la reconciliación.
func CheckDuplicateKeys(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	if !s.HasColumn(entity.ColumnSKU) || !s.HasColumn(entity.ColumnLocation) {
		return nil
	}
	counts := make(map[entity.Key]int, s.Len())
	for _, r := range s.Records {
		counts[normalizedKey(r)]++
	}

	var issues []entity.DataQualityIssue
	for i, r := range s.Records {
		key := normalizedKey(r)
		if counts[key] < 2 {
			continue
		}
		issue := entity.NewIssue(entity.IssueDuplicateKey, source,
			fmt.Sprintf("Duplicate key %s at row %d", key, i+1)).
			AtRow(i + 1).
			OnField("sku,location").
			WithOriginal(r.Key().String())
		if r.Key() != key {
			issue = issue.WithNormalized(key.String())
		}
		issues = append(issues, issue)
	}
	return issues
}

func CheckNegativeQuantities(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	if !s.HasColumn(entity.ColumnQuantity) {
		return nil
	}
	var issues []entity.DataQualityIssue
	for i, r := range s.Records {
		if !IsNegativeQuantity(r.Quantity) {
			continue
		}
		qty := strings.TrimSpace(r.Quantity)
		issues = append(issues, entity.NewIssue(entity.IssueNegativeQuantity, source,
			fmt.Sprintf("Negative quantity %s for SKU %s at row %d", qty, skuLabel(r), i+1)).
			AtRow(i+1).
			OnField(entity.ColumnQuantity).
			WithOriginal(qty))
	}
	return issues
}

// CheckQuantityCoerced usa el mapa de cantidades con punto decimal del cargador,
// ya que el texto original se pierde al convertir a entero. Un texto que no cabe en
// un entero no se reporta aquí: la normalización lo deja en cero.
func CheckQuantityCoerced(s *entity.Snapshot, floats map[int]string, source entity.SourceFile) []entity.DataQualityIssue {
	if len(floats) == 0 {
		return nil
	}
	rows := make([]int, 0, len(floats))
	for idx := range floats {
		rows = append(rows, idx)
	}
	sort.Ints(rows)

	issues := make([]entity.DataQualityIssue, 0, len(rows))
	for _, idx := range rows {
		original := floats[idx]
		qty, ok := ParseQuantity(original)
		if !ok {
			continue
		}
		sku := "unknown"
		if s != nil && idx < s.Len() {
			sku = skuLabel(s.Records[idx])
		}
		normalized := strconv.Itoa(qty)
		issues = append(issues, entity.NewIssue(entity.IssueQuantityCoerced, source,
			fmt.Sprintf("Quantity '%s' coerced to integer %s for SKU %s at row %d", original, normalized, sku, idx+1)).
			AtRow(idx+1).
			OnField(entity.ColumnQuantity).
			WithOriginal(original).
			WithNormalized(normalized))
	}
	return issues
}

func CheckSKUFormat(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	if !s.HasColumn(entity.ColumnSKU) {
		return nil
	}
	var issues []entity.DataQualityIssue
	for i, r := range s.Records {
		original := strings.TrimSpace(r.SKU)
		normalized := NormalizeSKU(r.SKU)
		if normalized == "" || normalized == original {
			continue
		}
		issues = append(issues, entity.NewIssue(entity.IssueSKUFormatNormalized, source,
			fmt.Sprintf("SKU normalized from '%s' to '%s' at row %d", original, normalized, i+1)).
			AtRow(i+1).
			OnField(entity.ColumnSKU).
			WithOriginal(original).
			WithNormalized(normalized))
	}
	return issues
}

// CheckWhitespace evalúa name y location por separado; una fila puede producir dos problemas.
func CheckWhitespace(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	fields := []struct {
		name  string
		value func(entity.RawRecord) string
	}{
		{entity.ColumnName, func(r entity.RawRecord) string { return r.Name }},
		{entity.ColumnLocation, func(r entity.RawRecord) string { return r.Location }},
	}

	var issues []entity.DataQualityIssue
	for _, f := range fields {
		if !s.HasColumn(f.name) {
			continue
		}
		for i, r := range s.Records {
			raw := f.value(r)
			trimmed := NormalizeText(raw)
			if raw == trimmed {
				continue
			}
			issues = append(issues, entity.NewIssue(entity.IssueWhitespaceTrimmed, source,
				fmt.Sprintf("Whitespace trimmed from %s at row %d", f.name, i+1)).
				AtRow(i+1).
				OnField(f.name).
				WithOriginal(strconv.Quote(raw)).
				WithNormalized(trimmed))
		}
	}
	return issues
}

func CheckDateFormat(s *entity.Snapshot, source entity.SourceFile) []entity.DataQualityIssue {
	if !s.HasColumn(entity.ColumnLastCounted) {
		return nil
	}
	var issues []entity.DataQualityIssue
	for i, r := range s.Records {
		value := strings.TrimSpace(r.LastCounted)
		if IsISODate(value) {
			continue
		}
		issues = append(issues, entity.NewIssue(entity.IssueDateFormatInconsistent, source,
			fmt.Sprintf("Date '%s' is not in ISO format (YYYY-MM-DD) at row %d", value, i+1)).
			AtRow(i+1).
			OnField(entity.ColumnLastCounted).
			WithOriginal(value))
	}
	return issues
}

// ── Chequeos cruzados ────────────────────────────────────────────────────────

// CheckNameDrift compara nombres recortados de las claves presentes en ambos snapshots.
func CheckNameDrift(first, second *entity.Snapshot) []entity.DataQualityIssue {
	if !first.HasColumn(entity.ColumnName) || !second.HasColumn(entity.ColumnName) {
		return nil
	}
	var issues []entity.DataQualityIssue
	innerJoin(first, second, func(key entity.Key, a, b entity.RawRecord) {
		oldName, newName := NormalizeText(a.Name), NormalizeText(b.Name)
		if oldName == newName {
			return
		}
		issues = append(issues, entity.NewIssue(entity.IssueNameDrift, entity.SourceBoth,
			fmt.Sprintf("Name changed for %s: '%s' -> '%s'", key, oldName, newName)).
			OnField(entity.ColumnName).
			WithOriginal(oldName).
			WithNormalized(newName))
	})
	return issues
}

// CheckDateRegression sólo evalúa pares donde ambas fechas son ISO válidas;
// las fechas mal formadas ya las reporta CheckDateFormat.
func CheckDateRegression(first, second *entity.Snapshot) []entity.DataQualityIssue {
	if !first.HasColumn(entity.ColumnLastCounted) || !second.HasColumn(entity.ColumnLastCounted) {
		return nil
	}
	var issues []entity.DataQualityIssue
	innerJoin(first, second, func(key entity.Key, a, b entity.RawRecord) {
		oldDate, okOld := ParseISODate(a.LastCounted)
		newDate, okNew := ParseISODate(b.LastCounted)
		if !okOld || !okNew || !newDate.Before(oldDate) {
			return
		}
		oldText, newText := strings.TrimSpace(a.LastCounted), strings.TrimSpace(b.LastCounted)
		issues = append(issues, entity.NewIssue(entity.IssueDateRegression, entity.SourceBoth,
			fmt.Sprintf("Date regressed for %s: '%s' -> '%s'", key, oldText, newText)).
			OnField(entity.ColumnLastCounted).
			WithOriginal(oldText).
			WithNormalized(newText))
	})
	return issues
}

// innerJoin recorre los pares con la misma clave normalizada en orden del primer
// snapshot; una clave repetida produce el producto cruzado de sus filas.
func innerJoin(first, second *entity.Snapshot, fn func(entity.Key, entity.RawRecord, entity.RawRecord)) {
	if !first.HasColumn(entity.ColumnSKU) || !first.HasColumn(entity.ColumnLocation) ||
		!second.HasColumn(entity.ColumnSKU) || !second.HasColumn(entity.ColumnLocation) {
		return
	}
	idx := make(map[entity.Key][]int, second.Len())
	for i, r := range second.Records {
		k := normalizedKey(r)
		idx[k] = append(idx[k], i)
	}
	for _, a := range first.Records {
		k := normalizedKey(a)
		for _, j := range idx[k] {
			fn(k, a, second.Records[j])
		}
	}
}

func normalizedKey(r entity.RawRecord) entity.Key {
	return entity.Key{SKU: NormalizeSKU(r.SKU), Location: NormalizeText(r.Location)}
}

func skuLabel(r entity.RawRecord) string {
	if sku := strings.TrimSpace(r.SKU); sku != "" {
		return sku
	}
	return "unknown"
}
