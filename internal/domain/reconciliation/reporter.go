package reconciliation

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// GeneratedAtLayout formato UTC del sello de generación del reporte.
const GeneratedAtLayout = "2006-01-02T15:04:05Z"

// ReportInput reúne las salidas de cargador, filtro de duplicados, reconciliador y
// chequeos de calidad. GeneratedAt lo inyecta el llamador.
type ReportInput struct {
	Snapshot1Path      string
	Snapshot2Path      string
	Snapshot1Rows      int
	Snapshot2Rows      int
	Snapshot1ValidRows int
	Snapshot2ValidRows int
	Results            []entity.ReconciliationResult
	Issues             []entity.DataQualityIssue
	GeneratedAt        time.Time
}

// BuildReport agrupa resultados por estado (cada grupo ordenado por sku, location),
// cuenta problemas por severidad y ordena los problemas de forma reproducible.
// No modifica los slices de entrada.
func BuildReport(in ReportInput) *entity.ReconciliationReport {
	groups := entity.ResultsByStatus{
		Unchanged:       []entity.ReconciliationResult{},
		QuantityChanged: []entity.ReconciliationResult{},
		Added:           []entity.ReconciliationResult{},
		Removed:         []entity.ReconciliationResult{},
	}
	for _, r := range in.Results {
		switch r.Status {
		case entity.StatusUnchanged:
			groups.Unchanged = append(groups.Unchanged, r)
		case entity.StatusQuantityChanged:
			groups.QuantityChanged = append(groups.QuantityChanged, r)
		case entity.StatusAdded:
			groups.Added = append(groups.Added, r)
		case entity.StatusRemoved:
			groups.Removed = append(groups.Removed, r)
		}
	}
	for _, g := range [][]entity.ReconciliationResult{groups.Unchanged, groups.QuantityChanged, groups.Added, groups.Removed} {
		sort.SliceStable(g, func(i, j int) bool { return g[i].Key().Less(g[j].Key()) })
	}

	issues := SortIssues(in.Issues)

	bySeverity := make(map[string]int, len(entity.Severities))
	for _, s := range entity.Severities {
		bySeverity[s.String()] = 0
	}
	for _, i := range issues {
		bySeverity[i.Severity.String()]++
	}

	return &entity.ReconciliationReport{
		Metadata: entity.ReportMetadata{
			GeneratedAt:        in.GeneratedAt.UTC().Format(GeneratedAtLayout),
			Snapshot1Path:      in.Snapshot1Path,
			Snapshot2Path:      in.Snapshot2Path,
			Snapshot1Rows:      in.Snapshot1Rows,
			Snapshot2Rows:      in.Snapshot2Rows,
			Snapshot1ValidRows: in.Snapshot1ValidRows,
			Snapshot2ValidRows: in.Snapshot2ValidRows,
		},
		Summary: entity.ReportSummary{
			TotalItemsCompared:      len(in.Results),
			Unchanged:               len(groups.Unchanged),
			QuantityChanged:         len(groups.QuantityChanged),
			Added:                   len(groups.Added),
			Removed:                 len(groups.Removed),
			QualityIssuesCount:      len(issues),
			QualityIssuesBySeverity: bySeverity,
		},
		Results:       groups,
		QualityIssues: issues,
	}
}

// SortIssues devuelve una copia ordenada por (severidad, tipo, archivo, fila).
// La severidad sigue el ranking error < warning < info y no el orden alfabético de
// su nombre, por lo que los warning preceden a los info. El tipo se ordena por nombre.
func SortIssues(issues []entity.DataQualityIssue) []entity.DataQualityIssue {
	out := make([]entity.DataQualityIssue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if at, bt := a.Type.String(), b.Type.String(); at != bt {
			return at < bt
		}
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.SortRow() < b.SortRow()
	})
	return out
}
