package entity

// ReportMetadata datos de la ejecución: cuándo se generó y qué archivos se procesaron.
type ReportMetadata struct {
	GeneratedAt        string `json:"generated_at"`
	Snapshot1Path      string `json:"snapshot_1_path"`
	Snapshot2Path      string `json:"snapshot_2_path"`
	Snapshot1Rows      int    `json:"snapshot_1_rows"`
	Snapshot2Rows      int    `json:"snapshot_2_rows"`
	Snapshot1ValidRows int    `json:"snapshot_1_valid_rows"` // sin filas con clave duplicada
	Snapshot2ValidRows int    `json:"snapshot_2_valid_rows"`
}

// ReportSummary conteos por estado y por severidad.
type ReportSummary struct {
	TotalItemsCompared      int            `json:"total_items_compared"`
	Unchanged               int            `json:"unchanged"`
	QuantityChanged         int            `json:"quantity_changed"`
	Added                   int            `json:"added"`
	Removed                 int            `json:"removed"`
	QualityIssuesCount      int            `json:"quality_issues_count"`
	QualityIssuesBySeverity map[string]int `json:"quality_issues_by_severity"`
}

// ResultsByStatus resultados agrupados; cada grupo ordenado por (sku, location).
type ResultsByStatus struct {
	Unchanged       []ReconciliationResult `json:"unchanged"`
	QuantityChanged []ReconciliationResult `json:"quantity_changed"`
	Added           []ReconciliationResult `json:"added"`
	Removed         []ReconciliationResult `json:"removed"`
}

// ByStatus devuelve el grupo correspondiente al estado.
func (r ResultsByStatus) ByStatus(s Status) []ReconciliationResult {
	switch s {
	case StatusUnchanged:
		return r.Unchanged
	case StatusQuantityChanged:
		return r.QuantityChanged
	case StatusAdded:
		return r.Added
	case StatusRemoved:
		return r.Removed
	}
	return nil
}

// ReconciliationReport es la raíz del reporte; se construye una vez por ejecución.
type ReconciliationReport struct {
	Metadata      ReportMetadata     `json:"metadata"`
	Summary       ReportSummary      `json:"summary"`
	Results       ResultsByStatus    `json:"results"`
	QualityIssues []DataQualityIssue `json:"quality_issues"`
}
