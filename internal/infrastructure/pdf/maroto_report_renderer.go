// Package pdf genera la versión imprimible del reporte de reconciliación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ARCHIVOS: snapshot 1 / snapshot 2 con filas válidas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conteos por estado y por severidad                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: cambios de cantidad, altas, bajas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CALIDAD: severidad | tipo | archivo | fila | descripción   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 176, Green: 0, Blue: 32}
	colorWarning = &props.Color{Red: 191, Green: 120, Blue: 0}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa el renderizador "pdf" usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderizador.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

func (*MarotoReportRenderer) Format() string      { return "pdf" }
func (*MarotoReportRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(_ context.Context, r *entity.ReconciliationReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reconciliación de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r.Metadata))
	m.AddRows(filesRow(r.Metadata))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(resultSection("Cambios de cantidad", r.Results.QuantityChanged)...)
	m.AddRows(resultSection("Altas (solo en snapshot 2)", r.Results.Added)...)
	m.AddRows(resultSection("Bajas (solo en snapshot 1)", r.Results.Removed)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(issueSection(r.QualityIssues)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(md entity.ReportMetadata) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RECONCILIACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+md.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func filesRow(md entity.ReportMetadata) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Snapshot 1: %s   |   filas: %d   |   válidas: %d",
				nonEmpty(md.Snapshot1Path, "-"), md.Snapshot1Rows, md.Snapshot1ValidRows),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("Snapshot 2: %s   |   filas: %d   |   válidas: %d",
				nonEmpty(md.Snapshot2Path, "-"), md.Snapshot2Rows, md.Snapshot2ValidRows),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func summaryRow(s entity.ReportSummary) core.Row {
	stat := func(label string, n int, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(formatInt(n), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 5,
			}),
		)
	}
	return row.New(16).Add(
		stat("Comparados", s.TotalItemsCompared, colorPrimary),
		stat("Sin cambio", s.Unchanged, colorPrimary),
		stat("Cambio cant.", s.QuantityChanged, colorPrimary),
		stat("Altas", s.Added, colorPrimary),
		stat("Bajas", s.Removed, colorPrimary),
		col.New(2).Add(
			text.New("Problemas", props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d E / %d W / %d I",
				s.QualityIssuesBySeverity[entity.SeverityError.String()],
				s.QualityIssuesBySeverity[entity.SeverityWarning.String()],
				s.QualityIssuesBySeverity[entity.SeverityInfo.String()],
			), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 6}),
		),
	)
}

func sectionTitle(title string, n int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%d)", title, n), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1, Left: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

// resultSection: una fila por resultado; se omite la tabla si el grupo está vacío.
func resultSection(title string, results []entity.ReconciliationResult) []core.Row {
	rows := []core.Row{sectionTitle(title, len(results))}
	if len(results) == 0 {
		return rows
	}
	sizes := []int{2, 3, 3, 1, 1, 2}
	rows = append(rows, tableHeader([]string{"SKU", "Ubicación", "Nombre", "Antes", "Después", "Delta"}, sizes))
	for _, res := range results {
		name := derefStr(res.NewName)
		if name == "" {
			name = derefStr(res.OldName)
		}
		cells := []string{res.SKU, res.Location, name, optInt(res.OldQuantity), optInt(res.NewQuantity), signedInt(res.QuantityDelta)}
		cols := make([]core.Col, len(cells))
		for i, c := range cells {
			a := align.Left
			if i >= 3 {
				a = align.Right
			}
			cols[i] = col.New(sizes[i]).Add(text.New(c, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

func issueSection(issues []entity.DataQualityIssue) []core.Row {
	rows := []core.Row{sectionTitle("Problemas de calidad de datos", len(issues))}
	if len(issues) == 0 {
		return rows
	}
	sizes := []int{1, 2, 1, 1, 7}
	rows = append(rows, tableHeader([]string{"Sev.", "Tipo", "Archivo", "Fila", "Descripción"}, sizes))
	for _, qi := range issues {
		rows = append(rows, row.New(5).Add(
			col.New(sizes[0]).Add(text.New(qi.Severity.String(), props.Text{
				Style: fontstyle.Bold, Size: 6.5, Color: severityColor(qi.Severity), Top: 1, Left: 1,
			})),
			col.New(sizes[1]).Add(text.New(qi.Type.String(), props.Text{Size: 6.5, Top: 1, Left: 1})),
			col.New(sizes[2]).Add(text.New(string(qi.SourceFile), props.Text{Size: 6.5, Top: 1, Left: 1})),
			col.New(sizes[3]).Add(text.New(optInt(qi.RowNumber), props.Text{Size: 6.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(sizes[4]).Add(text.New(qi.Description, props.Text{Size: 6.5, Color: colorGray, Top: 1, Left: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func severityColor(s entity.Severity) *props.Color {
	switch s {
	case entity.SeverityError:
		return colorError
	case entity.SeverityWarning:
		return colorWarning
	}
	return colorGray
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optInt(p *int) string {
	if p == nil {
		return "-"
	}
	return formatInt(*p)
}

func signedInt(p *int) string {
	if p == nil {
		return "-"
	}
	if *p > 0 {
		return "+" + formatInt(*p)
	}
	return formatInt(*p)
}

// formatInt inserta puntos de miles. Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatInt(v int) string {
	s := strconv.Itoa(v)
	sign := ""
	if v < 0 {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
