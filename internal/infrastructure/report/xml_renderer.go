package report

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// XMLRenderer produce el reporte como XML. Con Canonical la salida pasa por C14N
// (sin declaración, atributos ordenados) y es estable byte a byte.
type XMLRenderer struct {
	Canonical bool
}

// NewXMLRenderer construye el renderizador.
func NewXMLRenderer(canonical bool) *XMLRenderer { return &XMLRenderer{Canonical: canonical} }

func (*XMLRenderer) Format() string      { return "xml" }
func (*XMLRenderer) ContentType() string { return "application/xml; charset=utf-8" }

func (x *XMLRenderer) Render(_ context.Context, r *entity.ReconciliationReport) ([]byte, error) {
	doc := buildDocument(r, !x.Canonical)
	if !x.Canonical {
		doc.Indent(2)
		out, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("xml: serializar: %w", err)
		}
		return out, nil
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	out, err := canonicalizeXML(raw)
	if err != nil {
		return nil, fmt.Errorf("xml: canonicalizar: %w", err)
	}
	return append(out, '\n'), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

// ── Documento ─────────────────────────────────────────────────────────────────

func buildDocument(r *entity.ReconciliationReport, declaration bool) *etree.Document {
	doc := etree.NewDocument()
	if declaration {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}
	root := doc.CreateElement("reconciliation_report")

	md := root.CreateElement("metadata")
	md.CreateElement("generated_at").SetText(r.Metadata.GeneratedAt)
	md.CreateElement("snapshot_1_path").SetText(r.Metadata.Snapshot1Path)
	md.CreateElement("snapshot_2_path").SetText(r.Metadata.Snapshot2Path)
	md.CreateElement("snapshot_1_rows").SetText(strconv.Itoa(r.Metadata.Snapshot1Rows))
	md.CreateElement("snapshot_2_rows").SetText(strconv.Itoa(r.Metadata.Snapshot2Rows))
	md.CreateElement("snapshot_1_valid_rows").SetText(strconv.Itoa(r.Metadata.Snapshot1ValidRows))
	md.CreateElement("snapshot_2_valid_rows").SetText(strconv.Itoa(r.Metadata.Snapshot2ValidRows))

	sum := root.CreateElement("summary")
	sum.CreateAttr("total_items_compared", strconv.Itoa(r.Summary.TotalItemsCompared))
	sum.CreateAttr("unchanged", strconv.Itoa(r.Summary.Unchanged))
	sum.CreateAttr("quantity_changed", strconv.Itoa(r.Summary.QuantityChanged))
	sum.CreateAttr("added", strconv.Itoa(r.Summary.Added))
	sum.CreateAttr("removed", strconv.Itoa(r.Summary.Removed))
	sum.CreateAttr("quality_issues_count", strconv.Itoa(r.Summary.QualityIssuesCount))
	for _, s := range entity.Severities {
		sev := sum.CreateElement("severity")
		sev.CreateAttr("name", s.String())
		sev.CreateAttr("count", strconv.Itoa(r.Summary.QualityIssuesBySeverity[s.String()]))
	}

	results := root.CreateElement("results")
	for _, status := range entity.Statuses {
		group := results.CreateElement(string(status))
		for _, res := range r.Results.ByStatus(status) {
			item := group.CreateElement("item")
			item.CreateAttr("sku", res.SKU)
			item.CreateAttr("location", res.Location)
			optInt(item, "old_quantity", res.OldQuantity)
			optInt(item, "new_quantity", res.NewQuantity)
			optInt(item, "quantity_delta", res.QuantityDelta)
			optStr(item, "old_name", res.OldName)
			optStr(item, "new_name", res.NewName)
		}
	}

	issues := root.CreateElement("quality_issues")
	for _, qi := range r.QualityIssues {
		el := issues.CreateElement("issue")
		el.CreateAttr("issue_type", qi.Type.String())
		el.CreateAttr("severity", qi.Severity.String())
		el.CreateAttr("source_file", string(qi.SourceFile))
		optInt(el, "row_number", qi.RowNumber)
		optStr(el, "field", qi.Field)
		optStr(el, "original_value", qi.OriginalValue)
		optStr(el, "normalized_value", qi.NormalizedValue)
		el.SetText(qi.Description)
	}
	return doc
}

// Los opcionales ausentes se omiten (XML no tiene null).
func optInt(el *etree.Element, name string, v *int) {
	if v != nil {
		el.CreateAttr(name, strconv.Itoa(*v))
	}
}

func optStr(el *etree.Element, name string, v *string) {
	if v != nil {
		el.CreateAttr(name, *v)
	}
}
