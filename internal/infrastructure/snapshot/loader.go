// Package snapshot carga exportaciones tabulares del inventario (CSV, TSV, XLSX)
// y las entrega con las columnas mapeadas a sus nombres canónicos.
package snapshot

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-reconciler/internal/domain"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

// Codificaciones soportadas para archivos delimitados.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// Options configura la lectura. Los valores cero usan: UTF-8, delimitador según
// extensión (coma o tabulador) y la primera hoja del libro.
type Options struct {
	Encoding  string
	Delimiter rune
	Sheet     string
}

// Loader lee un snapshot y reporta columnas renombradas, columnas faltantes y
// cantidades con punto decimal.
type Loader struct {
	opts Options
	log  *logger.Logger
}

// NewLoader construye el cargador.
func NewLoader(opts Options, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{opts: opts, log: log}
}

// LoadFile abre y carga el archivo. Un archivo inexistente devuelve domain.ErrSnapshotNotFound.
func (l *Loader) LoadFile(ctx context.Context, path string) (*reconciliation.SnapshotFindings, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return l.LoadReader(ctx, path, f)
}

// LoadReader carga desde r; name sólo se usa para elegir el formato por extensión.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (*reconciliation.SnapshotFindings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx":
		rows, err = l.readXLSX(r)
	case ".tsv":
		rows, err = l.readDelimited(r, '\t')
	case ".csv", ".txt", "":
		rows, err = l.readDelimited(r, ',')
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", name, err)
	}

	findings := buildFindings(rows)
	l.log.Debug().
		Str("source", name).
		Int("rows", findings.Snapshot.Len()).
		Strs("mapped", findings.Mapped).
		Strs("missing", findings.Missing).
		Msg("snapshot cargado")
	return findings, nil
}

func (l *Loader) readDelimited(r io.Reader, def rune) ([][]string, error) {
	dec, err := decoderFor(l.opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = def
	if l.opts.Delimiter != 0 {
		cr.Comma = l.opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func (l *Loader) readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheet := l.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	return f.GetRows(sheet)
}

// decoderFor devuelve el decodificador a UTF-8. En UTF-8 se descarta el BOM inicial.
func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case EncodingLatin1, "iso-8859-1":
		enc = charmap.ISO8859_1
	case EncodingWindows1252, "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("%w: codificación %q", domain.ErrInvalidInput, name)
	}
	return enc.NewDecoder(), nil
}

// buildFindings mapea el encabezado y arma las filas crudas. Se omiten las líneas en
// blanco antes del encabezado y las líneas vacías del cuerpo. Una fila con sólo
// delimitadores (",,,,") cuenta como fila de datos y conserva su número.
// Sin filas de datos no se puede determinar qué columnas existen: se reportan todas
// como faltantes y ninguna como renombrada.
func buildFindings(rows [][]string) *reconciliation.SnapshotFindings {
	findings := &reconciliation.SnapshotFindings{
		Snapshot:        &entity.Snapshot{Columns: []string{}, Records: []entity.RawRecord{}},
		Mapped:          []string{},
		FloatQuantities: map[int]string{},
	}

	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		findings.Missing = reconciliation.MissingColumns(nil)
		return findings
	}

	header := rows[start]
	body := make([][]string, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if !emptyLine(row) {
			body = append(body, row)
		}
	}

	columns := make([]string, len(header))
	var mapped []string
	for i, h := range header {
		name, renamed := reconciliation.CanonicalColumn(h)
		columns[i] = name
		if renamed {
			mapped = append(mapped, h)
		}
	}
	findings.Snapshot.Columns = columns

	if len(body) == 0 {
		findings.Missing = reconciliation.MissingColumns(nil)
		return findings
	}
	if mapped != nil {
		findings.Mapped = mapped
	}
	findings.Missing = reconciliation.MissingColumns(columns)

	for idx, row := range body {
		rec := toRecord(columns, row)
		if strings.Contains(rec.Quantity, ".") {
			findings.FloatQuantities[idx] = strings.TrimSpace(rec.Quantity)
		}
		findings.Snapshot.Records = append(findings.Snapshot.Records, rec)
	}
	return findings
}

// toRecord asigna cada celda a su columna; la primera aparición de una columna canónica gana.
func toRecord(columns, row []string) entity.RawRecord {
	var rec entity.RawRecord
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if seen[col] {
			continue
		}
		seen[col] = true
		switch col {
		case entity.ColumnSKU:
			rec.SKU = cell
		case entity.ColumnName:
			rec.Name = cell
		case entity.ColumnQuantity:
			rec.Quantity = cell
		case entity.ColumnLocation:
			rec.Location = cell
		case entity.ColumnLastCounted:
			rec.LastCounted = cell
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = cell
		}
	}
	return rec
}

// emptyLine es una línea sin delimitadores ni texto. Una línea de espacios llega
// de encoding/csv como un único campo; excelize entrega las filas vacías sin celdas.
func emptyLine(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
