// reconcile compara dos snapshots de inventario y escribe el reporte de reconciliación.
//
// Uso: go run ./cmd/reconcile --snapshot1 data/snapshot_1.csv --snapshot2 data/snapshot_2.csv [-o salida.json] [-q]
//
// Sale con código 1 si falta un archivo de entrada o si algún snapshot no tiene
// las columnas requeridas después del mapeo.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	appreconciliation "github.com/jhoicas/Inventario-reconciler/internal/application/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/internal/domain"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/report"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/snapshot"
	"github.com/jhoicas/Inventario-reconciler/pkg/config"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// progressLabels texto mostrado por cada paso del caso de uso.
var progressLabels = map[string]string{
	"load":       "Loading snapshots",
	"normalize":  "Normalizing data",
	"duplicates": "Detecting duplicates",
	"quality":    "Checking quality",
	"reconcile":  "Reconciling",
	"report":     "Building report",
	"write":      "Writing output",
}

const totalSteps = 7 // pasos del caso de uso + escritura

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("reconcile", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	snapshot1 := fs.String("snapshot1", "data/snapshot_1.csv", "snapshot anterior (.csv, .tsv, .txt, .xlsx)")
	snapshot2 := fs.String("snapshot2", "data/snapshot_2.csv", "snapshot posterior (.csv, .tsv, .txt, .xlsx)")
	quiet := fs.BoolP("quiet", "q", false, "sin líneas de progreso; el resumen se imprime siempre")
	xmlPath := fs.String("xml", "", "escribe además el reporte en XML canónico")
	pdfPath := fs.String("pdf", "", "escribe además el reporte en PDF")
	fs.StringP("output", "o", "output/reconciliation_report.json", "ruta del reporte")
	fs.String("format", "json", "formato del reporte principal: json, xml o pdf")
	fs.String("encoding", "utf-8", "codificación de los archivos delimitados: utf-8, latin1, windows-1252")
	fs.String("delimiter", "", `delimitador (\t para tabulador); vacío = según extensión`)
	fs.String("sheet", "", "hoja de los .xlsx; vacío = primera hoja")
	fs.String("log-level", "info", "trace, debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	level := cfg.App.LogLevel
	if *quiet {
		level = "error"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Out: stderr})

	loader := snapshot.NewLoader(snapshot.Options{
		Encoding:  cfg.Input.Encoding,
		Delimiter: cfg.Input.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
	}, log)
	uc := appreconciliation.NewUseCase(loader, log,
		report.NewJSONRenderer(),
		report.NewXMLRenderer(true),
		pdf.NewMarotoReportRenderer(),
	)

	done := 0
	progress := func(step string) {
		done++
		if !*quiet {
			fmt.Fprintf(stderr, "[%d/%d] %s\n", done, totalSteps, progressLabels[step])
		}
	}

	rep, err := uc.Run(ctx, appreconciliation.RunInput{
		Snapshot1: appreconciliation.Source{Path: *snapshot1},
		Snapshot2: appreconciliation.Source{Path: *snapshot2},
		Progress:  progress,
	})
	if err != nil {
		printRunError(stderr, err, *snapshot1, *snapshot2)
		return 1
	}

	progress("write")
	outputs := []struct{ path, format string }{{cfg.Output.Path, cfg.Output.Format}}
	if *xmlPath != "" {
		outputs = append(outputs, struct{ path, format string }{*xmlPath, "xml"})
	}
	if *pdfPath != "" {
		outputs = append(outputs, struct{ path, format string }{*pdfPath, "pdf"})
	}
	for _, out := range outputs {
		data, _, err := uc.Render(ctx, rep, out.format)
		if err == nil {
			err = report.WriteFile(out.path, data)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	printSummary(stdout, rep)
	fmt.Fprintln(stdout)
	for _, out := range outputs {
		fmt.Fprintf(stdout, "Output written to: %s\n", out.path)
	}
	return 0
}

// printRunError traduce los errores fatales a mensajes de consola.
func printRunError(w io.Writer, err error, path1, path2 string) {
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if schema := domain.SchemaErrors(err); len(schema) > 0 {
		for _, se := range schema {
			path := path1
			if se.Source == entity.SourceSnapshot2 {
				path = path2
			}
			fmt.Fprintf(w, "Error: Missing columns in %s: %v\n", path, se.Missing)
			for _, issue := range se.Issues {
				fmt.Fprintf(w, "  [%s] %s: %s\n", issue.Severity, issue.Type, issue.Description)
			}
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func printSummary(w io.Writer, rep *entity.ReconciliationReport) {
	md, s := rep.Metadata, rep.Summary
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Reconciliation Summary ===")
	fmt.Fprintf(w, "Snapshot 1: %s (%d rows)\n", md.Snapshot1Path, md.Snapshot1Rows)
	fmt.Fprintf(w, "Snapshot 2: %s (%d rows)\n", md.Snapshot2Path, md.Snapshot2Rows)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "  Unchanged:        %5d\n", s.Unchanged)
	fmt.Fprintf(w, "  Quantity Changed: %5d\n", s.QuantityChanged)
	fmt.Fprintf(w, "  Added:            %5d\n", s.Added)
	fmt.Fprintf(w, "  Removed:          %5d\n", s.Removed)
	fmt.Fprintln(w)
	bySev := s.QualityIssuesBySeverity
	fmt.Fprintf(w, "Quality Issues: %d (%d errors, %d warnings, %d info)\n",
		s.QualityIssuesCount, bySev["error"], bySev["warning"], bySev["info"])
}
