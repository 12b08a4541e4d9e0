package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-reconciler/internal/domain"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	domrec "github.com/jhoicas/Inventario-reconciler/internal/domain/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

// Source identifica un snapshot. Si Content es nil se abre Path; si no, Path
// sólo se usa como nombre (extensión y metadatos del reporte).
type Source struct {
	Path    string
	Content io.Reader
}

// RunInput entrada del caso de uso.
type RunInput struct {
	Snapshot1 Source
	Snapshot2 Source
	// Progress recibe el nombre de cada paso antes de ejecutarlo. Opcional.
	Progress func(step string)
}

// UseCase orquesta cargador → normalizador → duplicados → reconciliador → chequeos → reporte.
type UseCase struct {
	loader    SnapshotLoader
	renderers map[string]ReportRenderer
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso con los renderizadores disponibles.
func NewUseCase(loader SnapshotLoader, log *logger.Logger, renderers ...ReportRenderer) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &UseCase{
		loader:    loader,
		renderers: make(map[string]ReportRenderer, len(renderers)),
		log:       log,
		now:       time.Now,
	}
	for _, r := range renderers {
		uc.renderers[r.Format()] = r
	}
	return uc
}

// WithClock fija el reloj usado para generated_at (tests y ejecuciones reproducibles).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Formats lista los formatos de salida registrados, ordenados.
func (uc *UseCase) Formats() []string {
	out := make([]string, 0, len(uc.renderers))
	for f := range uc.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run ejecuta la reconciliación completa.
//
// Retorna:
//   - domain.ErrSnapshotNotFound si algún archivo no existe.
//   - *domain.SchemaError (envuelve domain.ErrMissingColumns) por cada snapshot
//     vacío o sin columnas requeridas; si fallan ambos se unen con errors.Join.
func (uc *UseCase) Run(ctx context.Context, in RunInput) (*entity.ReconciliationReport, error) {
	step := func(name string) error {
		if in.Progress != nil {
			in.Progress(name)
		}
		uc.log.Debug().Str("step", name).Msg("reconciliación")
		return ctx.Err()
	}

	// ── 1. Cargar ─────────────────────────────────────────────────────────────
	if err := step("load"); err != nil {
		return nil, err
	}
	first, err := uc.load(ctx, in.Snapshot1, entity.SourceSnapshot1)
	if err != nil {
		return nil, err
	}
	second, err := uc.load(ctx, in.Snapshot2, entity.SourceSnapshot2)
	if err != nil {
		return nil, err
	}

	var schemaErrs []error
	for _, f := range []*domrec.SnapshotFindings{first, second} {
		if len(f.Missing) > 0 {
			schemaErrs = append(schemaErrs, &domain.SchemaError{
				Source:  f.Source,
				Missing: f.Missing,
				Issues:  domrec.SchemaIssues(*f),
			})
		}
	}
	if len(schemaErrs) > 0 {
		err := errors.Join(schemaErrs...)
		uc.log.Error().Err(err).Msg("snapshot sin columnas requeridas")
		return nil, err
	}

	// ── 2. Normalizar ─────────────────────────────────────────────────────────
	if err := step("normalize"); err != nil {
		return nil, err
	}
	records1, norms1 := domrec.Normalize(first.Snapshot)
	records2, norms2 := domrec.Normalize(second.Snapshot)
	uc.logNormalizations(entity.SourceSnapshot1, norms1)
	uc.logNormalizations(entity.SourceSnapshot2, norms2)

	// ── 3. Excluir duplicados ─────────────────────────────────────────────────
	if err := step("duplicates"); err != nil {
		return nil, err
	}
	valid1, dupes1 := domrec.ExcludeDuplicates(records1, domrec.CompositeKey)
	valid2, dupes2 := domrec.ExcludeDuplicates(records2, domrec.CompositeKey)
	if len(dupes1)+len(dupes2) > 0 {
		uc.log.Warn().
			Int("snapshot_1", len(dupes1)).
			Int("snapshot_2", len(dupes2)).
			Msg("filas con clave duplicada excluidas de la reconciliación")
	}

	// ── 4. Chequeos de calidad sobre los datos crudos ─────────────────────────
	if err := step("quality"); err != nil {
		return nil, err
	}
	issues := domrec.RunAllChecks(*first, *second)

	// ── 5. Reconciliar ────────────────────────────────────────────────────────
	if err := step("reconcile"); err != nil {
		return nil, err
	}
	results := domrec.Reconcile(valid1, valid2)

	// ── 6. Reporte ────────────────────────────────────────────────────────────
	if err := step("report"); err != nil {
		return nil, err
	}
	report := domrec.BuildReport(domrec.ReportInput{
		Snapshot1Path:      in.Snapshot1.Path,
		Snapshot2Path:      in.Snapshot2.Path,
		Snapshot1Rows:      len(records1),
		Snapshot2Rows:      len(records2),
		Snapshot1ValidRows: len(valid1),
		Snapshot2ValidRows: len(valid2),
		Results:            results,
		Issues:             issues,
		GeneratedAt:        uc.now(),
	})

	uc.log.Info().
		Int("compared", report.Summary.TotalItemsCompared).
		Int("quantity_changed", report.Summary.QuantityChanged).
		Int("added", report.Summary.Added).
		Int("removed", report.Summary.Removed).
		Int("issues", report.Summary.QualityIssuesCount).
		Msg("reconciliación completada")
	return report, nil
}

// Render serializa el reporte en el formato pedido.
func (uc *UseCase) Render(ctx context.Context, report *entity.ReconciliationReport, format string) ([]byte, ReportRenderer, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	data, err := r.Render(ctx, report)
	if err != nil {
		return nil, nil, fmt.Errorf("renderizar %s: %w", format, err)
	}
	return data, r, nil
}

func (uc *UseCase) load(ctx context.Context, src Source, id entity.SourceFile) (*domrec.SnapshotFindings, error) {
	var (
		f   *domrec.SnapshotFindings
		err error
	)
	if src.Content != nil {
		f, err = uc.loader.LoadReader(ctx, src.Path, src.Content)
	} else {
		f, err = uc.loader.LoadFile(ctx, src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	f.Source = id
	return f, nil
}

func (uc *UseCase) logNormalizations(source entity.SourceFile, norms domrec.Normalizations) {
	ev := uc.log.Debug().Str("source", string(source))
	for cat, rows := range norms {
		ev = ev.Int(string(cat), len(rows))
	}
	ev.Msg("normalización aplicada")

	if rows := norms[domrec.CategoryQuantityDefaulted]; len(rows) > 0 {
		uc.log.Warn().
			Str("source", string(source)).
			Ints("rows", rows).
			Msg("cantidades no numéricas forzadas a 0")
	}
}
