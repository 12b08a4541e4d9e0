package reconciliation

import (
	"context"
	"io"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	domrec "github.com/jhoicas/Inventario-reconciler/internal/domain/reconciliation"
)

// SnapshotLoader lee un snapshot crudo. Un archivo inexistente debe devolver
// domain.ErrSnapshotNotFound; las columnas faltantes no son error del cargador.
type SnapshotLoader interface {
	LoadFile(ctx context.Context, path string) (*domrec.SnapshotFindings, error)
	LoadReader(ctx context.Context, name string, r io.Reader) (*domrec.SnapshotFindings, error)
}

// ReportRenderer serializa el reporte en un formato concreto (json, xml, pdf).
type ReportRenderer interface {
	Format() string
	ContentType() string
	Render(ctx context.Context, report *entity.ReconciliationReport) ([]byte, error)
}
