package dto

// ReconcileForm campos de texto del multipart de POST /api/reconciliations.
// Los archivos viajan en las partes snapshot_1 y snapshot_2.
type ReconcileForm struct {
	Format string `form:"format" validate:"omitempty,oneof=json xml pdf"`
}

// DefaultFormat aplica json si no se pidió formato.
func (f *ReconcileForm) DefaultFormat() {
	if f.Format == "" {
		f.Format = "json"
	}
}
