package dto

import "github.com/jhoicas/Inventario-reconciler/internal/domain/entity"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaErrorResponse cuerpo del 422 cuando un snapshot no tiene la forma mínima.
// Issues lleva los hallazgos empty_file / missing_required_column de cada snapshot.
type SchemaErrorResponse struct {
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Issues  []entity.DataQualityIssue `json:"issues"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// FormatsResponse formatos de reporte disponibles.
type FormatsResponse struct {
	Formats []string `json:"formats"`
}
