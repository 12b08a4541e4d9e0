package http

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-reconciler/internal/application/dto"
	appreconciliation "github.com/jhoicas/Inventario-reconciler/internal/application/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/internal/domain"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

// ReconciliationHandler expone la reconciliación de dos snapshots subidos por multipart.
type ReconciliationHandler struct {
	uc       *appreconciliation.UseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(uc *appreconciliation.UseCase, log *logger.Logger) *ReconciliationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconciliationHandler{uc: uc, validate: validator.New(), log: log}
}

// Create godoc
// @Summary      Reconciliar dos snapshots de inventario
// @Tags         reconciliations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json,xml,application/pdf
// @Param        snapshot_1  formData  file    true   "Snapshot anterior (.csv, .tsv, .xlsx)"
// @Param        snapshot_2  formData  file    true   "Snapshot posterior (.csv, .tsv, .xlsx)"
// @Param        format      formData  string  false  "json (por defecto), xml o pdf"
// @Success      200  {object}  entity.ReconciliationReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.SchemaErrorResponse
// @Router       /api/reconciliations [post]
func (h *ReconciliationHandler) Create(c *fiber.Ctx) error {
	var form dto.ReconcileForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera multipart/form-data"})
	}
	form.DefaultFormat()
	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, xml o pdf"})
	}

	src1, close1, err := openPart(c, "snapshot_1")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: err.Error()})
	}
	defer close1()
	src2, close2, err := openPart(c, "snapshot_2")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: err.Error()})
	}
	defer close2()

	report, err := h.uc.Run(c.UserContext(), appreconciliation.RunInput{Snapshot1: src1, Snapshot2: src2})
	if err != nil {
		return h.runError(c, err)
	}

	data, renderer, err := h.uc.Render(c.UserContext(), report, form.Format)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: err.Error()})
		}
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("renderizar reporte")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error al generar el reporte"})
	}

	c.Set(fiber.HeaderContentType, renderer.ContentType())
	if renderer.Format() == "pdf" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reconciliation_report.pdf"`)
	}
	return c.Status(fiber.StatusOK).Send(data)
}

// Formats godoc
// @Summary      Formatos de reporte disponibles
// @Tags         reconciliations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FormatsResponse
// @Router       /api/reconciliations/formats [get]
func (h *ReconciliationHandler) Formats(c *fiber.Ctx) error {
	return c.JSON(dto.FormatsResponse{Formats: h.uc.Formats()})
}

func (h *ReconciliationHandler) runError(c *fiber.Ctx, err error) error {
	if schema := domain.SchemaErrors(err); len(schema) > 0 {
		issues := []entity.DataQualityIssue{}
		for _, se := range schema {
			issues = append(issues, se.Issues...)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SchemaErrorResponse{
			Code:    "MISSING_COLUMNS",
			Message: err.Error(),
			Issues:  issues,
		})
	}
	if errors.Is(err, domain.ErrUnsupportedFormat) || errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("reconciliación")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error al reconciliar"})
}

// openPart abre la parte de archivo; el nombre original decide el formato.
func openPart(c *fiber.Ctx, field string) (appreconciliation.Source, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return appreconciliation.Source{}, nil, fmt.Errorf("falta el archivo %s", field)
	}
	f, err := fh.Open()
	if err != nil {
		return appreconciliation.Source{}, nil, fmt.Errorf("no se pudo leer %s", field)
	}
	return appreconciliation.Source{Path: fh.Filename, Content: f}, closer(f), nil
}

func closer(f multipart.File) func() { return func() { _ = f.Close() } }
