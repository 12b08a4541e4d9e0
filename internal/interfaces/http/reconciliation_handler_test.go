package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-reconciler/internal/application/dto"
	appreconciliation "github.com/jhoicas/Inventario-reconciler/internal/application/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/report"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/snapshot"
	apphttp "github.com/jhoicas/Inventario-reconciler/internal/interfaces/http"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
	pkgjwt "github.com/jhoicas/Inventario-reconciler/pkg/jwt"
)

const (
	snap1 = "sku,name,quantity,location,last_counted\n" +
		"SKU-001,Widget,100,Warehouse A,2024-01-10\n" +
		"SKU-002,Gadget,50,Warehouse A,2024-01-10\n"
	snap2 = "sku,product_name,qty,warehouse,last_counted\n" +
		"SKU-001,Widget,95,Warehouse A,2024-01-15\n" +
		"SKU-003,Gizmo,7,Warehouse B,2024-01-15\n"
)

func buildAPI(jwtSecret string) *fiber.App {
	uc := appreconciliation.NewUseCase(
		snapshot.NewLoader(snapshot.Options{}, logger.Nop()),
		logger.Nop(),
		report.NewJSONRenderer(),
		report.NewXMLRenderer(false),
		pdf.NewMarotoReportRenderer(),
	).WithClock(func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{ReconciliationUC: uc, Logger: logger.Nop(), JWTSecret: jwtSecret})
	return app
}

// multipartRequest arma un POST con las partes indicadas (nombre → contenido).
func multipartRequest(t *testing.T, files map[string][2]string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/reconciliations", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func bothSnapshots() map[string][2]string {
	return map[string][2]string{
		"snapshot_1": {"snapshot_1.csv", snap1},
		"snapshot_2": {"snapshot_2.csv", snap2},
	}
}

func TestReconcile_JSON(t *testing.T) {
	resp, err := buildAPI("").Test(multipartRequest(t, bothSnapshots(), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	_, err = uuid.Parse(resp.Header.Get(apphttp.HeaderRequestID))
	assert.NoError(t, err, "cada respuesta lleva un X-Request-ID")

	var rep entity.ReconciliationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "snapshot_1.csv", rep.Metadata.Snapshot1Path)
	assert.Equal(t, 1, rep.Summary.QuantityChanged)
	assert.Equal(t, 1, rep.Summary.Added)
	assert.Equal(t, 1, rep.Summary.Removed)
	assert.Equal(t, 3, rep.Summary.QualityIssuesBySeverity["info"], "product_name, qty y warehouse renombradas")
}

func TestReconcile_XMLyPDF(t *testing.T) {
	app := buildAPI("")

	resp, err := app.Test(multipartRequest(t, bothSnapshots(), map[string]string{"format": "xml"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	resp.Body.Close()

	resp, err = app.Test(multipartRequest(t, bothSnapshots(), map[string]string{"format": "pdf"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reconciliation_report.pdf")
	resp.Body.Close()
}

func TestReconcile_FormatoInvalido(t *testing.T) {
	resp, err := buildAPI("").Test(multipartRequest(t, bothSnapshots(), map[string]string{"format": "yaml"}), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReconcile_FaltaArchivo(t *testing.T) {
	files := map[string][2]string{"snapshot_1": {"snapshot_1.csv", snap1}}
	resp, err := buildAPI("").Test(multipartRequest(t, files, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_FILE", body.Code)
}

func TestReconcile_ColumnasFaltantes_Retorna422(t *testing.T) {
	files := bothSnapshots()
	files["snapshot_2"] = [2]string{"snapshot_2.csv", "sku,name\nSKU-001,Widget\n"}

	resp, err := buildAPI("").Test(multipartRequest(t, files, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body dto.SchemaErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_COLUMNS", body.Code)
	assert.Len(t, body.Issues, 3, "quantity, location y last_counted")
	for _, i := range body.Issues {
		assert.Equal(t, entity.SourceSnapshot2, i.SourceFile)
	}
}

func TestReconcile_ExtensionNoSoportada(t *testing.T) {
	files := bothSnapshots()
	files["snapshot_1"] = [2]string{"snapshot_1.json", "{}"}

	resp, err := buildAPI("").Test(multipartRequest(t, files, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReconcile_ConJWT(t *testing.T) {
	app := buildAPI(testJWTSecret)

	resp, err := app.Test(multipartRequest(t, bothSnapshots(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req := multipartRequest(t, bothSnapshots(), nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleAuditor))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req = multipartRequest(t, bothSnapshots(), nil)
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestFormats(t *testing.T) {
	resp, err := buildAPI("").Test(httptest.NewRequest(http.MethodGet, "/api/reconciliations/formats", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.FormatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"json", "pdf", "xml"}, body.Formats)
}

func TestRequestID_RespetaEncabezadoValido(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/reconciliations/formats", nil)
	req.Header.Set(apphttp.HeaderRequestID, id)

	resp, err := buildAPI("").Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(apphttp.HeaderRequestID))
}
