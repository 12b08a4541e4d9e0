package http

import (
	"github.com/gofiber/fiber/v2"

	appreconciliation "github.com/jhoicas/Inventario-reconciler/internal/application/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/pkg/jwt"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReconciliationUC *appreconciliation.UseCase
	Logger           *logger.Logger
	JWTSecret        string // vacío = API sin autenticación (uso local)
}

// Router registra middlewares comunes y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestID(), RequestLogger(log))

	// Con secreto configurado todas las rutas /api requieren Bearer Token
	var guards []fiber.Handler
	if deps.JWTSecret != "" {
		guards = append(guards, AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin, jwt.RoleAuditor))
	}
	api := app.Group("/api", guards...)

	reconciliations := api.Group("/reconciliations")
	handler := NewReconciliationHandler(deps.ReconciliationUC, log)
	reconciliations.Post("/", handler.Create)
	reconciliations.Get("/formats", handler.Formats)
}
