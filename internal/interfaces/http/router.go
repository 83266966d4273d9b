package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/analytics"
	"github.com/daemlu/convivencia-api/internal/application/auth"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
	"github.com/daemlu/convivencia-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	EstablecimientoUC *usecase.EstablecimientoUseCase
	ProtocoloUC       *usecase.ProtocoloUseCase
	ActivacionUC      *usecase.ActivacionUseCase
	DECUC             *usecase.DECUseCase
	PDFUC             *usecase.PDFUseCase
	UserUC            *usecase.UserUseCase
	DashboardUC       *analytics.DashboardUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
//
// Toda ruta fuera de /api/auth exige Bearer Token. La escritura sobre
// establecimientos, catálogo de protocolos y usuarios es solo-admin; DEC y
// activaciones quedan scoped por establecimiento dentro del use case.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(domain.RoleAdmin)

	// Establecimientos: lectura autenticada, escritura solo admin
	establecimientos := protected.Group("/establecimientos")
	establecimientoHandler := NewEstablecimientoHandler(deps.EstablecimientoUC)
	establecimientos.Get("/", establecimientoHandler.List)
	establecimientos.Get("/:id", establecimientoHandler.GetByID)
	establecimientos.Post("/", soloAdmin, establecimientoHandler.Create)
	establecimientos.Put("/:id", soloAdmin, establecimientoHandler.Update)
	establecimientos.Delete("/:id", soloAdmin, establecimientoHandler.Delete)

	// Catálogo de protocolos: lectura autenticada, escritura solo admin
	protocolos := protected.Group("/protocolos")
	protocoloHandler := NewProtocoloHandler(deps.ProtocoloUC)
	protocolos.Get("/", protocoloHandler.List)
	protocolos.Get("/:id", protocoloHandler.GetByID)
	protocolos.Post("/", soloAdmin, protocoloHandler.Create)
	protocolos.Put("/:id", soloAdmin, protocoloHandler.Update)
	protocolos.Delete("/:id", soloAdmin, protocoloHandler.Delete)

	// Activaciones de protocolo (scoped por establecimiento)
	activaciones := protected.Group("/activaciones")
	activacionHandler := NewActivacionHandler(deps.ActivacionUC)
	activaciones.Post("/", activacionHandler.Create)
	activaciones.Get("/", activacionHandler.List)
	activaciones.Get("/:id", activacionHandler.GetByID)
	activaciones.Put("/:id", activacionHandler.Update)
	activaciones.Delete("/:id", activacionHandler.Delete)

	// Registros DEC (scoped por establecimiento) + documento imprimible
	dec := protected.Group("/dec")
	decHandler := NewDECHandler(deps.DECUC, deps.PDFUC)
	dec.Post("/", decHandler.Create)
	dec.Get("/", decHandler.List)
	dec.Get("/:id", decHandler.GetByID)
	dec.Get("/:id/pdf", decHandler.DownloadPDF)
	dec.Put("/:id", decHandler.Update)
	dec.Delete("/:id", decHandler.Delete)

	// Usuarios: vía privilegiada, solo admin
	users := protected.Group("/users", soloAdmin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
