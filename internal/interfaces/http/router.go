package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/report"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *ledger.RegisterMovementUseCase
	MovementQueries  *ledger.MovementQueryUseCase
	AuditUC          *audit.QueryUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CatalogUseCase[entity.Category, *entity.Category]
	LocationUC       *usecase.CatalogUseCase[entity.Location, *entity.Location]
	SupplierUC       *usecase.CatalogUseCase[entity.Supplier, *entity.Supplier]
	KardexUC         *report.KardexUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID())

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Kardex: movimientos de stock (protegido). El registro de movimientos
	// requiere rol operativo; las consultas están abiertas a cualquier rol.
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQueries)
	movements := protected.Group("/movements")
	movements.Post("/", RequireRole(entity.RoleAdmin, entity.RoleStaff), movementHandler.Register)
	movements.Get("/recent", movementHandler.ListRecent)
	movements.Get("/", movementHandler.ListByDateRange)
	movements.Get("/:id", movementHandler.GetByID)
	products.Get("/:id/movements", movementHandler.ListByProduct)
	products.Get("/:id/movements/stats", movementHandler.Stats)
	protected.Get("/users/:id/movements", movementHandler.ListByUser)

	// Reporte kardex en PDF (protegido)
	reportHandler := NewReportHandler(deps.KardexUC)
	products.Get("/:id/kardex.pdf", reportHandler.KardexPDF)

	// Audit trail (protegido: auditor o admin; la poda es solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup := protected.Group("/audit-logs", RequireRole(entity.RoleAdmin, entity.RoleAuditor))
	auditGroup.Get("/", auditHandler.Find)
	auditGroup.Get("/recent", auditHandler.Recent)
	auditGroup.Get("/stats", auditHandler.Stats)
	auditGroup.Get("/record/:table/:id", auditHandler.History)
	auditGroup.Get("/:id", auditHandler.GetByID)
	auditGroup.Patch("/:id/review", auditHandler.MarkReviewed)
	auditGroup.Delete("/", RequireRole(entity.RoleAdmin), auditHandler.Prune)

	// Catálogos (protegido)
	registerCatalog(protected.Group("/categories"), NewCategoryHandler(deps.CategoryUC))
	registerCatalog(protected.Group("/locations"), NewLocationHandler(deps.LocationUC))
	registerCatalog(protected.Group("/suppliers"), NewSupplierHandler(deps.SupplierUC))
}

// registerCatalog registra las cinco rutas CRUD de un catálogo.
func registerCatalog[T any, PT usecase.CatalogPtr[T], Req any, Resp any](g fiber.Router, h *CatalogHandler[T, PT, Req, Resp]) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
