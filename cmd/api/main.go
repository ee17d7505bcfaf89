package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/report"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/Kardex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos sobre el pool (lecturas fuera de tx) y runner transaccional.
	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Kardex
	registerMovementUC := ledger.NewRegisterMovementUseCase(txRunner, nil)
	movementQueriesUC := ledger.NewMovementQueryUseCase(repos.Movements)

	// Audit trail
	auditUC := audit.NewQueryUseCase(repos.AuditLogs, txRunner, nil)

	// Productos y catálogos
	productUC := usecase.NewProductUseCase(repos.Products, txRunner, nil)
	categoryUC := usecase.NewCatalogUseCase[entity.Category, *entity.Category](
		repos.Categories, func(r repository.Repos) repository.Crud[entity.Category] { return r.Categories },
		txRunner, nil,
	)
	locationUC := usecase.NewCatalogUseCase[entity.Location, *entity.Location](
		repos.Locations, func(r repository.Repos) repository.Crud[entity.Location] { return r.Locations },
		txRunner, nil,
	)
	supplierUC := usecase.NewCatalogUseCase[entity.Supplier, *entity.Supplier](
		repos.Suppliers, func(r repository.Repos) repository.Crud[entity.Supplier] { return r.Suppliers },
		txRunner, nil,
	)

	// Reporte kardex en PDF
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	kardexUC := report.NewKardexUseCase(repos.Products, repos.Movements, pdfGenerator, nil)

	// Auth
	authUC := auth.NewAuthUseCase(repos.Users, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		MovementQueries:  movementQueriesUC,
		AuditUC:          auditUC,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		LocationUC:       locationUC,
		SupplierUC:       supplierUC,
		KardexUC:         kardexUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
