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

	"github.com/soportek/almacen-api/internal/application/auth"
	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/application/inventory"
	"github.com/soportek/almacen-api/internal/application/purchase"
	"github.com/soportek/almacen-api/internal/application/usecase"
	infrapdf "github.com/soportek/almacen-api/internal/infrastructure/pdf"
	"github.com/soportek/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/soportek/almacen-api/internal/interfaces/http"
	"github.com/soportek/almacen-api/pkg/config"
	"github.com/soportek/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repositorios sobre el pool (fuera de transacción)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	unitRepo := postgres.NewMeasurementUnitRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	historyRepo := postgres.NewProductHistoryRepository(pool)
	receptionRepo := postgres.NewReceptionRepository(pool)
	withdrawalRepo := postgres.NewWithdrawalRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	cashRegisterRepo := postgres.NewCashRegisterRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	billingTxRunner := postgres.NewBillingTxRunner(pool)

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, companyRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	roleUC := auth.NewRoleUseCase(roleRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, stockRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo)
	taxUC := usecase.NewTaxUseCase(taxRepo)
	unitUC := usecase.NewMeasurementUnitUseCase(unitRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	providerUC := usecase.NewProviderUseCase(providerRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)

	receptionUC := inventory.NewReceptionUseCase(txRunner, receptionRepo, productRepo, providerRepo, warehouseRepo, poRepo)
	withdrawalUC := inventory.NewWithdrawalUseCase(txRunner, withdrawalRepo, productRepo, warehouseRepo)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, adjustmentRepo, productRepo, warehouseRepo)
	reconcileUC := inventory.NewReconcileUseCase(txRunner, historyRepo, productRepo)
	historyUC := inventory.NewHistoryUseCase(historyRepo, productRepo)

	purchaseOrderUC := purchase.NewPurchaseOrderUseCase(poRepo, providerRepo, productRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoiceUC := billing.NewInvoiceUseCase(
		billingTxRunner, invoiceRepo, clientRepo, productRepo,
		taxRepo, withdrawalRepo, companyRepo, pdfGenerator,
	)
	cashRegisterUC := billing.NewCashRegisterUseCase(billingTxRunner, cashRegisterRepo)

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		RoleUC:          roleUC,
		CompanyUC:       companyUC,
		ProductUC:       productUC,
		CategoryUC:      categoryUC,
		BrandUC:         brandUC,
		TaxUC:           taxUC,
		UnitUC:          unitUC,
		WarehouseUC:     warehouseUC,
		ProviderUC:      providerUC,
		ClientUC:        clientUC,
		ReceptionUC:     receptionUC,
		WithdrawalUC:    withdrawalUC,
		AdjustmentUC:    adjustmentUC,
		ReconcileUC:     reconcileUC,
		HistoryUC:       historyUC,
		PurchaseOrderUC: purchaseOrderUC,
		InvoiceUC:       invoiceUC,
		CashRegisterUC:  cashRegisterUC,
		JWTSecret:       cfg.JWT.Secret,
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
