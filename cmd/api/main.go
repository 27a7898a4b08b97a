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

	"github.com/tu-usuario/factura-rd/internal/application/auth"
	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/application/inventory"
	"github.com/tu-usuario/factura-rd/internal/application/purchasing"
	"github.com/tu-usuario/factura-rd/internal/application/reports"
	"github.com/tu-usuario/factura-rd/internal/application/usecase"
	infrapdf "github.com/tu-usuario/factura-rd/internal/infrastructure/pdf"
	"github.com/tu-usuario/factura-rd/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/factura-rd/internal/interfaces/http"
	"github.com/tu-usuario/factura-rd/pkg/config"
	"github.com/tu-usuario/factura-rd/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	ncfRepo := postgres.NewNCFSequenceRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)

	allocator := billing.NewNCFAllocator(ncfRepo, billing.AllocatorConfig{
		LowSupplyThreshold: cfg.NCF.LowSupplyThreshold,
		MaxRetries:         cfg.NCF.MaxRetries,
	})
	ncfAdminUC := billing.NewNCFAdminUseCase(ncfRepo, allocator)

	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, registerMovementUC, allocator,
		customerRepo, productRepo, warehouseRepo, invoiceRepo,
	)
	paymentUC := billing.NewPaymentUseCase(txRunner, invoiceRepo, customerRepo)
	voidInvoiceUC := billing.NewVoidInvoiceUseCase(txRunner, registerMovementUC, invoiceRepo, customerRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	purchasingUC := purchasing.NewUseCase(supplierRepo, purchaseRepo)

	// Los períodos DGII cortan en hora de Santo Domingo.
	loc, err := time.LoadLocation("America/Santo_Domingo")
	if err != nil {
		log.Warn().Err(err).Msg("zona horaria America/Santo_Domingo no disponible, usando UTC")
		loc = time.UTC
	}
	reportsUC := reports.NewUseCase(companyRepo, invoiceRepo, purchaseRepo, customerRepo, supplierRepo, loc)

	// PDF: representación impresa de la factura con su NCF
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, companyRepo, customerRepo, productRepo, pdfGenerator,
	)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Factura RD API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		WarehouseUC:      warehouseUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		CustomerUC:       customerUC,
		CreateInvoice:    createInvoiceUC,
		PaymentUC:        paymentUC,
		VoidInvoice:      voidInvoiceUC,
		PDFUC:            invoicePDFUC,
		NCFAdminUC:       ncfAdminUC,
		PurchasingUC:     purchasingUC,
		ReportsUC:        reportsUC,
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
