package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-rd/internal/application/auth"
	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/application/inventory"
	"github.com/tu-usuario/factura-rd/internal/application/purchasing"
	"github.com/tu-usuario/factura-rd/internal/application/reports"
	"github.com/tu-usuario/factura-rd/internal/application/usecase"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	CustomerUC       *billing.CustomerUseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	PaymentUC        *billing.PaymentUseCase
	VoidInvoice      *billing.VoidInvoiceUseCase
	PDFUC            *billing.PDFUseCase
	NCFAdminUC       *billing.NCFAdminUseCase
	PurchasingUC     *purchasing.UseCase
	ReportsUC        *reports.UseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)

	// Customers (protegido, facturación)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.PaymentUC, deps.VoidInvoice, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/payments", invoiceHandler.RegisterPayment)
	invoices.Post("/:id/overdue", invoiceHandler.MarkOverdue)
	invoices.Post("/:id/void", invoiceHandler.Void)

	// Secuencias NCF (protegido; mutaciones solo admin)
	ncfHandler := NewNCFHandler(deps.NCFAdminUC)
	ncfSequences := protected.Group("/ncf-sequences")
	ncfSequences.Get("/", ncfHandler.ListSequences)
	ncfSequences.Post("/", RequireRole(entity.RoleAdmin), ncfHandler.CreateSequence)
	ncfSequences.Post("/:id/deactivate", RequireRole(entity.RoleAdmin), ncfHandler.DeactivateSequence)
	protected.Get("/ncf/:type/preview", ncfHandler.Preview)

	// Compras y proveedores (protegido)
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", purchasingHandler.CreateSupplier)
	suppliers.Get("/", purchasingHandler.ListSuppliers)
	protected.Post("/purchases", purchasingHandler.CreatePurchase)

	// Reportes DGII (protegido; solo admin genera los envíos)
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportsGroup.Get("/606", reportHandler.Download606)
	reportsGroup.Get("/607", reportHandler.Download607)
	reportsGroup.Get("/608", reportHandler.Download608)
}
