package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/auth"
	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/application/inventory"
	"github.com/soportek/almacen-api/internal/application/purchase"
	"github.com/soportek/almacen-api/internal/application/usecase"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	RoleUC          *auth.RoleUseCase
	CompanyUC       *usecase.CompanyUseCase
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	BrandUC         *usecase.BrandUseCase
	TaxUC           *usecase.TaxUseCase
	UnitUC          *usecase.MeasurementUnitUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	ProviderUC      *usecase.ProviderUseCase
	ClientUC        *usecase.ClientUseCase
	ReceptionUC     *inventory.ReceptionUseCase
	WithdrawalUC    *inventory.WithdrawalUseCase
	AdjustmentUC    *inventory.AdjustmentUseCase
	ReconcileUC     *inventory.ReconcileUseCase
	HistoryUC       *inventory.HistoryUseCase
	PurchaseOrderUC *purchase.PurchaseOrderUseCase
	InvoiceUC       *billing.InvoiceUseCase
	CashRegisterUC  *billing.CashRegisterUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: creación pública (alta de tenant); consulta protegida
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), companyHandler.List)
	companies.Get("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Profile)

	// Roles y permisos (solo admin)
	adminOnly := RequireRole(entity.RoleAdmin)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := protected.Group("/roles", adminOnly)
	roles.Post("/", roleHandler.CreateRole)
	roles.Get("/", roleHandler.ListRoles)
	roles.Post("/:id/permissions", roleHandler.AssignPermission)
	roles.Get("/:id/permissions", roleHandler.ListRolePermissions)
	roles.Delete("/:id/permissions/:permission_id", roleHandler.RevokePermission)
	protected.Get("/permissions", adminOnly, roleHandler.ListPermissions)

	// Catálogo de productos
	productHandler := NewProductHandler(deps.ProductUC, deps.HistoryUC, deps.ReconcileUC)
	products := protected.Group("/products")
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/stock", productHandler.ListStock)
	products.Get("/:id/history", productHandler.History)
	products.Post("/:id/reconcile", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Reconcile)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	brandHandler := NewBrandHandler(deps.BrandUC)
	brands := protected.Group("/brands")
	brands.Post("/", brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", adminOnly, brandHandler.Delete)

	taxHandler := NewTaxHandler(deps.TaxUC)
	taxes := protected.Group("/taxes")
	taxes.Post("/", adminOnly, taxHandler.Create)
	taxes.Get("/", taxHandler.List)
	taxes.Get("/:id", taxHandler.GetByID)
	taxes.Post("/:id/activate", adminOnly, taxHandler.Activate)
	taxes.Post("/:id/deactivate", adminOnly, taxHandler.Deactivate)
	taxes.Delete("/:id", adminOnly, taxHandler.Delete)

	unitHandler := NewMeasurementUnitHandler(deps.UnitUC)
	protected.Get("/measurement-units", unitHandler.List)

	// Bodegas
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Terceros
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers := protected.Group("/providers")
	providers.Post("/", providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", providerHandler.Update)
	providers.Delete("/:id", adminOnly, providerHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients")
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	// Movimientos de inventario (admin y bodeguero)
	inventoryWriter := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	receptionHandler := NewReceptionHandler(deps.ReceptionUC)
	receptions := protected.Group("/receptions")
	receptions.Post("/", inventoryWriter, receptionHandler.Create)
	receptions.Get("/", receptionHandler.List)
	receptions.Get("/:id", receptionHandler.GetByID)
	receptions.Post("/:id/void", inventoryWriter, receptionHandler.Void)

	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalUC)
	withdrawals := protected.Group("/withdrawals")
	withdrawals.Post("/", inventoryWriter, withdrawalHandler.Create)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Get("/:id", withdrawalHandler.GetByID)
	withdrawals.Post("/:id/void", inventoryWriter, withdrawalHandler.Void)

	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments := protected.Group("/adjustments")
	adjustments.Post("/", inventoryWriter, adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/void", inventoryWriter, adjustmentHandler.Void)

	// Órdenes de compra
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrders.Post("/", inventoryWriter, poHandler.Create)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Post("/:id/approve", adminOnly, poHandler.Approve)
	purchaseOrders.Post("/:id/reject", adminOnly, poHandler.Reject)
	purchaseOrders.Post("/:id/cancel", adminOnly, poHandler.Cancel)

	// Facturación y caja (admin y vendedor)
	billingWriter := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := protected.Group("/invoices")
	invoices.Post("/", billingWriter, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	cashHandler := NewCashRegisterHandler(deps.CashRegisterUC)
	cashRegisters := protected.Group("/cash-registers")
	cashRegisters.Post("/", billingWriter, cashHandler.Open)
	cashRegisters.Get("/", cashHandler.List)
	cashRegisters.Get("/:id", cashHandler.GetByID)
	cashRegisters.Post("/:id/close", billingWriter, cashHandler.Close)
	cashRegisters.Post("/:id/transactions", billingWriter, cashHandler.RegisterTransaction)
	cashRegisters.Get("/:id/transactions", cashHandler.ListTransactions)
}
