package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atokurn/financex-sub001/internal/application/auth"
	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/application/purchase"
	"github.com/atokurn/financex-sub001/internal/application/sale"
	"github.com/atokurn/financex-sub001/internal/application/usecase"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC *usecase.MaterialUseCase
	ProductUC  *usecase.ProductUseCase
	ExpenseUC  *usecase.ExpenseUseCase
	LedgerUC   *ledger.StockLedgerUseCase
	HistoryUC  *ledger.HistoryUseCase
	PurchaseUC *purchase.PurchaseUseCase
	SaleUC     *sale.SaleUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Products (protegido); export/import van antes de /:id para no colisionar
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.ExportCSV)
	products.Post("/import", productHandler.ImportCSV)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock: movimientos e historial (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.HistoryUC)
	stock.Post("/movements", stockHandler.ApplyMovement)
	stock.Get("/history", stockHandler.ListHistory)
	stock.Get("/history/export", stockHandler.ExportHistoryCSV)

	// Purchases (protegido); el borrado masivo con reverso de stock es solo admin
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/", RequireRole(entity.RoleAdmin), purchaseHandler.BulkDelete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)
}
