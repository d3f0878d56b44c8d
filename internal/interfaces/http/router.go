package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/store"
)

// RouterDeps dependencias para el router del panel.
type RouterDeps struct {
	Categories  *store.CategoryStore
	Products    *store.ProductStore
	Coordinator *store.CascadeDeleteCoordinator
	JWTSecret   string
	JWTIssuer   string
	JWTExpMin   int
}

// Router registra las rutas del panel.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, demo: valida solo no-vacío)
	authHandler := NewAuthHandler(deps.JWTSecret, deps.JWTIssuer, deps.JWTExpMin)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token local)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	categoryHandler := NewCategoryHandler(deps.Categories, deps.Coordinator)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Delete("/:id", categoryHandler.Delete)

	productHandler := NewProductHandler(deps.Products)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.Categories, deps.Products)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
