package http

import (
	"github.com/gaigek/mrp-system/internal/application/ingest"
	"github.com/gaigek/mrp-system/internal/application/usecase"
	"github.com/gaigek/mrp-system/internal/application/worklist"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestUC    *ingest.UseCase
	ItemUC      *usecase.ItemUseCase
	RecommendUC *usecase.RecommendUseCase
	WorklistUC  *worklist.UseCase
	DashboardUC *usecase.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ingesta del snapshot MRP
	mrp := api.Group("/mrp")
	mrpHandler := NewMRPHandler(deps.IngestUC)
	mrp.Post("/ingest", mrpHandler.Ingest)

	// Artículos: listado, detalle, recomendaciones y recepción de POs
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.RecommendUC, deps.WorklistUC)
	items.Get("/", itemHandler.List)
	items.Get("/:code", itemHandler.Detail)
	items.Post("/:code/recommendations", itemHandler.Recommend)
	items.Post("/:code/receive", itemHandler.Receive)

	// Worklist de órdenes planificadas
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.WorklistUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
