package handler

import (
	"github.com/gofiber/fiber/v2"
)

// APIPrefixes are the mount points of the cars API. /api is kept for existing clients.
var APIPrefixes = []string{"/api", "/api/v1"}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)
	app.Get("/healthz", h.Liveness)

	for _, prefix := range APIPrefixes {
		api := app.Group(prefix)

		api.Get("/cars", h.ListCars)
		api.Post("/cars", h.CreateCar)
		api.Get("/cars/:id", h.GetCar)
		api.Delete("/cars/:id", h.DeleteCar)

		api.Post("/opensearch/create-index", h.CreateIndex)
		api.Get("/opensearch/health", h.IndexHealth)
	}
}
