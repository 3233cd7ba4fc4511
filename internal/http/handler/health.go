package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// CreateIndex godoc
// @Summary Create the cars index
// @Description Creates the index with its fixed mapping. Reports "Index already exists" when present.
// @Tags index
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} errorPayload
// @Router /opensearch/create-index [post]
func (h *Handler) CreateIndex(c *fiber.Ctx) error {
	res, err := h.svc.CreateIndex(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Index created successfully",
		"result":  res,
	})
}

// IndexHealth godoc
// @Summary Search engine and index status
// @Tags index
// @Produce json
// @Success 200 {object} service.HealthStatus
// @Failure 500 {object} map[string]any
// @Router /opensearch/health [get]
func (h *Handler) IndexHealth(c *fiber.Ctx) error {
	res, err := h.svc.Health(c.UserContext())
	if err != nil {
		h.logError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  h.errorMessage(err),
		})
	}
	return c.JSON(res)
}

// Health checks search engine connectivity only.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()
	if err := h.svc.Ping(ctx); err != nil {
		h.logError(c, err)
		return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
}

// Liveness is a dependency-free liveness probe.
func (h *Handler) Liveness(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}
