package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"carapi/internal/model"
	"carapi/internal/service"
)

const carNotFoundMessage = "Car not found"

// ListCars godoc
// @Summary List cars
// @Description Returns a page of cars, optionally filtered by a free-text search over make, model and description.
// @Tags cars
// @Produce json
// @Param search query string false "Free-text search"
// @Param size query int false "Page size" default(10)
// @Param from query int false "Offset" default(0)
// @Success 200 {object} service.CarListResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /cars [get]
func (h *Handler) ListCars(c *fiber.Ctx) error {
	size, err := queryInt(c, "size", service.DefaultPageSize)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "size must be an integer")
	}
	from, err := queryInt(c, "from", 0)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "from must be an integer")
	}

	res, err := h.svc.List(c.UserContext(), service.ListQuery{
		Search: c.Query("search"),
		Size:   size,
		From:   from,
	})
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(res)
}

// CreateCar godoc
// @Summary Create a car
// @Description Validates the payload, stamps created_at and indexes the car. The engine assigns the id.
// @Tags cars
// @Accept json
// @Produce json
// @Param car body model.CarInput true "Car"
// @Success 201 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /cars [post]
func (h *Handler) CreateCar(c *fiber.Ctx) error {
	res, err := h.svc.Create(c.UserContext(), c.Body())
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return writeError(c, fiber.StatusBadRequest, ve.Message)
		}
		return h.internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Car indexed successfully",
		"id":      res.ID,
		"car":     res.Car,
	})
}

// GetCar godoc
// @Summary Get a car
// @Tags cars
// @Produce json
// @Param id path string true "Car id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /cars/{id} [get]
func (h *Handler) GetCar(c *fiber.Ctx) error {
	id := c.Params("id")
	car, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "car": car})
}

// DeleteCar godoc
// @Summary Delete a car
// @Tags cars
// @Produce json
// @Param id path string true "Car id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /cars/{id} [delete]
func (h *Handler) DeleteCar(c *fiber.Ctx) error {
	res, err := h.svc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Car deleted successfully",
		"result":  res,
	})
}

func (h *Handler) lookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, carNotFoundMessage)
	default:
		return h.internalError(c, err)
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
