package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"carapi/internal/http/middleware"
)

const internalErrorMessage = "internal server error"

// errorPayload is the error response body.
type errorPayload struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a JSON error response.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// internalError logs err and writes a 500. The message is the engine/transport error text
// unless error exposure is turned off.
func (h *Handler) internalError(c *fiber.Ctx, err error) error {
	h.logError(c, err)
	return writeError(c, fiber.StatusInternalServerError, h.errorMessage(err))
}

func (h *Handler) logError(c *fiber.Ctx, err error) {
	h.logger.Error("request failed",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
}

func (h *Handler) errorMessage(err error) string {
	if h.exposeErrors {
		return err.Error()
	}
	return internalErrorMessage
}

// ErrorHandler returns a Fiber global error handler that renders routing and unhandled
// errors in the same shape as handler errors.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "request body too large")
		default:
			return writeError(c, status, internalErrorMessage)
		}
	}
}
