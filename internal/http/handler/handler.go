package handler

import (
	"go.uber.org/zap"

	"carapi/internal/service"
)

// Options controls handler behaviour.
type Options struct {
	// ExposeErrors puts the underlying error text in 500 responses.
	ExposeErrors bool
	Logger       *zap.Logger
}

// Handler serves the cars API over a CarService.
type Handler struct {
	svc          service.CarService
	exposeErrors bool
	logger       *zap.Logger
}

// New constructs a Handler.
func New(svc service.CarService, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, exposeErrors: opts.ExposeErrors, logger: logger}
}
