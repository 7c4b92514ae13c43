package transfers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	log     Lister
	handler *Handler
}

// NewFeature creates the transfers feature. It is disabled when log is nil.
func NewFeature(log Lister, logger *zap.Logger) *Feature {
	return &Feature{log: log, handler: NewHandler(log, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "transfers"
}

// IsEnabled reports whether a transfer log is available.
func (f *Feature) IsEnabled() bool {
	return f.log != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
