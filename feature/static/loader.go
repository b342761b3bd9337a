package static

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the static responder into the app.
type Feature struct {
	handler *Handler
}

// NewFeature creates the static feature for source.
func NewFeature(source Source, cfg Config, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(source, cfg, logger))}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled reports whether the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the catch-all route. It must be loaded after any other
// feature routes since it matches every path.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
