package scope

import (
	"bucket-manager/core/logger"
	"bucket-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const repositoryKey = "storage_repository"

// New returns a middleware that opens one storage repository per request.
// The repository shares the registration's client and logs with the request's ray id.
// It must be registered after the rayid middleware.
func New(reg *storage.Registration, l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		repo := reg.Repository(storage.WithLogger(logger.WithRayID(l, c)))
		c.Locals(repositoryKey, repo)
		return c.Next()
	}
}

// Repository returns the request's repository, or nil when the middleware is not installed.
func Repository(c *fiber.Ctx) *storage.Repository {
	repo, _ := c.Locals(repositoryKey).(*storage.Repository)
	return repo
}
