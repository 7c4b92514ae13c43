package rayid

import (
	"context"

	"bucket-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray id on requests and responses.
const Header = "X-Ray-ID"

type contextKey struct{}

// New returns a middleware assigning every request a ray id. An incoming
// X-Ray-ID header is reused when it is a UUID so callers can correlate
// across services; anything else is replaced with a fresh id.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if parsed, err := uuid.Parse(id); err == nil {
			id = parsed.String()
		} else {
			id = uuid.NewString()
		}

		c.Locals(logger.RayIDKey, id)
		c.SetUserContext(NewContext(c.UserContext(), id))
		c.Set(Header, id)

		return c.Next()
	}
}

// NewContext returns ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the ray id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
