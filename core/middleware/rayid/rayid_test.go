package rayid_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"bucket-manager/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen = rayid.FromContext(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run("Generates", func(t *testing.T) {
		var seen string
		resp, err := setupApp(&seen).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		id := resp.Header.Get(rayid.Header)
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr)
		assert.Equal(t, id, seen)
	})

	t.Run("ReusesIncoming", func(t *testing.T) {
		var seen string
		upstream := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.Header, upstream)

		resp, err := setupApp(&seen).Test(req)
		require.NoError(t, err)
		assert.Equal(t, upstream, resp.Header.Get(rayid.Header))
		assert.Equal(t, upstream, seen)
	})

	t.Run("ReplacesInvalid", func(t *testing.T) {
		for _, incoming := range []string{"upstream-1", strings.Repeat("x", 200)} {
			var seen string
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(rayid.Header, incoming)

			resp, err := setupApp(&seen).Test(req)
			require.NoError(t, err)

			id := resp.Header.Get(rayid.Header)
			assert.NotEqual(t, incoming, id)
			_, parseErr := uuid.Parse(id)
			assert.NoError(t, parseErr)
			assert.LessOrEqual(t, len(id), 64)
			assert.Equal(t, id, seen)
		}
	})
}
