package transfers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bucket-manager/core/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) Recent(ctx context.Context, limit int) ([]database.Transfer, error) {
	args := m.Called(ctx, limit)
	if transfers, ok := args.Get(0).([]database.Transfer); ok {
		return transfers, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupTestApp(l Lister) *fiber.App {
	app := fiber.New()
	NewHandler(l, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleRecent(t *testing.T) {
	t.Run("DefaultLimit", func(t *testing.T) {
		l := new(mockLister)
		l.On("Recent", mock.Anything, 50).Return([]database.Transfer{{ID: 1, Op: "upload", Path: "a.txt", Success: true}}, nil)

		resp, err := setupTestApp(l).Test(httptest.NewRequest("GET", "/transfers", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var transfers []database.Transfer
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&transfers))
		require.Len(t, transfers, 1)
		assert.Equal(t, "a.txt", transfers[0].Path)
	})

	t.Run("CapsLimit", func(t *testing.T) {
		l := new(mockLister)
		l.On("Recent", mock.Anything, maxLimit).Return([]database.Transfer{}, nil)

		resp, err := setupTestApp(l).Test(httptest.NewRequest("GET", "/transfers?limit=10000", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		l.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		l := new(mockLister)
		l.On("Recent", mock.Anything, 5).Return(nil, assert.AnError)

		resp, err := setupTestApp(l).Test(httptest.NewRequest("GET", "/transfers?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestFeature_IsEnabled(t *testing.T) {
	assert.False(t, NewFeature(nil, zap.NewNop()).IsEnabled())
	assert.True(t, NewFeature(new(mockLister), zap.NewNop()).IsEnabled())
}
