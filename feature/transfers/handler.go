package transfers

import (
	"context"

	"bucket-manager/core/database"
	"bucket-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Lister returns the most recent transfers.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]database.Transfer, error)
}

const maxLimit = 500

// Handler handles HTTP requests for the transfer log.
type Handler struct {
	log    Lister
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(log Lister, logger *zap.Logger) *Handler {
	return &Handler{log: log, logger: logger}
}

// RegisterRoutes registers the transfer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/transfers", h.HandleRecent)
}

// HandleRecent lists recent uploads, imports and deletes.
// @Summary Recent Transfers
// @Description Lists the newest entries of the transfer log, including failed operations.
// @Tags transfers
// @Produce json
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {array} database.Transfer
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfers [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > maxLimit {
		limit = maxLimit
	}

	transfers, err := h.log.Recent(c.UserContext(), limit)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list transfers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(transfers)
}
