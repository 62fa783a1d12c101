package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookstore/internal/seed"
)

// SeedHandler exposes the sample-data bootstrap over HTTP for fresh
// deployments.
type SeedHandler struct {
	seeder *seed.Seeder
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// SeedCatalog godoc
// @Summary Load sample users, categories and books into an empty database
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/catalog [get]
func (h *SeedHandler) SeedCatalog(c echo.Context) error {
	applied, err := h.seeder.Apply(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "database already seeded"
	if applied {
		message = "sample data loaded"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"applied": applied,
	})
}
