package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storepulse/backend/internal/http/middleware"
)

// GetDashboard godoc
// @Summary Week-over-week KPIs
// @Description Weeks start on Sunday. The current week runs up to and including the reference date.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param date query string false "reference date YYYY-MM-DD (default today)"
// @Success 200 {object} models.Dashboard
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ref := h.now()
	d, err := dateQuery(c, "date")
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	if d != nil {
		ref = d.Time
	}

	out, err := h.Dashboard.Get(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), ref)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
