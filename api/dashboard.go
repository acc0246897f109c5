package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats godoc
// @Summary      Monthly dashboard
// @Description  Income, expenses, balance and budget progress; defaults to the current month
// @Tags         dashboard
// @Produce      json
// @Security     ApiKeyAuth
// @Param        month  query     int  false  "Month (1-12)"
// @Param        year   query     int  false  "Year"
// @Success      200    {object}  models.DashboardStats
// @Failure      400    {object}  models.ErrorResponse
// @Failure      500    {object}  models.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *Handler) GetDashboardStats(c *gin.Context) {
	month, ok := queryMonth(c)
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	now := h.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	stats, err := h.storage.GetDashboardStats(c.Request.Context(), month, year)
	if err != nil {
		h.storeError(c, err, "", "Failed to fetch dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
