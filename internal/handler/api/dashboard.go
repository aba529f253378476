package api

import (
	"net/http"

	resdto "maspatas/internal/handler/dto/response"
	"maspatas/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	saleQueries queries.SaleQueries
}

func NewDashboardHandler(saleQueries queries.SaleQueries) *DashboardHandler {
	return &DashboardHandler{saleQueries: saleQueries}
}

// @Summary Ledger summary
// @Description Aggregate figures for the dashboard cards. Revenue excludes cancelled sales.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LedgerSummaryResponse
// @Failure 401 {object} map[string]string
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.saleQueries.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerSummary(summary))
}
