package api

import (
	"errors"
	"net/http"

	reqdto "maspatas/internal/handler/dto/request"
	resdto "maspatas/internal/handler/dto/response"
	"maspatas/internal/handler/middleware"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryCommands commands.InventoryCommands
	inventoryQueries  queries.InventoryQueries
}

func NewInventoryHandler(inventoryCommands commands.InventoryCommands, inventoryQueries queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{
		inventoryCommands: inventoryCommands,
		inventoryQueries:  inventoryQueries,
	}
}

// @Summary List stock levels
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StockResponse
// @Failure 401 {object} map[string]string
// @Router /inventory/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	views, err := h.inventoryQueries.ListStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockViews(views))
}

// @Summary List inventory movements
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param productId query string false "Filter by product ID"
// @Success 200 {array} resdto.MovementResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
			return
		}
		productID = &id
	}

	views, err := h.inventoryQueries.ListMovements(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovementViews(views))
}

// @Summary Adjust stock
// @Description Record a manual stock movement outside the sales flow.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdjustStockRequest true "Adjustment request"
// @Success 200 {object} resdto.AdjustStockResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	balance, err := h.inventoryCommands.AdjustStock(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
		case errors.Is(err, commands.ErrInvalidMovement):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AdjustStockResponse{
		ProductID: req.ProductID,
		Balance:   balance,
	})
}
