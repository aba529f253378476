package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "maspatas/internal/handler/dto/request"
	resdto "maspatas/internal/handler/dto/response"
	"maspatas/internal/handler/middleware"
	"maspatas/internal/infra"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleCommands commands.SaleCommands
	saleQueries  queries.SaleQueries
}

func NewSaleHandler(saleCommands commands.SaleCommands, saleQueries queries.SaleQueries) *SaleHandler {
	return &SaleHandler{
		saleCommands: saleCommands,
		saleQueries:  saleQueries,
	}
}

// @Summary Record a sale
// @Description Record a new pending sale; stock is reserved immediately. Safe to retry with the same requestId.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SellRequest true "Sale request"
// @Success 200 {object} resdto.SaleResponse "Replay of a completed request"
// @Success 201 {object} resdto.SaleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sales/sell [post]
func (h *SaleHandler) Sell(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.SellRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.saleCommands.Sell(c.Request.Context(), req.ToInput(), userID, req.RequestID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromSaleView(result.Sale))
}

// @Summary Pay a sale
// @Description Transition a pending sale to Paid. The amount must match the sale total exactly.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param request body reqdto.PayRequest true "Payment request"
// @Success 200 {object} resdto.SaleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sales/{id}/pay [post]
func (h *SaleHandler) Pay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID format"})
		return
	}

	var req reqdto.PayRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.saleCommands.Pay(c.Request.Context(), saleID, req.ToInput(), userID, req.RequestID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSaleView(result.Sale))
}

// @Summary Cancel a sale
// @Description Transition a pending sale to Cancelled and restore its stock.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param request body reqdto.CancelRequest true "Cancel request"
// @Success 200 {object} resdto.SaleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID format"})
		return
	}

	var req reqdto.CancelRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.saleCommands.Cancel(c.Request.Context(), saleID, userID, req.RequestID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSaleView(result.Sale))
}

// @Summary List sales
// @Description List all sales, newest first.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SaleResponse
// @Failure 401 {object} map[string]string
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	views, err := h.saleQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSaleViews(views))
}

// @Summary Get sale
// @Description Get one sale by ID.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} resdto.SaleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID format"})
		return
	}

	view, err := h.saleQueries.GetByID(c.Request.Context(), saleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		slog.Error("Failed to get sale", "sale_id", saleID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSaleView(view))
}

func (h *SaleHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
	case errors.Is(err, commands.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, commands.ErrProductInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Product is inactive"})
	case errors.Is(err, commands.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, commands.ErrSaleAlreadyFinal):
		c.JSON(http.StatusConflict, gin.H{"error": "Sale is already paid or cancelled"})
	case errors.Is(err, commands.ErrAmountMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Payment amount does not match sale total"})
	case errors.Is(err, commands.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
	case errors.Is(err, commands.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "Request ID reused with a different payload"})
	case errors.Is(err, commands.ErrRequestInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Request is currently being processed"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
