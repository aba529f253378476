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

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ProductResponse
// @Failure 401 {object} map[string]string
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.catalogQueries.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Product request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.catalogCommands.CreateProduct(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateSKU):
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary List customers
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CustomerResponse
// @Failure 401 {object} map[string]string
// @Router /customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	views, err := h.catalogQueries.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCustomerViews(views))
}

// @Summary Create customer
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCustomerRequest true "Customer request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /customers [post]
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req reqdto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.catalogCommands.CreateCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		h.writeCustomerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update customer
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body reqdto.UpdateCustomerRequest true "Customer request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customers/{id} [put]
func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	var req reqdto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogCommands.UpdateCustomer(c.Request.Context(), req.ToInput(id)); err != nil {
		h.writeCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id.String()})
}

// @Summary Delete customer
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customers/{id} [delete]
func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	if err := h.catalogCommands.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.writeCustomerError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) writeCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	case errors.Is(err, commands.ErrDuplicateCustomer):
		c.JSON(http.StatusConflict, gin.H{"error": "Customer email already exists"})
	case errors.Is(err, commands.ErrCustomerInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Customer has sales and cannot be deleted"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
