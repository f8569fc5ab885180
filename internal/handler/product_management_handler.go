package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// ProductManagementHandler handles admin product CRUD.
type ProductManagementHandler struct {
	catalogService *service.CatalogService
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(catalogService *service.CatalogService) *ProductManagementHandler {
	return &ProductManagementHandler{catalogService: catalogService}
}

// ListProducts handles GET /v1/admin/products
func (h *ProductManagementHandler) ListProducts(c *gin.Context) {
	filter := &repository.AdminProductFilter{
		Search: c.Query("search"),
	}
	filter.CategoryID, _ = strconv.Atoi(c.Query("category"))
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if active := c.Query("active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	products, total, err := h.catalogService.ListProductsAdmin(filter)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", products, filter.Page, filter.Limit, total)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *ProductManagementHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}
	product, err := h.catalogService.GetProductAdmin(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if product.MinOrderQty == 0 {
		product.MinOrderQty = 1
	}

	if err := h.catalogService.CreateProduct(c.Request.Context(), &product); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductManagementHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	product.ID = id

	if err := h.catalogService.UpdateProduct(c.Request.Context(), &product); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}
