package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// ProductHandler serves the customer-facing catalog.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// requestLanguage reads the lang query param, defaulting to English.
func requestLanguage(c *gin.Context) models.Language {
	if c.Query("lang") == string(models.LangSpanish) {
		return models.LangSpanish
	}
	return models.LangEnglish
}

// requestTier returns the authenticated caller's tier, or retail for
// anonymous browsing.
func requestTier(c *gin.Context) models.AccountType {
	if customer := middleware.GetCustomer(c); customer != nil {
		return customer.AccountType
	}
	return models.AccountRetail
}

// GetProducts handles GET /v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category"))

	products, err := h.catalogService.ListProducts(c.Request.Context(), categoryID, requestLanguage(c), requestTier(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(id, requestLanguage(c), requestTier(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// GetCategories handles GET /v1/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}
