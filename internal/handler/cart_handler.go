package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CartHandler handles cart endpoints. All routes require authentication.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	customer := middleware.GetCustomer(c)
	cart, err := h.cartService.GetCart(customer.ID, customer.AccountType)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Cart retrieved", cart)
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	var req struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.cartService.AddItem(customer.ID, req.ProductID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Item added to cart", item)
}

// UpdateItem handles PUT /v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.cartService.UpdateQuantity(customer.ID, productID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Cart item updated", item)
}

// RemoveItem handles DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	if err := h.cartService.RemoveItem(customer.ID, productID); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Item removed from cart", nil)
}

// ClearCart handles DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	customer := middleware.GetCustomer(c)
	if err := h.cartService.Clear(customer.ID); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Cart cleared", nil)
}
