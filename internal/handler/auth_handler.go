package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// AuthHandler handles registration, login, and profile endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, token, err := h.authService.Register(&req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.Success(c, 201, "Account created", gin.H{
		"customer": customer,
		"token":    token,
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"customer": customer,
		"token":    token,
	})
}

// GetProfile handles GET /v1/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	customer := middleware.GetCustomer(c)
	if customer == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}
	utils.Success(c, 200, "Profile retrieved", customer)
}

// UpdateProfile handles PUT /v1/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	customer := middleware.GetCustomer(c)
	if customer == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(customer.ID, req.Name, req.Phone, req.Language)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Profile updated", updated)
}
