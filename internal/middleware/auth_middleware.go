package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// AuthMiddleware validates JWTs and loads the authenticated customer. Role
// checks run after authentication so the 401/403 split is deterministic:
// missing/invalid token is always 401, a valid token with the wrong role is
// always 403.
type AuthMiddleware struct {
	customerRepo *repository.CustomerRepository
	rateLimiter  *InvalidAuthRateLimiter
}

// NewAuthMiddleware constructs an AuthMiddleware. The context bounds the
// rate limiter's cleanup goroutine; cancel it on shutdown.
func NewAuthMiddleware(ctx context.Context, customerRepo *repository.CustomerRepository) *AuthMiddleware {
	return &AuthMiddleware{
		customerRepo: customerRepo,
		rateLimiter:  NewInvalidAuthRateLimiter(ctx),
	}
}

// Handle returns a middleware that requires a valid token and active account.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			m.handleAuthError(c, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		// Load the account so role and active flag reflect current state,
		// not the state at token issue time.
		customer, err := m.customerRepo.GetByID(claims.UserID)
		if err != nil || customer == nil || !customer.IsActive {
			m.handleAuthError(c, "UNAUTHORIZED", "Account not found or inactive")
			return
		}

		c.Set("customer", customer)
		c.Set("user_id", customer.ID)
		c.Set("account_type", string(customer.AccountType))
		c.Next()
	}
}

// Optional returns a middleware that loads the customer when a valid token
// is present but never rejects the request. Used on public routes that
// attribute activity to logged-in callers.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}
		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}
		customer, err := m.customerRepo.GetByID(claims.UserID)
		if err == nil && customer != nil && customer.IsActive {
			c.Set("customer", customer)
			c.Set("user_id", customer.ID)
			c.Set("account_type", string(customer.AccountType))
		}
		c.Next()
	}
}

// RequireAdmin returns a middleware that rejects non-admin accounts with 403.
// Must run after Handle.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := GetCustomer(c)
		if customer == nil {
			utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		if !customer.IsAdmin() {
			utils.Error(c, 403, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// GetCustomer returns the authenticated customer from context.
func GetCustomer(c *gin.Context) *models.Customer {
	customer, _ := c.Get("customer")
	if customer == nil {
		return nil
	}
	return customer.(*models.Customer)
}
