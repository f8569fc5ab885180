package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CalculatorHandler handles material calculator endpoints. Listing and
// evaluation are public; usage is attributed to the caller when a valid
// token is present.
type CalculatorHandler struct {
	calculatorService *service.CalculatorService
}

// NewCalculatorHandler constructs a CalculatorHandler.
func NewCalculatorHandler(calculatorService *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorService: calculatorService}
}

// GetCalculators handles GET /v1/calculators
func (h *CalculatorHandler) GetCalculators(c *gin.Context) {
	calculators, err := h.calculatorService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Calculators retrieved", calculators)
}

// GetCalculator handles GET /v1/calculators/:id
func (h *CalculatorHandler) GetCalculator(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid calculator id")
		return
	}

	calculator, err := h.calculatorService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Calculator retrieved", calculator)
}

// Evaluate handles POST /v1/calculators/:id/evaluate
func (h *CalculatorHandler) Evaluate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid calculator id")
		return
	}

	var req struct {
		Inputs map[string]float64 `json:"inputs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var userID *int
	if customer := middleware.GetCustomer(c); customer != nil {
		userID = &customer.ID
	}

	result, err := h.calculatorService.Evaluate(id, req.Inputs, userID, c.ClientIP())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Calculation complete", result)
}
