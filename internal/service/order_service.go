package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// OrderService creates orders from carts and manages status transitions.
type OrderService struct {
	orderRepo   *repository.OrderRepository
	cartService *CartService
	syncJobRepo *repository.SyncJobRepository
	taxRateBps  int
}

// NewOrderService constructs an OrderService.
func NewOrderService(
	orderRepo *repository.OrderRepository,
	cartService *CartService,
	syncJobRepo *repository.SyncJobRepository,
	taxRateBps int,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartService: cartService,
		syncJobRepo: syncJobRepo,
		taxRateBps:  taxRateBps,
	}
}

// CreateOrderRequest carries the order creation payload.
type CreateOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	BillingAddress  string `json:"billingAddress"`
	Delivery        bool   `json:"delivery"`
}

// CreateFromCart snapshots the customer's cart into a pending order. Line
// prices are frozen at the caller's tier; the cart is cleared on success.
func (s *OrderService) CreateFromCart(customer *models.Customer, req *CreateOrderRequest) (*models.Order, error) {
	cart, err := s.cartService.GetCart(customer.ID, customer.AccountType)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, utils.ErrEmptyCart
	}

	var deliveryFee int64
	if req.Delivery {
		for _, line := range cart.Lines {
			if !line.Product.DeliveryAvailable {
				return nil, utils.ErrValidation
			}
			if line.Product.DeliveryFeeCents > deliveryFee {
				deliveryFee = line.Product.DeliveryFeeCents
			}
		}
	}

	subtotal := cart.SubtotalCents
	tax := subtotal * int64(s.taxRateBps) / 10000

	billing := req.BillingAddress
	if billing == "" {
		billing = req.DeliveryAddress
	}

	order := &models.Order{
		OrderNumber:      uuid.New().String(),
		UserID:           customer.ID,
		Status:           models.OrderPending,
		PaymentStatus:    models.PaymentPending,
		SubtotalCents:    subtotal,
		TaxCents:         tax,
		DeliveryFeeCents: deliveryFee,
		TotalCents:       subtotal + tax + deliveryFee,
		DeliveryAddress:  req.DeliveryAddress,
		BillingAddress:   billing,
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:      line.ProductID,
			ProductName:    line.Product.NameEn,
			SKU:            line.Product.SKU,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: line.LineTotalCents,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	if err := s.cartService.Clear(customer.ID); err != nil {
		log.Warn().Err(err).Int("order_id", order.ID).Msg("Failed to clear cart after order creation")
	}

	log.Info().Int("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("Order created")
	return order, nil
}

// GetOrder returns an order, enforcing ownership unless the caller is admin.
func (s *OrderService) GetOrder(orderID int, caller *models.Customer) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if order.UserID != caller.ID && !caller.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	return order, nil
}

// GetOrderAdmin returns an order without an ownership check.
func (s *OrderService) GetOrderAdmin(orderID int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListOrders returns the caller's orders.
func (s *OrderService) ListOrders(userID int) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// ListOrdersAdmin returns orders for the back-office.
func (s *OrderService) ListOrdersAdmin(status string, page, limit int) ([]models.Order, int, error) {
	return s.orderRepo.ListAdmin(status, page, limit)
}

// UpdateStatus transitions one or both status fields. Only supplied fields
// are persisted. Illegal transitions (backward fulfillment moves, second
// capture, refund of unpaid order) are rejected with InvalidTransition.
// Legal transitions enqueue document sync and customer SMS jobs.
func (s *OrderService) UpdateStatus(orderID int, newStatus *models.OrderStatus, newPaymentStatus *models.PaymentStatus) (*models.Order, error) {
	if newStatus == nil && newPaymentStatus == nil {
		return nil, utils.ErrValidation
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if newStatus != nil && !order.Status.CanTransition(*newStatus) {
		return nil, utils.ErrInvalidTransition
	}
	if newPaymentStatus != nil && !order.PaymentStatus.CanTransition(*newPaymentStatus) {
		return nil, utils.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus, newPaymentStatus); err != nil {
		return nil, err
	}

	if newStatus != nil {
		order.Status = *newStatus
	}
	if newPaymentStatus != nil {
		order.PaymentStatus = *newPaymentStatus
	}

	s.EnqueueSideEffects(order)
	return order, nil
}

// EnqueueSideEffects schedules document sync and the status SMS for an order
// whose status just changed. Failures are logged, never returned: the status
// write has already happened and must not be unwound.
func (s *OrderService) EnqueueSideEffects(order *models.Order) {
	docKey := fmt.Sprintf("docs:%d:%s:%s", order.ID, order.Status, order.PaymentStatus)
	if err := s.syncJobRepo.Enqueue(models.JobOrderDocuments, docKey, models.OrderDocumentsPayload{OrderID: order.ID}); err != nil {
		log.Error().Err(err).Int("order_id", order.ID).Msg("Failed to enqueue document sync job")
	}

	smsKey := fmt.Sprintf("sms:%d:%s:%s", order.ID, order.Status, order.PaymentStatus)
	payload := models.OrderSMSPayload{OrderID: order.ID, Status: string(order.Status)}
	if err := s.syncJobRepo.Enqueue(models.JobOrderSMS, smsKey, payload); err != nil {
		log.Error().Err(err).Int("order_id", order.ID).Msg("Failed to enqueue order SMS job")
	}
}
