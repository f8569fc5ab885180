package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
	"github.com/VerdeSupply/storefront_api/pkg/paygate"
)

// CheckoutService runs order finalization: coupon, payment capture, the
// paid/confirmed write, and enqueueing of the best-effort side pipelines.
type CheckoutService struct {
	orderRepo     *repository.OrderRepository
	productRepo   *repository.ProductRepository
	couponService *CouponService
	orderService  *OrderService
	gateway       *paygate.Client
	currency      string
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	couponService *CouponService,
	orderService *OrderService,
	gateway *paygate.Client,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		couponService: couponService,
		orderService:  orderService,
		gateway:       gateway,
		currency:      currency,
	}
}

// CheckoutRequest carries the checkout payload.
type CheckoutRequest struct {
	OrderID        int    `json:"orderId" binding:"required"`
	PaymentToken   string `json:"paymentMethod" binding:"required"`
	BillingAddress string `json:"billingAddress"`
	CouponCode     string `json:"couponCode"`
}

// CheckoutResult is returned to the caller on success.
type CheckoutResult struct {
	Success       bool   `json:"success"`
	OrderID       int    `json:"orderId"`
	TransactionID string `json:"transactionId"`
	ReceiptURL    string `json:"receiptUrl,omitempty"`
}

// Checkout executes the payment pipeline for an order the caller owns.
// Sequencing matters: the paid/confirmed write happens strictly after a
// successful capture, and document sync plus SMS are enqueued strictly
// after that write. Outbox failures only log; the capture already happened
// and a declined response here would invite a double charge.
func (s *CheckoutService) Checkout(ctx context.Context, customer *models.Customer, req *CheckoutRequest) (*CheckoutResult, error) {
	order, err := s.orderRepo.GetByID(req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if order.UserID != customer.ID {
		return nil, utils.ErrForbidden
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, utils.ErrAlreadyPaid
	}

	// Optional coupon, applied before the charge so the captured amount
	// matches the stored total.
	if req.CouponCode != "" {
		result, err := s.couponService.Validate(req.CouponCode, &customer.ID, order.TotalCents, customer.AccountType)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, utils.ErrInvalidCoupon
		}
		discount := result.DiscountCents
		if discount > order.TotalCents {
			discount = order.TotalCents
		}
		if err := s.orderRepo.ApplyDiscount(order.ID, req.CouponCode, discount); err != nil {
			return nil, err
		}
		order.CouponCode = &req.CouponCode
		order.DiscountCents = discount
		order.TotalCents = order.SubtotalCents + order.TaxCents + order.DeliveryFeeCents - discount
	}

	billing := req.BillingAddress
	if billing == "" {
		billing = order.BillingAddress
	}

	charge, err := s.gateway.Charge(ctx, &paygate.ChargeRequest{
		AmountCents:    order.TotalCents,
		Currency:       s.currency,
		PaymentToken:   req.PaymentToken,
		ReferenceID:    order.OrderNumber,
		CustomerID:     fmt.Sprintf("%d", customer.ID),
		Description:    fmt.Sprintf("Order %s", order.OrderNumber),
		BillingAddress: billing,
	})
	if err != nil {
		var declined *paygate.ErrDeclined
		if errors.As(err, &declined) {
			log.Warn().
				Int("order_id", order.ID).
				Str("decline_code", declined.Code).
				Msg("Payment declined")
			// Record the failed attempt; the order stays payable.
			failed := models.PaymentFailed
			if updateErr := s.orderRepo.UpdateStatus(order.ID, nil, &failed); updateErr != nil {
				log.Error().Err(updateErr).Int("order_id", order.ID).Msg("Failed to record failed payment")
			}
			return nil, utils.ErrPaymentDeclined
		}
		log.Error().Err(err).Int("order_id", order.ID).Msg("Payment gateway unavailable")
		return nil, utils.ErrGatewayUnavailable
	}

	// Capture succeeded; persist paid/confirmed exactly once.
	if err := s.orderRepo.MarkPaid(order.ID, charge.TransactionID, charge.AuthCode, charge.ReceiptURL); err != nil {
		// The charge went through but the write failed. Surface an error
		// for the operator; the transaction id in the log is the lead for
		// manual reconciliation.
		log.Error().Err(err).
			Int("order_id", order.ID).
			Str("transaction_id", charge.TransactionID).
			Msg("CRITICAL: payment captured but order update failed")
		return nil, err
	}
	order.Status = models.OrderConfirmed
	order.PaymentStatus = models.PaymentPaid

	if order.CouponCode != nil {
		if err := s.couponService.RecordUse(*order.CouponCode, customer.ID, order.ID); err != nil {
			log.Warn().Err(err).Int("order_id", order.ID).Msg("Failed to record coupon use")
		}
	}

	// Reduce stock for each purchased line. Failures are logged; stock is
	// advisory here, the capture is the source of truth.
	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			log.Warn().Err(err).
				Int("order_id", order.ID).
				Int("product_id", item.ProductID).
				Msg("Failed to decrement stock")
		}
	}

	// Side pipelines, strictly after the payment write.
	s.orderService.EnqueueSideEffects(order)

	log.Info().
		Int("order_id", order.ID).
		Str("transaction_id", charge.TransactionID).
		Int64("amount", order.TotalCents).
		Msg("Checkout completed")

	return &CheckoutResult{
		Success:       true,
		OrderID:       order.ID,
		TransactionID: charge.TransactionID,
		ReceiptURL:    charge.ReceiptURL,
	}, nil
}
