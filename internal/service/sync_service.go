package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/utils"
	"github.com/VerdeSupply/storefront_api/pkg/zoho"
)

// OrderStore is the slice of order persistence the synchronizer needs.
type OrderStore interface {
	GetByID(id int) (*models.Order, error)
	SetZohoInvoiceID(id int, invoiceID string) error
	SetZohoPurchaseOrderID(id int, poID string) error
}

// CustomerStore is the slice of customer persistence the synchronizer needs.
type CustomerStore interface {
	GetByID(id int) (*models.Customer, error)
	SetZohoContactID(id int, zohoContactID string) error
	UpdateProfile(id int, name, phone string, language models.Language) error
}

// ProductStore is the slice of product persistence the synchronizer needs.
type ProductStore interface {
	GetByID(id int) (*models.Product, error)
	GetByZohoItemID(zohoItemID string) (*models.Product, error)
	SetZohoItemID(id int, zohoItemID string) error
	Update(p *models.Product) error
}

// SyncService mirrors orders, customers, and products into Zoho CRM/Books
// and processes inbound Zoho webhooks. All operations are best-effort from
// the caller's perspective: errors are collected or logged, never allowed
// to unwind the storefront write that triggered them.
type SyncService struct {
	zohoClient   *zoho.Client
	orderRepo    OrderStore
	customerRepo CustomerStore
	productRepo  ProductStore
	notification *NotificationService
}

// NewSyncService constructs a SyncService.
func NewSyncService(
	zohoClient *zoho.Client,
	orderRepo OrderStore,
	customerRepo CustomerStore,
	productRepo ProductStore,
	notification *NotificationService,
) *SyncService {
	return &SyncService{
		zohoClient:   zohoClient,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		notification: notification,
	}
}

// DocumentSyncResult reports what a documents pass did.
type DocumentSyncResult struct {
	Success          bool     `json:"success"`
	DocumentsCreated int      `json:"documentsCreated"`
	Errors           []string `json:"errors,omitempty"`
}

// ProcessOrderDocuments creates the external documents an order's current
// state calls for: a Books invoice once paid, a purchase order once
// confirmed. Idempotent: an order that already carries the document id is
// skipped, so reprocessing the same state never duplicates documents.
func (s *SyncService) ProcessOrderDocuments(ctx context.Context, orderID int) *DocumentSyncResult {
	result := &DocumentSyncResult{Success: true}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("load order: %v", err))
		return result
	}

	customer, err := s.customerRepo.GetByID(order.UserID)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("load customer: %v", err))
		return result
	}

	if order.PaymentStatus == models.PaymentPaid && order.ZohoInvoiceID == nil {
		if err := s.createInvoice(ctx, order, customer); err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("invoice: %v", err))
		} else {
			result.DocumentsCreated++
		}
	}

	if order.Status != models.OrderPending && order.Status != models.OrderCancelled && order.ZohoPurchaseOrderID == nil {
		if err := s.createPurchaseOrder(ctx, order); err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("purchase order: %v", err))
		} else {
			result.DocumentsCreated++
		}
	}

	return result
}

func (s *SyncService) createInvoice(ctx context.Context, order *models.Order, customer *models.Customer) error {
	// The invoice needs a CRM contact to bill against.
	if customer.ZohoContactID == nil {
		if err := s.pushCustomer(ctx, customer); err != nil {
			return fmt.Errorf("ensure contact: %w", err)
		}
		refreshed, err := s.customerRepo.GetByID(customer.ID)
		if err != nil {
			return err
		}
		customer = refreshed
	}

	inv := &zoho.Invoice{
		CustomerID:  *customer.ZohoContactID,
		ReferenceNo: order.OrderNumber,
		LineItems:   orderLineItems(order),
	}
	invoiceID, err := s.zohoClient.CreateInvoice(ctx, inv)
	if err != nil {
		return err
	}
	if err := s.orderRepo.SetZohoInvoiceID(order.ID, invoiceID); err != nil {
		return err
	}
	order.ZohoInvoiceID = &invoiceID
	log.Info().Int("order_id", order.ID).Str("zoho_invoice_id", invoiceID).Msg("Invoice created in Zoho Books")
	return nil
}

func (s *SyncService) createPurchaseOrder(ctx context.Context, order *models.Order) error {
	po := &zoho.PurchaseOrder{
		ReferenceNo: order.OrderNumber,
		LineItems:   orderLineItems(order),
	}
	poID, err := s.zohoClient.CreatePurchaseOrder(ctx, po)
	if err != nil {
		return err
	}
	if err := s.orderRepo.SetZohoPurchaseOrderID(order.ID, poID); err != nil {
		return err
	}
	order.ZohoPurchaseOrderID = &poID
	log.Info().Int("order_id", order.ID).Str("zoho_po_id", poID).Msg("Purchase order created in Zoho Books")
	return nil
}

func orderLineItems(order *models.Order) []zoho.LineItem {
	lines := make([]zoho.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, zoho.LineItem{
			Name:     item.ProductName,
			Quantity: float64(item.Quantity),
			Rate:     float64(item.UnitPriceCents) / 100,
		})
	}
	return lines
}

// SyncCustomer pushes or pulls one customer. Direction is "to_zoho" or
// "from_zoho".
func (s *SyncService) SyncCustomer(ctx context.Context, customerID int, direction string) error {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}

	switch direction {
	case "to_zoho":
		return s.pushCustomer(ctx, customer)
	case "from_zoho":
		return s.pullCustomer(ctx, customer)
	default:
		return utils.ErrValidation
	}
}

func (s *SyncService) pushCustomer(ctx context.Context, customer *models.Customer) error {
	contact := &zoho.Contact{
		LastName:    customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		AccountTier: string(customer.AccountType),
	}
	if customer.ZohoContactID != nil {
		return s.zohoClient.UpdateContact(ctx, *customer.ZohoContactID, contact)
	}
	contactID, err := s.zohoClient.CreateContact(ctx, contact)
	if err != nil {
		return err
	}
	if err := s.customerRepo.SetZohoContactID(customer.ID, contactID); err != nil {
		return err
	}
	log.Info().Int("customer_id", customer.ID).Str("zoho_contact_id", contactID).Msg("Customer pushed to Zoho CRM")
	return nil
}

func (s *SyncService) pullCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ZohoContactID == nil {
		return utils.ErrValidation
	}
	contact, err := s.zohoClient.GetContact(ctx, *customer.ZohoContactID)
	if err != nil {
		return err
	}
	return s.customerRepo.UpdateProfile(customer.ID, contact.LastName, contact.Phone, customer.Language)
}

// SyncItem pushes one product to Zoho Books, creating or updating the item.
func (s *SyncService) SyncItem(ctx context.Context, productID int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}
	return s.pushItem(ctx, product)
}

func (s *SyncService) pushItem(ctx context.Context, product *models.Product) error {
	item := &zoho.Item{
		Name:        product.NameEn,
		SKU:         product.SKU,
		Rate:        float64(product.PriceCents) / 100,
		Description: product.DescriptionEn,
	}
	if product.ZohoItemID != nil {
		return s.zohoClient.UpdateItem(ctx, *product.ZohoItemID, item)
	}
	itemID, err := s.zohoClient.CreateItem(ctx, item)
	if err != nil {
		return err
	}
	if err := s.productRepo.SetZohoItemID(product.ID, itemID); err != nil {
		return err
	}
	log.Info().Int("product_id", product.ID).Str("zoho_item_id", itemID).Msg("Product pushed to Zoho Books")
	return nil
}

// PullItems refreshes local prices and names from Zoho Books for every
// product already linked to an item. Used by the catalog sync worker.
func (s *SyncService) PullItems(ctx context.Context) (int, error) {
	items, err := s.zohoClient.ListItems(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range items {
		item := &items[i]
		product, err := s.productRepo.GetByZohoItemID(item.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return updated, err
		}
		product.NameEn = item.Name
		product.PriceCents = int64(item.Rate * 100)
		if err := s.productRepo.Update(product); err != nil {
			log.Error().Err(err).Int("product_id", product.ID).Msg("Failed to apply pulled item update")
			continue
		}
		updated++
	}
	return updated, nil
}

// ProcessWebhookEvent dispatches an inbound Zoho webhook by event type.
func (s *SyncService) ProcessWebhookEvent(ctx context.Context, event *zoho.WebhookEvent) error {
	switch event.EventType {
	case "item.created", "item.updated":
		return s.handleItemEvent(ctx, event.Data.ItemID)
	case "purchaseorder.status_changed":
		log.Info().
			Str("zoho_po_id", event.Data.PurchaseOrderID).
			Str("status", event.Data.Status).
			Msg("Purchase order status changed in Zoho")
		return nil
	default:
		if len(event.EventType) > 8 && event.EventType[:8] == "invoice." {
			log.Info().
				Str("event_type", event.EventType).
				Str("zoho_invoice_id", event.Data.InvoiceID).
				Msg("Invoice event from Zoho")
			return nil
		}
		log.Warn().Str("event_type", event.EventType).Msg("Unhandled Zoho webhook event")
		return nil
	}
}

func (s *SyncService) handleItemEvent(ctx context.Context, itemID string) error {
	if itemID == "" {
		return utils.ErrValidation
	}
	item, err := s.zohoClient.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByZohoItemID(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Not linked locally; ignore.
			return nil
		}
		return err
	}
	product.NameEn = item.Name
	product.PriceCents = int64(item.Rate * 100)
	return s.productRepo.Update(product)
}

// ProcessJob executes one outbox job. Called by the sync worker.
func (s *SyncService) ProcessJob(ctx context.Context, job *models.SyncJob) error {
	switch job.JobType {
	case models.JobOrderDocuments:
		var payload models.OrderDocumentsPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		result := s.ProcessOrderDocuments(ctx, payload.OrderID)
		if !result.Success {
			return fmt.Errorf("%w: %v", utils.ErrSync, result.Errors)
		}
		return nil

	case models.JobCustomerSync:
		var payload models.CustomerSyncPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		return s.SyncCustomer(ctx, payload.CustomerID, payload.Direction)

	case models.JobOrderSMS:
		var payload models.OrderSMSPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		order, err := s.orderRepo.GetByID(payload.OrderID)
		if err != nil {
			return err
		}
		customer, err := s.customerRepo.GetByID(order.UserID)
		if err != nil {
			return err
		}
		_, err = s.notification.SendOrderStatusSMS(ctx, order, customer, payload.CustomMessage)
		return err

	default:
		return fmt.Errorf("unknown job type %q", job.JobType)
	}
}
