package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/pkg/twilio"
)

// NotificationService sends order SMS via Twilio and logs every attempt.
type NotificationService struct {
	twilioClient *twilio.Client
	smsLogRepo   *repository.SMSLogRepository
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(twilioClient *twilio.Client, smsLogRepo *repository.SMSLogRepository) *NotificationService {
	return &NotificationService{twilioClient: twilioClient, smsLogRepo: smsLogRepo}
}

// statusTemplates maps order statuses to message templates per language.
// %s slots: customer name, order number.
var statusTemplates = map[models.OrderStatus]map[models.Language]string{
	models.OrderConfirmed: {
		models.LangEnglish: "Hi %s, your order %s is confirmed. Thank you for your purchase!",
		models.LangSpanish: "Hola %s, su pedido %s ha sido confirmado. ¡Gracias por su compra!",
	},
	models.OrderProcessing: {
		models.LangEnglish: "Hi %s, your order %s is being prepared.",
		models.LangSpanish: "Hola %s, su pedido %s está siendo preparado.",
	},
	models.OrderShipped: {
		models.LangEnglish: "Hi %s, your order %s is out for delivery.",
		models.LangSpanish: "Hola %s, su pedido %s está en camino.",
	},
	models.OrderDelivered: {
		models.LangEnglish: "Hi %s, your order %s has been delivered. Enjoy!",
		models.LangSpanish: "Hola %s, su pedido %s ha sido entregado. ¡Que lo disfrute!",
	},
	models.OrderCancelled: {
		models.LangEnglish: "Hi %s, your order %s has been cancelled. Contact us with any questions.",
		models.LangSpanish: "Hola %s, su pedido %s ha sido cancelado. Contáctenos si tiene preguntas.",
	},
}

var genericTemplate = map[models.Language]string{
	models.LangEnglish: "Hi %s, there is an update on your order %s.",
	models.LangSpanish: "Hola %s, hay una actualización de su pedido %s.",
}

// GenerateOrderStatusMessage renders the SMS body for a status change.
// Unrecognized statuses fall back to a generic update message.
func GenerateOrderStatusMessage(status models.OrderStatus, orderNumber, customerName string, lang models.Language) string {
	if lang != models.LangSpanish {
		lang = models.LangEnglish
	}
	if templates, ok := statusTemplates[status]; ok {
		return fmt.Sprintf(templates[lang], customerName, orderNumber)
	}
	return fmt.Sprintf(genericTemplate[lang], customerName, orderNumber)
}

// SendSMS sends one SMS and logs the outcome, delivered or not.
func (s *NotificationService) SendSMS(ctx context.Context, to, body string, orderID *int) (*models.SMSLog, error) {
	entry := &models.SMSLog{
		ToNumber: to,
		Body:     body,
		OrderID:  orderID,
	}

	msg, err := s.twilioClient.SendSMS(ctx, to, body)
	if err != nil {
		errText := err.Error()
		entry.ErrorText = &errText
		if logErr := s.smsLogRepo.Create(entry); logErr != nil {
			log.Error().Err(logErr).Msg("Failed to write SMS log")
		}
		log.Error().Err(err).Str("to", to).Msg("SMS send failed")
		return entry, err
	}

	entry.MessageSID = &msg.SID
	entry.Delivered = true
	if logErr := s.smsLogRepo.Create(entry); logErr != nil {
		log.Error().Err(logErr).Msg("Failed to write SMS log")
	}
	log.Info().Str("to", to).Str("message_sid", msg.SID).Msg("SMS sent")
	return entry, nil
}

// GetOrderLogs returns the SMS delivery log for an order.
func (s *NotificationService) GetOrderLogs(orderID int) ([]models.SMSLog, error) {
	return s.smsLogRepo.GetByOrder(orderID)
}

// SendOrderStatusSMS renders and sends the status message for an order.
func (s *NotificationService) SendOrderStatusSMS(ctx context.Context, order *models.Order, customer *models.Customer, customMessage string) (*models.SMSLog, error) {
	if customer.Phone == "" {
		log.Debug().Int("order_id", order.ID).Msg("Customer has no phone number, skipping SMS")
		return nil, nil
	}
	body := customMessage
	if body == "" {
		body = GenerateOrderStatusMessage(order.Status, order.OrderNumber, customer.Name, customer.Language)
	}
	return s.SendSMS(ctx, customer.Phone, body, &order.ID)
}
