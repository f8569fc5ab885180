package paygate

// ChargeRequest is the payload for a card charge.
type ChargeRequest struct {
	AmountCents    int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentToken   string `json:"paymentToken"`
	ReferenceID    string `json:"referenceId"`
	CustomerID     string `json:"customerId"`
	Description    string `json:"description"`
	BillingAddress string `json:"billingAddress"`
}

// ChargeResponse is the gateway's result for a charge attempt.
type ChargeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	AuthCode      string `json:"authCode"`
	ReceiptURL    string `json:"receiptUrl"`
	DeclineCode   string `json:"declineCode,omitempty"`
	Message       string `json:"message,omitempty"`
}
