package zoho

// Contact is a Zoho CRM contact (the customer mirror).
type Contact struct {
	ID          string `json:"id,omitempty"`
	LastName    string `json:"Last_Name"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone,omitempty"`
	AccountTier string `json:"Account_Tier,omitempty"`
}

// Item is a Zoho Books inventory item (the product mirror).
type Item struct {
	ItemID      string  `json:"item_id,omitempty"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// LineItem is one invoice or purchase order line.
type LineItem struct {
	ItemID   string  `json:"item_id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Invoice is a Zoho Books invoice.
type Invoice struct {
	InvoiceID   string     `json:"invoice_id,omitempty"`
	CustomerID  string     `json:"customer_id"`
	ReferenceNo string     `json:"reference_number,omitempty"`
	LineItems   []LineItem `json:"line_items"`
	Status      string     `json:"status,omitempty"`
}

// PurchaseOrder is a Zoho Books purchase order.
type PurchaseOrder struct {
	PurchaseOrderID string     `json:"purchaseorder_id,omitempty"`
	VendorID        string     `json:"vendor_id,omitempty"`
	ReferenceNo     string     `json:"reference_number,omitempty"`
	LineItems       []LineItem `json:"line_items"`
	Status          string     `json:"status,omitempty"`
}

// WebhookEvent is the envelope Zoho posts to our webhook endpoint.
type WebhookEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		ItemID          string `json:"item_id,omitempty"`
		InvoiceID       string `json:"invoice_id,omitempty"`
		PurchaseOrderID string `json:"purchaseorder_id,omitempty"`
		Status          string `json:"status,omitempty"`
	} `json:"data"`
}
