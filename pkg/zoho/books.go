package zoho

import (
	"context"
	"net/http"
)

// CreateInvoice creates an invoice in Zoho Books and returns its id.
func (c *Client) CreateInvoice(ctx context.Context, inv *Invoice) (string, error) {
	var resp struct {
		Invoice Invoice `json:"invoice"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.booksURL("/invoices"), inv, &resp); err != nil {
		return "", err
	}
	return resp.Invoice.InvoiceID, nil
}

// CreatePurchaseOrder creates a purchase order in Zoho Books and returns its id.
func (c *Client) CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) (string, error) {
	var resp struct {
		PurchaseOrder PurchaseOrder `json:"purchaseorder"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.booksURL("/purchaseorders"), po, &resp); err != nil {
		return "", err
	}
	return resp.PurchaseOrder.PurchaseOrderID, nil
}

// CreateItem creates an inventory item in Zoho Books and returns its id.
func (c *Client) CreateItem(ctx context.Context, item *Item) (string, error) {
	var resp struct {
		Item Item `json:"item"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.booksURL("/items"), item, &resp); err != nil {
		return "", err
	}
	return resp.Item.ItemID, nil
}

// UpdateItem updates an existing inventory item.
func (c *Client) UpdateItem(ctx context.Context, itemID string, item *Item) error {
	return c.doRequest(ctx, http.MethodPut, c.booksURL("/items/"+itemID), item, nil)
}

// GetItem fetches one inventory item by id.
func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	var resp struct {
		Item Item `json:"item"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.booksURL("/items/"+itemID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// ListItems fetches the full item list (first page; the catalog is small).
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var resp struct {
		Items []Item `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.booksURL("/items"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
