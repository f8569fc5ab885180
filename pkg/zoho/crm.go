package zoho

import (
	"context"
	"fmt"
	"net/http"
)

// CreateContact creates a CRM contact and returns its id.
func (c *Client) CreateContact(ctx context.Context, contact *Contact) (string, error) {
	body := map[string]any{"data": []*Contact{contact}}
	var resp struct {
		Data []struct {
			Details struct {
				ID string `json:"id"`
			} `json:"details"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.cfg.CRMBaseURL+"/Contacts", body, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].Status != "success" {
		return "", fmt.Errorf("contact creation rejected by zoho")
	}
	return resp.Data[0].Details.ID, nil
}

// UpdateContact updates an existing CRM contact.
func (c *Client) UpdateContact(ctx context.Context, contactID string, contact *Contact) error {
	body := map[string]any{"data": []*Contact{contact}}
	return c.doRequest(ctx, http.MethodPut, c.cfg.CRMBaseURL+"/Contacts/"+contactID, body, nil)
}

// GetContact fetches one CRM contact by id.
func (c *Client) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	var resp struct {
		Data []Contact `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.cfg.CRMBaseURL+"/Contacts/"+contactID, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("contact %s not found", contactID)
	}
	return &resp.Data[0], nil
}
