// Package twilio is a minimal client for the Twilio Messages API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// BaseURL is the Twilio REST API base URL.
	BaseURL = "https://api.twilio.com/2010-04-01"
)

// Client sends SMS via the Twilio Messages API.
type Client struct {
	httpClient *http.Client
	accountSID string
	authToken  string
	fromNumber string
}

// Config holds Twilio credentials.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Message is the subset of Twilio's message resource we use.
type Message struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorCode    *int    `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// NewClient constructs a Twilio client with sane defaults.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
	}
}

// SendSMS sends a single SMS and returns the created message resource.
func (c *Client) SendSMS(ctx context.Context, to, body string) (*Message, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", BaseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Twilio error bodies carry a message field.
		var apiErr struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		}
		if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("twilio error %d: %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	var msg Message
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &msg, nil
}
