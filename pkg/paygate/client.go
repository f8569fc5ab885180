package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrDeclined is returned when the gateway processed the request but
// declined the charge. The order must be left unpaid; retrying the same
// charge is the caller's decision, not ours.
type ErrDeclined struct {
	Code    string
	Message string
}

func (e *ErrDeclined) Error() string {
	return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
}

// ErrUnavailable is returned on transport failures or gateway 5xx. The
// charge state is unknown or not attempted; callers should allow retry.
type ErrUnavailable struct {
	Cause error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("payment gateway unavailable: %v", e.Cause)
}

func (e *ErrUnavailable) Unwrap() error { return e.Cause }

// Config holds payment gateway credentials.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client is a minimal HTTP client for the card payment gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	debug      bool
}

// NewClient constructs a new gateway client with sane defaults.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Charge submits a card charge. A processed-but-declined charge returns
// *ErrDeclined; transport failures and gateway 5xx return *ErrUnavailable.
func (c *Client) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.baseURL+"/charges").
			Str("reference_id", req.ReferenceID).
			Int64("amount", req.AmountCents).
			Msg("[PAYGATE] Outgoing charge")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ErrUnavailable{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrUnavailable{Cause: err}
	}

	if c.debug {
		log.Debug().
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[PAYGATE] Incoming response")
	}

	if resp.StatusCode >= 500 {
		return nil, &ErrUnavailable{Cause: fmt.Errorf("gateway returned %d", resp.StatusCode)}
	}

	var result ChargeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &ErrUnavailable{Cause: fmt.Errorf("failed to decode response: %w", err)}
	}

	if !result.Success {
		return nil, &ErrDeclined{
			Code:    result.DeclineCode,
			Message: DeclineMessage(result.DeclineCode),
		}
	}
	return &result, nil
}
