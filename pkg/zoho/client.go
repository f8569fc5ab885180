// Package zoho is a minimal client for Zoho CRM and Zoho Books using the
// OAuth2 refresh-token flow.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultAccountsURL is the Zoho OAuth token endpoint.
	DefaultAccountsURL = "https://accounts.zoho.com/oauth/v2/token"
	// DefaultCRMBaseURL is the Zoho CRM v2 API base URL.
	DefaultCRMBaseURL = "https://www.zohoapis.com/crm/v2"
	// DefaultBooksBaseURL is the Zoho Books v3 API base URL.
	DefaultBooksBaseURL = "https://www.zohoapis.com/books/v3"
)

// Config holds Zoho OAuth credentials and the Books organization. The URL
// fields default to the public Zoho endpoints when left empty.
type Config struct {
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	OrganizationID string
	AccountsURL    string
	CRMBaseURL     string
	BooksBaseURL   string
}

// Client talks to Zoho CRM and Books. Access tokens are refreshed on demand
// and cached until shortly before expiry.
type Client struct {
	httpClient *http.Client
	cfg        Config
	debug      bool

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient constructs a Zoho client.
func NewClient(cfg Config) *Client {
	if cfg.AccountsURL == "" {
		cfg.AccountsURL = DefaultAccountsURL
	}
	if cfg.CRMBaseURL == "" {
		cfg.CRMBaseURL = DefaultCRMBaseURL
	}
	if cfg.BooksBaseURL == "" {
		cfg.BooksBaseURL = DefaultBooksBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		debug:      os.Getenv("ENV") == "development",
	}
}

// token returns a valid access token, refreshing it if needed.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Refresh one minute before expiry to avoid races at the boundary.
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", c.cfg.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AccountsURL+"?"+form.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.Error != "" || tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token refresh rejected: %s", tokenResp.Error)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// doRequest performs an authorized JSON request against a Zoho API and
// decodes the response into result (when result is non-nil).
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("[ZOHO] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("zoho request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[ZOHO] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return fmt.Errorf("zoho error %d: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("zoho returned status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// booksURL builds a Books endpoint with the organization id query param.
func (c *Client) booksURL(path string) string {
	return fmt.Sprintf("%s%s?organization_id=%s", c.cfg.BooksBaseURL, path, url.QueryEscape(c.cfg.OrganizationID))
}
