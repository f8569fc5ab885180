package paygate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerdeSupply/storefront_api/pkg/paygate"
)

func chargeReq() *paygate.ChargeRequest {
	return &paygate.ChargeRequest{
		AmountCents:  12500,
		Currency:     "USD",
		PaymentToken: "tok_test",
		ReferenceID:  "VS-2001",
	}
}

func TestCharge(t *testing.T) {
	t.Parallel()

	t.Run("successful capture", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/charges", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"transactionId":"txn_1","authCode":"A1","receiptUrl":"https://r/1"}`))
		}))
		defer srv.Close()

		client := paygate.NewClient(paygate.Config{BaseURL: srv.URL, APIKey: "test-key"})
		resp, err := client.Charge(context.Background(), chargeReq())
		require.NoError(t, err)
		assert.Equal(t, "txn_1", resp.TransactionID)
		assert.Equal(t, "A1", resp.AuthCode)
	})

	t.Run("decline surfaces code and safe message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":false,"declineCode":"insufficient_funds"}`))
		}))
		defer srv.Close()

		client := paygate.NewClient(paygate.Config{BaseURL: srv.URL, APIKey: "test-key"})
		_, err := client.Charge(context.Background(), chargeReq())

		var declined *paygate.ErrDeclined
		require.ErrorAs(t, err, &declined)
		assert.Equal(t, paygate.DeclineInsufficientFunds, declined.Code)
		assert.Equal(t, "The card has insufficient funds", declined.Message)
	})

	t.Run("gateway 5xx is unavailable, not declined", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := paygate.NewClient(paygate.Config{BaseURL: srv.URL, APIKey: "test-key"})
		_, err := client.Charge(context.Background(), chargeReq())

		var unavailable *paygate.ErrUnavailable
		require.ErrorAs(t, err, &unavailable)
		var declined *paygate.ErrDeclined
		assert.False(t, errors.As(err, &declined))
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		t.Parallel()

		client := paygate.NewClient(paygate.Config{BaseURL: "http://127.0.0.1:1", APIKey: "test-key"})
		_, err := client.Charge(context.Background(), chargeReq())

		var unavailable *paygate.ErrUnavailable
		require.ErrorAs(t, err, &unavailable)
	})
}

func TestDeclineMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "The card has expired", paygate.DeclineMessage(paygate.DeclineCardExpired))
	assert.Equal(t, "The card was declined", paygate.DeclineMessage(paygate.DeclineDoNotHonor))
	// Unknown codes never leak raw gateway text to the customer.
	assert.Equal(t, "The payment was declined", paygate.DeclineMessage("rc_9901"))
}
