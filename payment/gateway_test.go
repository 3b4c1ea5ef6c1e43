package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	sig := sign(secret, "order_123", "pay_456")

	assert.True(t, VerifySignature(secret, "order_123", "pay_456", sig))
}

func TestVerifySignature_Tampered(t *testing.T) {
	secret := "test-secret"
	sig := sign(secret, "order_123", "pay_456")

	assert.False(t, VerifySignature(secret, "order_123", "pay_456", sig+"00"))
	assert.False(t, VerifySignature(secret, "order_999", "pay_456", sig))
	assert.False(t, VerifySignature(secret, "order_123", "pay_999", sig))
	assert.False(t, VerifySignature("other-secret", "order_123", "pay_456", sig))
	assert.False(t, VerifySignature(secret, "order_123", "pay_456", ""))
}

func testClient(baseURL string) *Client {
	return &Client{
		keyID:     "key_test",
		keySecret: "secret_test",
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key_test", user)
		require.Equal(t, "secret_test", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 149950, payload["amount"]) // 1499.50 in subunits
		assert.Equal(t, "INR", payload["currency"])

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   149950,
			Currency: "INR",
			Receipt:  payload["receipt"].(string),
			Status:   "created",
		})
	}))
	defer srv.Close()

	order, err := testClient(srv.URL).CreateOrder(1499.50, "INR", "rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.EqualValues(t, 149950, order.Amount)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount missing"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(10, "INR", "rcpt_2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount missing")
}

func TestRefund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/pay_456/refund", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 90000, payload["amount"])

		json.NewEncoder(w).Encode(Refund{
			ID:        "rfnd_1",
			PaymentID: "pay_456",
			Amount:    90000,
			Status:    "processed",
		})
	}))
	defer srv.Close()

	refund, err := testClient(srv.URL).Refund("pay_456", 900)
	require.NoError(t, err)
	assert.Equal(t, "rfnd_1", refund.ID)
	assert.Equal(t, "processed", refund.Status)
}

func TestFetchInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/invoices/inv_1", r.URL.Path)

		json.NewEncoder(w).Encode(Invoice{ID: "inv_1", OrderID: "order_abc", Amount: 149950, Status: "paid"})
	}))
	defer srv.Close()

	invoice, err := testClient(srv.URL).FetchInvoice("inv_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", invoice.OrderID)
}
