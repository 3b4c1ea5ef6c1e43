package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"
)

// Gateway is what the controllers need from the payment provider. The concrete
// client is constructed once in main and injected, never held as a package
// global.
type Gateway interface {
	CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error)
	Refund(paymentID string, amount float64) (*Refund, error)
	FetchInvoice(invoiceID string) (*Invoice, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// GatewayOrder is the provider-side order the client pays against.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

type Invoice struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Client talks to the hosted payment gateway over HTTPS with basic auth.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// NewClientFromEnv builds the gateway client from PAYMENT_KEY_ID,
// PAYMENT_KEY_SECRET and PAYMENT_API_URL.
func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("PAYMENT_KEY_ID")
	keySecret := os.Getenv("PAYMENT_KEY_SECRET")
	baseURL := os.Getenv("PAYMENT_API_URL")

	if keyID == "" || keySecret == "" || baseURL == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}

	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// toSubunits converts a major-unit amount to the gateway's integer subunits.
func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder registers an order with the gateway and returns its reference.
// The client pays against this id on the hosted checkout page.
func (c *Client) CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   toSubunits(amount),
		"currency": currency,
		"receipt":  receipt,
	}

	var order GatewayOrder
	if err := c.post("/v1/orders", payload, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned empty order id")
	}
	return &order, nil
}

// Refund returns amount (major units) of the given payment to the buyer.
func (c *Client) Refund(paymentID string, amount float64) (*Refund, error) {
	payload := map[string]interface{}{
		"amount": toSubunits(amount),
	}

	var refund Refund
	path := fmt.Sprintf("/v1/payments/%s/refund", paymentID)
	if err := c.post(path, payload, &refund); err != nil {
		return nil, err
	}
	if refund.ID == "" {
		return nil, fmt.Errorf("gateway returned empty refund id")
	}
	return &refund, nil
}

// FetchInvoice retrieves the invoice the gateway generated for a payment.
func (c *Client) FetchInvoice(invoiceID string) (*Invoice, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/invoices/"+invoiceID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	var invoice Invoice
	if err := c.do(req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "order_id|payment_id" keyed with the shared secret, compared in constant
// time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// VerifySignature is the bare verification primitive, exported for reuse and
// tests.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayError
		if json.Unmarshal(body, &gwErr) == nil && gwErr.Error.Description != "" {
			return fmt.Errorf("gateway error: %s", gwErr.Error.Description)
		}
		return fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse gateway response: %v", err)
	}
	return nil
}
