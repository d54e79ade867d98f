package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentGateway creates payment intents on the external processor. The
// shared secret used for signature verification is configured out-of-band
// and never travels through this interface.
type PaymentGateway interface {
	// CreateOrder registers an order with the gateway and returns the
	// gateway-assigned order id. amount is in minor currency units.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
}

type razorpayClient struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

// NewRazorpayClient returns a PaymentGateway backed by the Razorpay Orders
// API, authenticated with basic auth on the key pair.
func NewRazorpayClient(keyID, keySecret string) PaymentGateway {
	return &razorpayClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.razorpay.com/v1",
		keyID:      keyID,
		keySecret:  keySecret,
	}
}

type razorpayOrderResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (c *razorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gateway order create failed: status %d: %s", resp.StatusCode, raw)
	}

	var result razorpayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode order response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}
	return result.ID, nil
}
