package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the upstream order/payment gateway. It forwards the
// caller's Authorization header verbatim when present and decodes the
// gateway's envelopes; it never retries.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

type CheckoutItem struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CheckoutRequest struct {
	Items          []CheckoutItem `json:"items"`
	TotalAmount    float64        `json:"totalAmount"`
	PaymentMethod  string         `json:"paymentMethod"`
	CardNumber     string         `json:"cardNumber"`
	CardHolderName string         `json:"cardHolderName"`
	ExpiryDate     string         `json:"expiryDate"`
	CVV            string         `json:"cvv"`
	UserID         string         `json:"userId"`
}

type CheckoutResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	OrderID       string  `json:"orderId"`
	PaymentID     string  `json:"paymentId"`
	TransactionID string  `json:"transactionId"`
	OrderStatus   string  `json:"orderStatus"`
	TotalAmount   float64 `json:"totalAmount"`
	CreatedAt     string  `json:"createdAt"`
	Error         string  `json:"error,omitempty"`
}

type OrderSummary struct {
	OrderID       string  `json:"orderId"`
	PaymentID     string  `json:"paymentId"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"totalAmount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type ordersEnvelope struct {
	Orders []OrderSummary `json:"orders"`
	Count  int            `json:"count"`
}

// Checkout submits the order. The returned status code mirrors the
// gateway's; resp is the decoded body for both success and failure
// envelopes. idempotencyKey rides in a header the gateway may honor.
func (c *Client) Checkout(ctx context.Context, auth, idempotencyKey string, req *CheckoutRequest) (*CheckoutResponse, int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/gateway/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	start := time.Now()
	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	var out CheckoutResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("decode checkout response: %w", err)
	}

	c.Log.WithFields(logrus.Fields{
		"status":       httpResp.StatusCode,
		"orderId":      out.OrderID,
		"responseTime": time.Since(start).String(),
	}).Info("gateway checkout")

	return &out, httpResp.StatusCode, nil
}

// ListOrders fetches the order summaries. The gateway replies with
// {orders, count}; callers get the slice.
func (c *Client) ListOrders(ctx context.Context, auth string) ([]OrderSummary, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/gateway/orders", nil)
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}

	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, httpResp.StatusCode, fmt.Errorf("gateway orders: status %d", httpResp.StatusCode)
	}

	var env ordersEnvelope
	if err := json.NewDecoder(httpResp.Body).Decode(&env); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("decode orders response: %w", err)
	}
	return env.Orders, httpResp.StatusCode, nil
}

// GetOrder fetches one order. A 404 comes back as (nil, 404, nil) so the
// caller can surface not-found without treating it as a fault.
func (c *Client) GetOrder(ctx context.Context, auth, orderID string) (*OrderSummary, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/gateway/orders/"+orderID, nil)
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}

	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusNotFound {
		return nil, http.StatusNotFound, nil
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, httpResp.StatusCode, fmt.Errorf("gateway order %s: status %d", orderID, httpResp.StatusCode)
	}

	var out OrderSummary
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("decode order response: %w", err)
	}
	return &out, httpResp.StatusCode, nil
}
