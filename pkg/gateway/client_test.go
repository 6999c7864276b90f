package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, quietLogger())
}

func TestCheckoutForwardsHeadersAndBody(t *testing.T) {
	var gotAuth, gotKey, gotCT string
	var gotBody CheckoutRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Idempotency-Key")
		gotCT = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		json.NewEncoder(w).Encode(CheckoutResponse{Success: true, OrderID: "order-1"})
	}))

	req := &CheckoutRequest{
		Items:       []CheckoutItem{{ItemID: "1", ItemName: "Margherita Pizza", Quantity: 1, Price: 12.99}},
		TotalAmount: 12.99,
	}
	resp, status, err := client.Checkout(context.Background(), "Bearer tok", "key-1", req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "order-1", resp.OrderID)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, 12.99, gotBody.TotalAmount)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "Margherita Pizza", gotBody.Items[0].ItemName)
}

func TestCheckoutOmitsEmptyOptionalHeaders(t *testing.T) {
	var hadAuth, hadKey bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, hadKey = r.Header["X-Idempotency-Key"]
		json.NewEncoder(w).Encode(CheckoutResponse{Success: true})
	}))

	_, _, err := client.Checkout(context.Background(), "", "", &CheckoutRequest{})
	require.NoError(t, err)
	assert.False(t, hadAuth)
	assert.False(t, hadKey)
}

func TestCheckoutDecodesFailureEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(CheckoutResponse{
			Success: false,
			Message: "Payment declined",
			Error:   "card expired",
		})
	}))

	resp, status, err := client.Checkout(context.Background(), "", "", &CheckoutRequest{})
	require.NoError(t, err, "a non-2xx with a decodable body is not a transport error")
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment declined", resp.Message)
	assert.Equal(t, "card expired", resp.Error)
}

func TestListOrdersDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/gateway/orders", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"orders": []OrderSummary{
				{OrderID: "order-1", Status: "CONFIRMED", TotalAmount: 25.98},
				{OrderID: "order-2", Status: "PENDING", TotalAmount: 9.99},
			},
			"count": 2,
		})
	}))

	orders, status, err := client.ListOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-1", orders[0].OrderID)
	assert.Equal(t, 25.98, orders[0].TotalAmount)
}

func TestListOrdersErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	orders, status, err := client.ListOrders(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Nil(t, orders)
}

func TestGetOrderNotFoundIsNotAnError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	sum, status, err := client.GetOrder(context.Background(), "", "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, sum)
}

func TestGetOrderDecodesSummary(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/gateway/orders/order-1", r.URL.Path)
		json.NewEncoder(w).Encode(OrderSummary{OrderID: "order-1", Status: "PREPARING"})
	}))

	sum, status, err := client.GetOrder(context.Background(), "", "order-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PREPARING", sum.Status)
}
