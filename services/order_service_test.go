package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"storefront/entity"
	"storefront/pkg/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T, handler http.Handler) (*OrderService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw := gateway.NewClient(srv.URL, 5*time.Second, testLogger())
	return NewOrderService(gw, testLogger()), srv
}

func checkoutPayload() *gateway.CheckoutRequest {
	return &gateway.CheckoutRequest{
		Items: []gateway.CheckoutItem{
			{ItemID: "1", ItemName: "Margherita Pizza", Quantity: 2, Price: 12.99},
		},
		TotalAmount:    25.98,
		PaymentMethod:  "card",
		CardNumber:     "4242424242424242",
		CardHolderName: "Test User",
		ExpiryDate:     "12/27",
		CVV:            "123",
	}
}

func TestCheckoutSuccessCachesOrder(t *testing.T) {
	var gotKey string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/checkout", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Idempotency-Key")
		json.NewEncoder(w).Encode(gateway.CheckoutResponse{
			Success:       true,
			Message:       "Order placed successfully",
			OrderID:       "order-100",
			PaymentID:     "pay-100",
			TransactionID: "txn-100",
			OrderStatus:   entity.OrderStatusConfirmed,
			TotalAmount:   25.98,
			CreatedAt:     "2026-08-29T12:00:00Z",
		})
	})
	svc, _ := newOrderService(t, mux)

	result, err := svc.Checkout(context.Background(), "u1", "", checkoutPayload())
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.NotEmpty(t, gotKey, "idempotency key must ride with the request")
	assert.Equal(t, "order-100", result.Order.ID)
	assert.Equal(t, entity.OrderStatusConfirmed, result.Order.Status)
	assert.Equal(t, 25.98, result.Order.Total)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, "Margherita Pizza", result.Order.Items[0].Name)

	cached := svc.Orders("u1")
	require.Len(t, cached, 1)
	assert.Equal(t, "order-100", cached[0].ID)
}

func TestCheckoutDeclinedSurfacesGatewayMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(gateway.CheckoutResponse{
			Success: false,
			Message: "Payment declined",
			Error:   "insufficient funds",
		})
	})
	svc, _ := newOrderService(t, mux)

	result, err := svc.Checkout(context.Background(), "u1", "", checkoutPayload())
	require.NoError(t, err)
	assert.Nil(t, result.Order)
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, "Payment declined", result.Message)
	assert.Equal(t, "insufficient funds", result.Raw.Error)
	assert.Empty(t, svc.Orders("u1"), "failed checkout must not be cached")
}

func TestCheckoutSubmitsExactlyOnceWithFreshKeys(t *testing.T) {
	var keys []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/checkout", func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		json.NewEncoder(w).Encode(gateway.CheckoutResponse{
			Success: true, OrderID: "order-" + r.Header.Get("X-Idempotency-Key")[:8],
			OrderStatus: entity.OrderStatusPending,
		})
	})
	svc, _ := newOrderService(t, mux)

	_, err := svc.Checkout(context.Background(), "u1", "", checkoutPayload())
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), "u1", "", checkoutPayload())
	require.NoError(t, err)

	require.Len(t, keys, 2, "each submission goes out exactly once")
	assert.NotEqual(t, keys[0], keys[1], "each submission carries its own key")
}

func TestCheckoutTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	gw := gateway.NewClient(srv.URL, time.Second, testLogger())
	svc := NewOrderService(gw, testLogger())

	result, err := svc.Checkout(context.Background(), "u1", "", checkoutPayload())
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestListReplacesCacheOnSuccess(t *testing.T) {
	page := []gateway.OrderSummary{
		{OrderID: "order-2", Status: entity.OrderStatusPreparing, TotalAmount: 9.99},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"orders": page, "count": len(page)})
	})
	svc, _ := newOrderService(t, mux)

	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "stale-1"}, {ID: "stale-2"}}
	svc.mu.Unlock()

	summaries, status, err := svc.List(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, summaries, 1)

	cached := svc.Orders("u1")
	require.Len(t, cached, 1)
	assert.Equal(t, "order-2", cached[0].ID)
}

func TestListFailurePreservesCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svc, _ := newOrderService(t, mux)

	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "order-1"}}
	svc.mu.Unlock()

	_, status, err := svc.List(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, status)

	cached := svc.Orders("u1")
	require.Len(t, cached, 1, "failed refresh must leave the cache intact")
	assert.Equal(t, "order-1", cached[0].ID)
}

func TestGetByIDNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/orders/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	svc, _ := newOrderService(t, mux)

	order, status, err := svc.GetByID(context.Background(), "u1", "", "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, order)
}

func TestGetByIDUpdatesCachedCopy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gateway/orders/order-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gateway.OrderSummary{
			OrderID: "order-1",
			Status:  entity.OrderStatusReady,
		})
	})
	svc, _ := newOrderService(t, mux)

	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "order-1", Status: entity.OrderStatusPending}}
	svc.mu.Unlock()

	order, _, err := svc.GetByID(context.Background(), "u1", "", "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, order.Status)

	cached := svc.GetCached("u1", "order-1")
	require.NotNil(t, cached)
	assert.Equal(t, entity.OrderStatusReady, cached.Status, "lookup must refresh the cached copy")
}

func TestUpdateStatusAcceptsAnyTransition(t *testing.T) {
	svc := NewOrderService(nil, testLogger())
	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "order-1", Status: entity.OrderStatusDelivered}}
	svc.mu.Unlock()

	// Gateway status strings are authoritative; no transition check here.
	assert.True(t, svc.UpdateStatus("u1", "order-1", entity.OrderStatusPending))
	assert.Equal(t, entity.OrderStatusPending, svc.GetCached("u1", "order-1").Status)
	assert.False(t, svc.UpdateStatus("u1", "missing", entity.OrderStatusReady))
}

func TestCancelRules(t *testing.T) {
	svc := NewOrderService(nil, testLogger())
	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{
		{ID: "pending", Status: entity.OrderStatusPending},
		{ID: "delivered", Status: entity.OrderStatusDelivered},
		{ID: "cancelled", Status: entity.OrderStatusCancelled},
	}
	svc.mu.Unlock()

	require.NoError(t, svc.Cancel("u1", "pending"))
	assert.Equal(t, entity.OrderStatusCancelled, svc.GetCached("u1", "pending").Status)

	assert.Error(t, svc.Cancel("u1", "delivered"))
	assert.Error(t, svc.Cancel("u1", "cancelled"))
	assert.ErrorIs(t, svc.Cancel("u1", "missing"), ErrOrderNotFound)
}

func TestCancelConcurrentWithStatusUpdates(t *testing.T) {
	svc := NewOrderService(nil, testLogger())
	svc.mu.Lock()
	for i := 0; i < 50; i++ {
		svc.state("u1").orders = append(svc.state("u1").orders,
			entity.Order{ID: "order-" + strconv.Itoa(i), Status: entity.OrderStatusPending})
	}
	svc.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := "order-" + strconv.Itoa(i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.UpdateStatus("u1", id, entity.OrderStatusConfirmed)
		}()
		go func() {
			defer wg.Done()
			_ = svc.Cancel("u1", id)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		status := svc.GetCached("u1", "order-"+strconv.Itoa(i)).Status
		assert.Contains(t, []string{entity.OrderStatusConfirmed, entity.OrderStatusCancelled}, status)
	}
}

func TestGetRecentLimits(t *testing.T) {
	svc := NewOrderService(nil, testLogger())
	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "newest"}, {ID: "middle"}, {ID: "oldest"}}
	svc.mu.Unlock()

	recent := svc.GetRecent("u1", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "newest", recent[0].ID)
	assert.Equal(t, "middle", recent[1].ID)

	assert.Len(t, svc.GetRecent("u1", 0), 3, "non-positive limit returns everything")
	assert.Len(t, svc.GetRecent("u1", 10), 3)
}

func TestOrdersIsolatedPerOwner(t *testing.T) {
	svc := NewOrderService(nil, testLogger())
	svc.mu.Lock()
	svc.state("u1").orders = []entity.Order{{ID: "order-1"}}
	svc.mu.Unlock()

	assert.Len(t, svc.Orders("u1"), 1)
	assert.Empty(t, svc.Orders("u2"))
}
