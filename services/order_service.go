package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"storefront/entity"
	"storefront/pkg/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrOrderNotFound = errors.New("order not found")

// CheckoutResult carries everything the HTTP layer needs to mirror the
// gateway: the local order record on success, the raw gateway envelope,
// and the upstream status code.
type CheckoutResult struct {
	Order   *entity.Order
	Raw     *gateway.CheckoutResponse
	Status  int
	Message string
}

// OrderService is the submission and history proxy plus the local order
// cache. The gateway stays the system of record; the cache is replaced
// wholesale by successful history fetches and left intact by failures.
type OrderService struct {
	mu      sync.Mutex
	gw      *gateway.Client
	log     *logrus.Logger
	byOwner map[string]*orderState
}

type orderState struct {
	orders  []entity.Order
	current *entity.Order
}

func NewOrderService(gw *gateway.Client, log *logrus.Logger) *OrderService {
	return &OrderService{gw: gw, log: log, byOwner: make(map[string]*orderState)}
}

func (s *OrderService) state(owner string) *orderState {
	st, ok := s.byOwner[owner]
	if !ok {
		st = &orderState{}
		s.byOwner[owner] = st
	}
	return st
}

// Checkout forwards the request to the gateway exactly once, with a fresh
// idempotency key. No retry, no rollback: on failure the caller's cart is
// untouched and the result carries the gateway's message and status.
func (s *OrderService) Checkout(ctx context.Context, owner, auth string, req *gateway.CheckoutRequest) (*CheckoutResult, error) {
	key := uuid.NewString()
	resp, status, err := s.gw.Checkout(ctx, auth, key, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{"owner": owner, "error": err.Error()}).Error("checkout transport failure")
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Checkout failed"
		}
		return &CheckoutResult{Raw: resp, Status: status, Message: msg}, nil
	}

	items := make([]entity.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entity.CartLine{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Name:     it.ItemName,
			Price:    it.Price,
		})
	}
	order := &entity.Order{
		ID:            resp.OrderID,
		Items:         items,
		PaymentID:     resp.PaymentID,
		TransactionID: resp.TransactionID,
		Total:         resp.TotalAmount,
		Status:        resp.OrderStatus,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.CreatedAt,
	}

	s.mu.Lock()
	st := s.state(owner)
	st.orders = append([]entity.Order{*order}, st.orders...)
	st.current = order
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"owner": owner, "orderId": order.ID}).Info("order created")
	return &CheckoutResult{Order: order, Raw: resp, Status: status, Message: resp.Message}, nil
}

// List refreshes the history cache from the gateway. The prior cache
// survives any failure.
func (s *OrderService) List(ctx context.Context, owner, auth string) ([]gateway.OrderSummary, int, error) {
	summaries, status, err := s.gw.ListOrders(ctx, auth)
	if err != nil {
		return nil, status, err
	}

	orders := make([]entity.Order, 0, len(summaries))
	for _, sum := range summaries {
		orders = append(orders, entity.Order{
			ID:            sum.OrderID,
			PaymentID:     sum.PaymentID,
			TransactionID: sum.TransactionID,
			Total:         sum.TotalAmount,
			Status:        sum.Status,
			CreatedAt:     sum.CreatedAt,
			UpdatedAt:     sum.UpdatedAt,
		})
	}

	s.mu.Lock()
	s.state(owner).orders = orders
	s.mu.Unlock()

	return summaries, status, nil
}

// GetByID forwards the single-order lookup. An upstream 404 surfaces as
// ErrOrderNotFound, not a fault. A found order updates the cached copy in
// place (status strings accepted verbatim) or is prepended when new.
func (s *OrderService) GetByID(ctx context.Context, owner, auth, orderID string) (*entity.Order, int, error) {
	sum, status, err := s.gw.GetOrder(ctx, auth, orderID)
	if err != nil {
		return nil, status, err
	}
	if sum == nil {
		return nil, status, ErrOrderNotFound
	}

	order := entity.Order{
		ID:            sum.OrderID,
		PaymentID:     sum.PaymentID,
		TransactionID: sum.TransactionID,
		Total:         sum.TotalAmount,
		Status:        sum.Status,
		CreatedAt:     sum.CreatedAt,
		UpdatedAt:     sum.UpdatedAt,
	}

	s.mu.Lock()
	st := s.state(owner)
	replaced := false
	for i := range st.orders {
		if st.orders[i].ID == orderID {
			st.orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		st.orders = append([]entity.Order{order}, st.orders...)
	}
	st.current = &order
	s.mu.Unlock()

	return &order, status, nil
}

// UpdateStatus overwrites the cached order's status without validating the
// transition; the gateway is the authority on what transitions mean.
func (s *OrderService) UpdateStatus(owner, orderID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(owner)
	updated := false
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range st.orders {
		if st.orders[i].ID == orderID {
			st.orders[i].Status = status
			st.orders[i].UpdatedAt = now
			updated = true
		}
	}
	if st.current != nil && st.current.ID == orderID {
		st.current.Status = status
		st.current.UpdatedAt = now
	}
	return updated
}

// Cancel is local-only: delivered and already-cancelled orders refuse.
// The check and the overwrite happen under one lock so a concurrent
// status update cannot slip in between them.
func (s *OrderService) Cancel(owner, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(owner)
	for i := range st.orders {
		if st.orders[i].ID != orderID {
			continue
		}
		if st.orders[i].Status == entity.OrderStatusDelivered || st.orders[i].Status == entity.OrderStatusCancelled {
			return errors.New("cannot cancel this order")
		}
		now := time.Now().UTC().Format(time.RFC3339)
		st.orders[i].Status = entity.OrderStatusCancelled
		st.orders[i].UpdatedAt = now
		if st.current != nil && st.current.ID == orderID {
			st.current.Status = entity.OrderStatusCancelled
			st.current.UpdatedAt = now
		}
		return nil
	}
	return ErrOrderNotFound
}

func (s *OrderService) Orders(owner string) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(owner)
	out := make([]entity.Order, len(st.orders))
	copy(out, st.orders)
	return out
}

// GetRecent returns the newest cached orders, most recent first. A
// non-positive limit means all of them.
func (s *OrderService) GetRecent(owner string, limit int) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.state(owner).orders
	if limit <= 0 || limit > len(orders) {
		limit = len(orders)
	}
	out := make([]entity.Order, limit)
	copy(out, orders[:limit])
	return out
}

func (s *OrderService) GetCached(owner, orderID string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.state(owner).orders {
		if o.ID == orderID {
			cp := o
			return &cp
		}
	}
	return nil
}

func (s *OrderService) ClearCurrent(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(owner).current = nil
}
