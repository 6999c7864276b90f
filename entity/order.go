package entity

// Order status values as the gateway reports them. Statuses coming back
// from the gateway are stored verbatim, even ones not listed here.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is the local view of an order. The gateway owns the authoritative
// record; this copy is a cache refreshed by history fetches.
type Order struct {
	ID            string     `json:"id"`
	Items         []CartLine `json:"items"`
	PaymentID     string     `json:"paymentId,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}
