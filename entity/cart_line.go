package entity

// CartLine is one catalog item in the cart with the quantity selected.
// Name, price and image are snapshotted at add-time on purpose: a line is
// priced as it was when the customer picked it, not as the catalog reads
// later.
type CartLine struct {
	ItemID   string  `json:"itemId"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}
