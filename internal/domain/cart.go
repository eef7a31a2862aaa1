package domain

import "time"

// CartLine is one staged (product, quantity) pairing for a user. Product
// display fields are joined in on the read path so the cart can be rendered
// without extra lookups; they are never persisted on the line itself.
type CartLine struct {
	UserID         string    `json:"-"`
	ProductID      string    `json:"productId"`
	Quantity       int       `json:"quantity"`
	ProductName    string    `json:"productName,omitempty"`
	ImageURL       string    `json:"image,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents,omitempty"`
	CreatedAt      time.Time `json:"addedAt"`
}
