package domain

import "time"

// Order is immutable once created: lines, unit prices and the total are
// frozen at commit time and never follow later catalog changes.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"-"`
	TotalCents int64       `json:"totalCents"`
	PlacedAt   time.Time   `json:"placedAt"`
	Lines      []OrderLine `json:"lines"`
}

type OrderLine struct {
	OrderID        string `json:"-"`
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}
