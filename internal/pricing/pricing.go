// Package pricing freezes catalog prices onto order lines. A snapshot is
// taken once per line at commit time and never re-read, so historical orders
// stay auditable when the catalog price moves.
package pricing

import "mrhook/internal/domain"

// Snapshot returns the unit price to freeze for a product at commit time.
func Snapshot(p domain.Product) int64 {
	return p.PriceCents
}

// Subtotal is the frozen line subtotal: quantity times the snapshot price.
func Subtotal(unitPriceCents int64, quantity int) int64 {
	return unitPriceCents * int64(quantity)
}

// Total sums line subtotals. Order totals must be persisted equal to this
// sum, never computed independently.
func Total(lines []domain.OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.SubtotalCents
	}
	return total
}
