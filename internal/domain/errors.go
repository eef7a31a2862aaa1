package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when a commit is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPersistence wraps storage-layer faults. Nothing partial was
	// committed, so the caller may retry the whole operation.
	ErrPersistence = errors.New("persistence failure")
)

// StockShortage describes one cart line that could not be reserved.
type StockShortage struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError aborts a commit and lists every short line, so the
// caller can offer quantity adjustments instead of retrying blindly.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s requested=%d available=%d", s.ProductID, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
