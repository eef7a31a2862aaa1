package httpserver

import (
	"errors"
	"net/http"

	"mrhook/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// reported as a generic persistence failure, which the client may retry
// whole since nothing partial was committed.
func writeError(c *gin.Context, err error) {
	var short *domain.InsufficientStockError
	switch {
	case errors.As(err, &short):
		c.JSON(http.StatusConflict, gin.H{
			"message":   "insufficient stock",
			"shortages": short.Shortages,
		})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

// isDomainError reports whether err belongs to the domain failure taxonomy,
// as opposed to a request validation error.
func isDomainError(err error) bool {
	var short *domain.InsufficientStockError
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrPersistence) ||
		errors.As(err, &short)
}
