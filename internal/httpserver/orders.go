package httpserver

import (
	"errors"
	"net/http"

	"mrhook/internal/domain"
	"github.com/gin-gonic/gin"
)

func commitOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		order, err := orders.Commit(c.Request.Context(), u.ID)
		if err != nil {
			commitOutcomes.WithLabelValues(commitOutcome(err)).Inc()
			writeError(c, err)
			return
		}
		commitOutcomes.WithLabelValues(outcomeCommitted).Inc()
		c.JSON(http.StatusCreated, order)
	}
}

func commitOutcome(err error) string {
	var short *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return outcomeEmptyCart
	case errors.As(err, &short):
		return outcomeInsufficient
	default:
		return outcomeError
	}
}

func orderHistoryHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		history, err := orders.History(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if history == nil {
			history = []domain.Order{}
		}
		c.JSON(http.StatusOK, history)
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		order, err := orders.Get(c.Request.Context(), u.ID, c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
