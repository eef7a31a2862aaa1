package httpserver

import (
	"net/http"

	"mrhook/internal/domain"
	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		lines, err := carts.Snapshot(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if lines == nil {
			lines = []domain.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines})
	}
}

func addToCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		if err := carts.AddLine(c.Request.Context(), u.ID, req.ProductID, req.Quantity); err != nil {
			if isDomainError(err) {
				writeError(c, err)
			} else {
				writeBadRequest(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
	}
}

func updateCartQuantityHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		if err := carts.SetQuantity(c.Request.Context(), u.ID, c.Param("productId"), req.Quantity); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
	}
}

func removeFromCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		if err := carts.RemoveLine(c.Request.Context(), u.ID, c.Param("productId")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		if err := carts.Clear(c.Request.Context(), u.ID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
