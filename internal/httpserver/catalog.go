package httpserver

import (
	"net/http"
	"strconv"

	"mrhook/internal/domain"
	productrepo "mrhook/internal/repository/product"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := productrepo.ListFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}
		if v := c.Query("minPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "minPrice must be an integer amount in pence"})
				return
			}
			filter.MinPrice = &cents
		}
		if v := c.Query("maxPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be an integer amount in pence"})
				return
			}
			filter.MaxPrice = &cents
		}

		products, err := catalog.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Get(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func availabilityHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty := 1
		if v := c.Query("qty"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "qty must be a positive integer"})
				return
			}
			qty = n
		}
		avail, err := catalog.Availability(c.Request.Context(), c.Param("productId"), qty)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, avail)
	}
}
