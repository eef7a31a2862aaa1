package httpserver

import (
	"net/http"

	usersvc "mrhook/internal/service/user"
	"github.com/gin-gonic/gin"
)

func getProfileHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		profile, err := users.Profile(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func updateProfileHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		var req usersvc.ProfileInput
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		updated, err := users.UpdateProfile(c.Request.Context(), u.ID, req)
		if err != nil {
			if isDomainError(err) {
				writeError(c, err)
			} else {
				writeBadRequest(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
