package httpserver

import (
	"errors"
	"net/http"

	"mrhook/internal/domain"
	usersvc "mrhook/internal/service/user"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
	User      domain.User `json:"user"`
}

func registerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		u, token, err := users.Register(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"message": "user already exists"})
				return
			}
			writeBadRequest(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionResponse{
			Token:     token,
			ExpiresIn: users.AccessTTLSeconds(),
			User:      *u,
		})
	}
}

func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		u, token, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, usersvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse{
			Token:     token,
			ExpiresIn: users.AccessTTLSeconds(),
			User:      *u,
		})
	}
}
