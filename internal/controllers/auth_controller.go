package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prysmhq/prysm_backend/internal/auth"
	"github.com/prysmhq/prysm_backend/internal/middleware"
)

type AuthController struct {
	Auth       *auth.Service
	Production bool
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.Auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	setSessionCookies(c, session, a.Production)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Signed up successfully",
		"data":    session.User,
	})
}

func (a *AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	setSessionCookies(c, session, a.Production)
	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    session.User,
	})
}

func (a *AuthController) Refresh(c *gin.Context) {
	raw, _ := c.Cookie(middleware.RefreshCookie)

	session, err := a.Auth.Rotate(c.Request.Context(), raw)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	setSessionCookies(c, session, a.Production)
	c.JSON(http.StatusOK, gin.H{
		"message": "Tokens refreshed successfully",
		"data":    session.User,
	})
}

// SignOut revokes the active refresh record and clears both cookies. Safe to
// call with no session at all.
func (a *AuthController) SignOut(c *gin.Context) {
	raw, _ := c.Cookie(middleware.RefreshCookie)

	err := a.Auth.SignOut(c.Request.Context(), raw)
	clearSessionCookies(c, a.Production)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// authStatus maps the auth error taxonomy onto HTTP statuses without leaking
// which step rejected the request.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrEmailInUse):
		return http.StatusBadRequest, "email already in use"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrUserNotFound):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, auth.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
