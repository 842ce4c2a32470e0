package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prysmhq/prysm_backend/internal/auth"
	"github.com/prysmhq/prysm_backend/internal/middleware"
)

type UserController struct {
	Auth *auth.Service
}

type updateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

// Me returns the live profile of the authenticated user. Unlike the identity
// in the token claims, this reads the store, so a renamed user sees the new
// name immediately.
func (u *UserController) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := u.Auth.CurrentUser(c.Request.Context(), identity.ID)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile retrieved successfully",
		"data":    user,
	})
}

func (u *UserController) UpdateMe(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.Auth.UpdateProfile(c.Request.Context(), identity.ID, req.Name)
	if err != nil {
		status, msg := authStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile updated successfully",
		"data":    user,
	})
}
