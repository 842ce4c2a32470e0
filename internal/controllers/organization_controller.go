package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prysmhq/prysm_backend/internal/middleware"
	"github.com/prysmhq/prysm_backend/internal/models"
)

type OrganizationController struct {
	DB *gorm.DB
}

type createOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type organizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Create makes an organization and an OWNER membership for the caller in one
// transaction; a failed membership insert rolls the organization back too.
func (o *OrganizationController) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A user may not own two organizations with the same name.
	var count int64
	err := o.DB.WithContext(c.Request.Context()).
		Model(&models.Organization{}).
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("organizations.name = ? AND memberships.user_id = ?", req.Name, identity.ID).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you already have an organization with this name"})
		return
	}

	org := models.Organization{ID: uuid.NewString(), Name: req.Name}
	err = o.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		membership := models.Membership{
			ID:             uuid.NewString(),
			UserID:         identity.ID,
			OrganizationID: org.ID,
			Role:           "OWNER",
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Organization created successfully",
		"data":    organizationResponse{ID: org.ID, Name: org.Name, Role: "OWNER", CreatedAt: org.CreatedAt},
	})
}

// List returns the organizations the caller belongs to, with their role.
func (o *OrganizationController) List(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	type row struct {
		ID        string
		Name      string
		Role      string
		CreatedAt time.Time
	}
	var rows []row
	err := o.DB.WithContext(c.Request.Context()).
		Model(&models.Organization{}).
		Select("organizations.id, organizations.name, memberships.role, organizations.created_at").
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", identity.ID).
		Order("organizations.created_at").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		return
	}

	out := make([]organizationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, organizationResponse{ID: r.ID, Name: r.Name, Role: r.Role, CreatedAt: r.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Organizations retrieved successfully",
		"data":    out,
	})
}
