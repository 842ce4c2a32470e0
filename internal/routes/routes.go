package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prysmhq/prysm_backend/internal/auth"
	"github.com/prysmhq/prysm_backend/internal/config"
	"github.com/prysmhq/prysm_backend/internal/controllers"
	"github.com/prysmhq/prysm_backend/internal/logging"
	"github.com/prysmhq/prysm_backend/internal/middleware"
)

func Register(r *gin.Engine, db *gorm.DB, svc *auth.Service, cfg *config.Config, log logging.Logger) {
	authCtrl := &controllers.AuthController{Auth: svc, Production: cfg.IsProduction()}
	userCtrl := &controllers.UserController{Auth: svc}
	orgCtrl := &controllers.OrganizationController{DB: db}
	globalCtrl := &controllers.GlobalController{DB: db, Log: log}

	// Public
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", authCtrl.SignUp)
		authGroup.POST("/signin", authCtrl.SignIn)
		authGroup.POST("/refresh", authCtrl.Refresh)
		authGroup.POST("/signout", authCtrl.SignOut)
	}

	r.POST("/api/v1/global/errors", globalCtrl.LogError)

	// Protected
	api := r.Group("/api/v1", middleware.AuthMiddleware(svc))
	{
		api.GET("/users/me", userCtrl.Me)
		api.PATCH("/users/me", userCtrl.UpdateMe)

		api.POST("/organizations", orgCtrl.Create)
		api.GET("/organizations", orgCtrl.List)
	}
}
