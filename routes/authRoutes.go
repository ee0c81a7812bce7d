package routes

import (
	"sudharnayak-be/controllers"
	"sudharnayak-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ctrl *controllers.AuthController, jwtSecret string) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Register)
		auth.POST("/login", ctrl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(jwtSecret), ctrl.Me)
	}
}
