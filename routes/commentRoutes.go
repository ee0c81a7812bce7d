package routes

import (
	"sudharnayak-be/controllers"
	"sudharnayak-be/middlewares"

	"github.com/gin-gonic/gin"
)

// CommentRoutes sets up the comment routes
func CommentRoutes(r *gin.Engine, ctrl *controllers.CommentController, jwtSecret string) {
	comments := r.Group("/api/comments")
	{
		comments.POST("/:issueId", middlewares.AuthMiddleware(jwtSecret), ctrl.Add)
		comments.GET("/:issueId", ctrl.List)
	}
}
