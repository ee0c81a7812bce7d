package routes

import (
	"sudharnayak-be/controllers"
	"sudharnayak-be/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IssueRoutes sets up the issue routes. Listing and detail are public;
// creation is rate limited; status update and delete require the admin role.
func IssueRoutes(r *gin.Engine, ctrl *controllers.IssueController, jwtSecret string, redisClient *redis.Client, limitPrefix string, dailyLimit int) {
	issues := r.Group("/api/issues")
	{
		issues.GET("", ctrl.List)
		issues.GET("/:id", ctrl.Get)

		authed := issues.Group("", middlewares.AuthMiddleware(jwtSecret))
		{
			authed.POST("", middlewares.IssueRateLimiter(redisClient, limitPrefix, dailyLimit), ctrl.Create)
			authed.GET("/my-issues", ctrl.MyIssues)
			authed.PUT("/:id", middlewares.RequireAdmin(), ctrl.UpdateStatus)
			authed.DELETE("/:id", middlewares.RequireAdmin(), ctrl.Delete)
		}
	}
}
