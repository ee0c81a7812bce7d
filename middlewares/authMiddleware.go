package middlewares

import (
	"net/http"
	"strings"

	"sudharnayak-be/models"
	"sudharnayak-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthMiddleware resolves the bearer credential to a caller identity.
// Missing or invalid credentials abort with 401 before any handler runs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			logrus.WithError(err).Debug("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, string(claims.Role))

		c.Next()
	}
}

// RequireAdmin gates status-update and delete operations on the admin role.
// It assumes AuthMiddleware already ran. Pure precondition check, no side
// effects on the data model.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if models.UserRole(role) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
