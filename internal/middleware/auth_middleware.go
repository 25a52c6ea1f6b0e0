package middleware

import (
	"strings"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the Bearer token and sets user_id and
// user_role on the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.UserType)
		c.Set("session_id", claims.SessionID)

		c.Next()
	}
}

// AdminRequired guards admin-only routes. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return roleRequired(models.RoleAdmin)
}

// DriverRequired guards driver-only routes. Must run after AuthRequired.
func DriverRequired() gin.HandlerFunc {
	return roleRequired(models.RoleDriver)
}

// PassengerRequired guards passenger-only routes. Must run after
// AuthRequired.
func PassengerRequired() gin.HandlerFunc {
	return roleRequired(models.RolePassenger)
}

func roleRequired(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if roleStr, ok := userRole.(string); !ok || roleStr != string(role) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
