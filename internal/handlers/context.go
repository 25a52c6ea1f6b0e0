package handlers

import (
	"ridedispatch/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID pulls the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}

func currentUserRole(c *gin.Context) models.UserRole {
	value, exists := c.Get("user_role")
	if !exists {
		return ""
	}

	role, _ := value.(string)
	return models.UserRole(role)
}
