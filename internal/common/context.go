// File: internal/common/context.go
package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthorizationHeader is the header name for the authorization token.
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens.
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for the authenticated user's local ID.
	UserIDKey = "userID"
	// UserRoleKey is the context key for the authenticated user's role.
	UserRoleKey = "userRole"
	// UserStatusKey is the context key for the authenticated account's status.
	UserStatusKey = "userStatus"
	// FirebaseUIDKey is the context key for the Firebase UID.
	FirebaseUIDKey = "firebaseUID"
)

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserRoleFromContext retrieves the user role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) string {
	val, exists := c.Get(UserRoleKey)
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}

// GetUserStatusFromContext retrieves the account status from the Gin context.
func GetUserStatusFromContext(c *gin.Context) string {
	val, exists := c.Get(UserStatusKey)
	if !exists {
		return ""
	}
	status, ok := val.(string)
	if !ok {
		return ""
	}
	return status
}

// GetFirebaseUIDFromContext retrieves the Firebase UID from the Gin context.
func GetFirebaseUIDFromContext(c *gin.Context) string {
	val, exists := c.Get(FirebaseUIDKey)
	if !exists {
		return ""
	}
	uid, ok := val.(string)
	if !ok {
		return ""
	}
	return uid
}
