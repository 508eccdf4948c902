// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/firebase"
	"school_portal_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the Firebase ID token on the Authorization header and
// resolves the local account, creating a pending one on first sight.
func AuthMiddleware(firebaseService *firebase.FirebaseService, userService shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := firebaseService.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Firebase token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired authentication token."))
			return
		}

		usr, _, err := userService.GetOrCreateUserFromFirebaseClaims(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve local account from Firebase claims", zap.Error(err), zap.String("uid", token.UID))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not resolve user account."))
			return
		}

		if usr.Status == common.StatusRejected {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("This account has been rejected."))
			return
		}

		c.Set(common.UserIDKey, usr.ID)
		c.Set(common.UserRoleKey, usr.Role)
		c.Set(common.UserStatusKey, usr.Status)
		c.Set(common.FirebaseUIDKey, usr.FirebaseUID)

		logger.Debug("User authenticated",
			zap.String("userID", usr.ID.String()),
			zap.String("role", usr.Role),
			zap.String("status", usr.Status),
		)

		c.Next()
	}
}

// RoleAuthMiddleware checks that the authenticated user has one of the allowed
// roles. Pending accounts never pass a role gate.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if common.GetUserStatusFromContext(c) != common.StatusActive {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Your account is awaiting administrator approval."))
			return
		}

		userRole := common.GetUserRoleFromContext(c)
		if userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
