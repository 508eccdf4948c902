// File: internal/auth/handler.go
package auth

import (
	"school_portal_backend/internal/common"
	"school_portal_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes session endpoints. Token verification itself lives in the
// auth middleware; these routes just report the resolved account.
type Handler struct {
	userService shared.Service
	logger      *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(userService shared.Service, logger *zap.Logger) *Handler {
	return &Handler{userService: userService, logger: logger.Named("AuthHandler")}
}

// RegisterRoutes sets up the authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	authRoutes := router.Group("/auth")
	authRoutes.Use(authMiddleware)
	{
		authRoutes.POST("/session", h.establishSession)
		authRoutes.GET("/me", h.getCurrentUser)
	}
}

// establishSession resolves (or creates) the local account for the Firebase
// token. The middleware already did the work, so this returns the result.
func (h *Handler) establishSession(c *gin.Context) {
	usr, err := h.currentUser(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Session established", usr)
}

func (h *Handler) getCurrentUser(c *gin.Context) {
	usr, err := h.currentUser(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved", usr)
}

func (h *Handler) currentUser(c *gin.Context) (*shared.User, error) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		return nil, common.ErrUnauthorized.WithDetails("No authenticated user in context.")
	}
	return h.userService.GetUserByID(c.Request.Context(), userID)
}
