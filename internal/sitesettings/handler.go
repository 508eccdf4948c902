// File: internal/sitesettings/handler.go
package sitesettings

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for site settings.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new site settings handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("SettingsHandler")}
}

// RegisterRoutes sets up the public settings route and the admin update route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, adminRoleMiddleware gin.HandlerFunc) {
	router.GET("/settings", h.getSettings)

	admin := router.Group("/admin/settings")
	admin.Use(authMiddleware, adminRoleMiddleware)
	{
		admin.PATCH("", h.updateSettings)
	}
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings retrieved successfully", settings)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings updated successfully", settings)
}
