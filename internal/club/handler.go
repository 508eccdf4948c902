// File: internal/club/handler.go
package club

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for clubs.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new club handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("ClubHandler")}
}

// RegisterRoutes sets up the public club routes and the admin management routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, adminRoleMiddleware gin.HandlerFunc) {
	clubs := router.Group("/clubs")
	{
		clubs.GET("", h.listActiveClubs)
		clubs.GET("/:slug", h.getClub)
	}

	admin := router.Group("/admin/clubs")
	admin.Use(authMiddleware, adminRoleMiddleware)
	{
		admin.GET("", h.listAllClubs)
		admin.POST("", h.createClub)
		admin.PATCH("/:id", h.updateClub)
		admin.DELETE("/:id", h.deleteClub)
	}
}

func (h *Handler) listActiveClubs(c *gin.Context) {
	clubs, err := h.service.ActiveClubs(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondList(c, clubs)
}

func (h *Handler) listAllClubs(c *gin.Context) {
	clubs, err := h.service.AllClubs(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondList(c, clubs)
}

func (h *Handler) respondList(c *gin.Context, clubs []Club) {
	responses := make([]ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, ToClubResponse(&clubs[i]))
	}
	common.RespondOK(c, "Clubs retrieved successfully", responses)
}

func (h *Handler) getClub(c *gin.Context) {
	club, err := h.service.GetClubBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Club retrieved successfully", ToClubResponse(club))
}

func (h *Handler) createClub(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	club, err := h.service.CreateClub(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Club created successfully", ToClubResponse(club))
}

func (h *Handler) updateClub(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid club ID format."))
		return
	}
	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	club, err := h.service.UpdateClub(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Club updated successfully", ToClubResponse(club))
}

func (h *Handler) deleteClub(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid club ID format."))
		return
	}
	if err := h.service.DeleteClub(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
