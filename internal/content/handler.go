// File: internal/content/handler.go
package content

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for news, announcements and testimonials.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new content handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("ContentHandler")}
}

// RegisterRoutes sets up the public content routes and the admin management
// routes. Teachers may write news; only admins manage announcements and
// testimonials.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, staffRoleMiddleware, adminRoleMiddleware gin.HandlerFunc) {
	news := router.Group("/news")
	{
		news.GET("", h.listPublishedNews)
		news.GET("/search", h.searchNews)
		news.GET("/:slug", h.getNewsBySlug)
	}
	router.GET("/announcements", h.listActiveAnnouncements)
	router.GET("/testimonials", h.listApprovedTestimonials)
	router.POST("/testimonials", authMiddleware, h.submitTestimonial)

	staffNews := router.Group("/admin/news")
	staffNews.Use(authMiddleware, staffRoleMiddleware)
	{
		staffNews.POST("", h.createNews)
		staffNews.GET("", h.listAllNews)
		staffNews.PATCH("/:id", h.updateNews)
		staffNews.POST("/:id/publish", h.publishNews)
		staffNews.POST("/:id/unpublish", h.unpublishNews)
		staffNews.DELETE("/:id", h.deleteNews)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminRoleMiddleware)
	{
		admin.POST("/announcements", h.createAnnouncement)
		admin.POST("/announcements/:id/deactivate", h.deactivateAnnouncement)
		admin.DELETE("/announcements/:id", h.deleteAnnouncement)
		admin.POST("/testimonials/:id/approve", h.approveTestimonial)
	}
}

// --- News ---

func (h *Handler) listPublishedNews(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	posts, pagination, err := h.service.ListNewsPosts(c.Request.Context(), true, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondNewsList(c, posts, pagination)
}

func (h *Handler) listAllNews(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	posts, pagination, err := h.service.ListNewsPosts(c.Request.Context(), false, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondNewsList(c, posts, pagination)
}

func (h *Handler) respondNewsList(c *gin.Context, posts []NewsPost, pagination *common.Pagination) {
	responses := make([]NewsPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, ToNewsPostResponse(&posts[i]))
	}
	common.RespondPaginated(c, "News posts retrieved successfully", responses, pagination)
}

func (h *Handler) searchNews(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	query := NewsSearchQuery{
		Term:     c.Query("q"),
		Locale:   c.DefaultQuery("locale", common.LocaleFrench),
		Page:     page,
		PageSize: pageSize,
	}
	posts, pagination, err := h.service.SearchNewsPosts(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondNewsList(c, posts, pagination)
}

func (h *Handler) getNewsBySlug(c *gin.Context) {
	post, err := h.service.GetNewsPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News post retrieved successfully", ToNewsPostResponse(post))
}

func (h *Handler) createNews(c *gin.Context) {
	var req CreateNewsPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}

	authorID := common.GetUserIDFromContext(c)
	post, err := h.service.CreateNewsPost(c.Request.Context(), authorID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "News post created successfully", ToNewsPostResponse(post))
}

func (h *Handler) updateNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid news post ID format."))
		return
	}

	var req UpdateNewsPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}

	post, err := h.service.UpdateNewsPost(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News post updated successfully", ToNewsPostResponse(post))
}

func (h *Handler) publishNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid news post ID format."))
		return
	}
	post, err := h.service.PublishNewsPost(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News post published successfully", ToNewsPostResponse(post))
}

func (h *Handler) unpublishNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid news post ID format."))
		return
	}
	post, err := h.service.UnpublishNewsPost(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News post unpublished successfully", ToNewsPostResponse(post))
}

func (h *Handler) deleteNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid news post ID format."))
		return
	}
	if err := h.service.DeleteNewsPost(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

// --- Announcements ---

func (h *Handler) listActiveAnnouncements(c *gin.Context) {
	anns, err := h.service.ActiveAnnouncements(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Announcements retrieved successfully", anns)
}

func (h *Handler) createAnnouncement(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	ann, err := h.service.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Announcement created successfully", ann)
}

func (h *Handler) deactivateAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid announcement ID format."))
		return
	}
	if err := h.service.DeactivateAnnouncement(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Announcement deactivated", gin.H{"id": id})
}

func (h *Handler) deleteAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid announcement ID format."))
		return
	}
	if err := h.service.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

// --- Testimonials ---

func (h *Handler) listApprovedTestimonials(c *gin.Context) {
	tsts, err := h.service.ApprovedTestimonials(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Testimonials retrieved successfully", tsts)
}

func (h *Handler) submitTestimonial(c *gin.Context) {
	var req SubmitTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	tst, err := h.service.SubmitTestimonial(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Testimonial submitted for review", tst)
}

func (h *Handler) approveTestimonial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid testimonial ID format."))
		return
	}
	tst, err := h.service.ApproveTestimonial(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Testimonial approved", tst)
}
