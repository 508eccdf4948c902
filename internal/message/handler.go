// File: internal/message/handler.go
package message

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for contact messages.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new contact message handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("MessageHandler")}
}

// RegisterRoutes sets up the public contact route and the admin message routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, adminRoleMiddleware gin.HandlerFunc) {
	router.POST("/contact", h.submitMessage)

	adminMessages := router.Group("/admin/messages")
	adminMessages.Use(authMiddleware, adminRoleMiddleware)
	{
		adminMessages.GET("", h.listMessages)
		adminMessages.GET("/:id", h.getMessage)
		adminMessages.POST("/:id/read", h.markMessageRead)
	}
}

func (h *Handler) submitMessage(c *gin.Context) {
	var req SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message submitted successfully", gin.H{
		"id":             msg.ID,
		"reference_code": msg.ReferenceCode,
	})
}

func (h *Handler) listMessages(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	status := c.Query("status")

	msgs, pagination, err := h.service.ListMessages(c.Request.Context(), status, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		responses = append(responses, ToMessageResponse(&msgs[i]))
	}
	common.RespondPaginated(c, "Messages retrieved successfully", responses, pagination)
}

func (h *Handler) getMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid message ID format."))
		return
	}

	msg, err := h.service.GetMessageByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Message retrieved successfully", ToMessageResponse(msg))
}

func (h *Handler) markMessageRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid message ID format."))
		return
	}

	if err := h.service.MarkMessageAsRead(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Message marked as read", gin.H{"id": id})
}
