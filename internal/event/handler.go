// File: internal/event/handler.go
package event

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for events.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new event handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("EventHandler")}
}

// RegisterRoutes sets up the public event routes and the staff management routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, staffRoleMiddleware gin.HandlerFunc) {
	events := router.Group("/events")
	{
		events.GET("", h.listUpcoming)
		events.GET("/archive", h.listArchived)
		events.GET("/:id", h.getEvent)
	}

	staff := router.Group("/admin/events")
	staff.Use(authMiddleware, staffRoleMiddleware)
	{
		staff.POST("", h.createEvent)
		staff.DELETE("/:id", h.deleteEvent)
	}
}

func (h *Handler) listUpcoming(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	events, pagination, err := h.service.UpcomingEvents(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondList(c, events, pagination)
}

func (h *Handler) listArchived(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	events, pagination, err := h.service.ArchivedEvents(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondList(c, events, pagination)
}

func (h *Handler) respondList(c *gin.Context, events []Event, pagination *common.Pagination) {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, ToEventResponse(&events[i]))
	}
	common.RespondPaginated(c, "Events retrieved successfully", responses, pagination)
}

func (h *Handler) getEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid event ID format."))
		return
	}
	evt, err := h.service.GetEventByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Event retrieved successfully", ToEventResponse(evt))
}

func (h *Handler) createEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	evt, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Event created successfully", ToEventResponse(evt))
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid event ID format."))
		return
	}
	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
