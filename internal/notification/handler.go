// File: internal/notification/handler.go
package notification

import (
	"io"
	"time"

	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the admin notification feed over HTTP.
type Handler struct {
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(aggregator *Aggregator, logger *zap.Logger) *Handler {
	return &Handler{aggregator: aggregator, logger: logger.Named("NotificationHandler")}
}

// RegisterRoutes sets up the admin notification routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, adminRoleMiddleware gin.HandlerFunc) {
	feed := router.Group("/admin/notifications")
	feed.Use(authMiddleware, adminRoleMiddleware)
	{
		feed.GET("", h.getFeed)
		feed.GET("/stream", h.streamFeed)
		feed.POST("/read-all", h.markAllRead)
		feed.POST("/:id/read", h.markRead)
		feed.POST("/:id/approve", h.approve)
		feed.POST("/:id/reject", h.reject)
		feed.POST("/:id/resolve", h.resolve)
	}
}

type feedResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

func (h *Handler) currentFeed() feedResponse {
	return feedResponse{
		Notifications: h.aggregator.Feed(),
		UnreadCount:   h.aggregator.UnreadCount(),
	}
}

func (h *Handler) getFeed(c *gin.Context) {
	common.RespondOK(c, "Notifications retrieved successfully", h.currentFeed())
}

// streamFeed pushes the feed over server-sent events. The client gets the
// current feed immediately and again whenever the feed version changes.
func (h *Handler) streamFeed(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	lastVersion := h.aggregator.Version()
	c.SSEvent("feed", h.currentFeed())
	c.Writer.Flush()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			version := h.aggregator.Version()
			if version == lastVersion {
				return true
			}
			lastVersion = version
			c.SSEvent("feed", h.currentFeed())
			return true
		}
	})
}

func (h *Handler) markRead(c *gin.Context) {
	if err := h.aggregator.MarkAsRead(c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Notification marked as read", gin.H{"unread_count": h.aggregator.UnreadCount()})
}

func (h *Handler) markAllRead(c *gin.Context) {
	h.aggregator.MarkAllAsRead()
	common.RespondOK(c, "All notifications marked as read", gin.H{"unread_count": h.aggregator.UnreadCount()})
}

func (h *Handler) approve(c *gin.Context) {
	if err := h.aggregator.Approve(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Registration approved", h.currentFeed())
}

func (h *Handler) reject(c *gin.Context) {
	if err := h.aggregator.Reject(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Registration rejected", h.currentFeed())
}

func (h *Handler) resolve(c *gin.Context) {
	if err := h.aggregator.Resolve(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Message resolved", h.currentFeed())
}
