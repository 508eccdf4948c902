// File: internal/gallery/handler.go
package gallery

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the gallery.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new gallery handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("GalleryHandler")}
}

// RegisterRoutes sets up the public gallery route and the staff upload routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, staffRoleMiddleware gin.HandlerFunc) {
	router.GET("/gallery", h.listImages)

	staff := router.Group("/admin/gallery")
	staff.Use(authMiddleware, staffRoleMiddleware)
	{
		staff.POST("", h.uploadImage)
		staff.DELETE("/:id", h.deleteImage)
	}
}

func (h *Handler) listImages(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	images, pagination, err := h.service.ListImages(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]GalleryImageResponse, 0, len(images))
	for i := range images {
		responses = append(responses, ToGalleryImageResponse(&images[i]))
	}
	common.RespondPaginated(c, "Gallery retrieved successfully", responses, pagination)
}

// uploadImage accepts a multipart form with an "image" file and optional
// bilingual captions.
func (h *Handler) uploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("An 'image' file field is required."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not read the uploaded file."))
		return
	}
	defer file.Close()

	img, err := h.service.UploadImage(
		c.Request.Context(),
		common.GetUserIDFromContext(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		c.PostForm("caption_fr"),
		c.PostForm("caption_ar"),
	)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Image uploaded successfully", ToGalleryImageResponse(img))
}

func (h *Handler) deleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid image ID format."))
		return
	}
	if err := h.service.DeleteImage(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
