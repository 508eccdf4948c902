// File: internal/course/handler.go
package course

import (
	"school_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for courses and enrollments.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new course handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("CourseHandler")}
}

// RegisterRoutes sets up course routes. Browsing requires any active account;
// management requires teacher or admin.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, activeMiddleware, staffRoleMiddleware gin.HandlerFunc) {
	courses := router.Group("/courses")
	courses.Use(authMiddleware, activeMiddleware)
	{
		courses.GET("", h.listPublished)
		courses.GET("/:id", h.getCourse)
		courses.POST("/:id/enroll", h.enroll)
		courses.DELETE("/:id/enroll", h.withdraw)
		courses.GET("/enrollments/mine", h.myEnrollments)
	}

	staff := router.Group("/admin/courses")
	staff.Use(authMiddleware, staffRoleMiddleware)
	{
		staff.POST("", h.createCourse)
		staff.GET("/mine", h.myCourses)
		staff.POST("/:id/publish", h.publishCourse)
		staff.GET("/:id/enrollments", h.courseEnrollments)
		staff.DELETE("/:id", h.deleteCourse)
	}
}

func (h *Handler) listPublished(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	courses, pagination, err := h.service.PublishedCourses(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, ToCourseResponse(&courses[i], 0))
	}
	common.RespondPaginated(c, "Courses retrieved successfully", responses, pagination)
}

func (h *Handler) getCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	course, enrolled, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Course retrieved successfully", ToCourseResponse(course, enrolled))
}

func (h *Handler) createCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewValidationAPIError(err))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), common.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Course created successfully", ToCourseResponse(course, 0))
}

func (h *Handler) myCourses(c *gin.Context) {
	courses, err := h.service.CoursesByTeacher(c.Request.Context(), common.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, ToCourseResponse(&courses[i], 0))
	}
	common.RespondOK(c, "Courses retrieved successfully", responses)
}

func (h *Handler) publishCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	course, err := h.service.PublishCourse(c.Request.Context(), id,
		common.GetUserIDFromContext(c), common.GetUserRoleFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Course published successfully", ToCourseResponse(course, 0))
}

func (h *Handler) deleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	err = h.service.DeleteCourse(c.Request.Context(), id,
		common.GetUserIDFromContext(c), common.GetUserRoleFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) enroll(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	enrollment, err := h.service.Enroll(c.Request.Context(), id, common.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Enrolled successfully", enrollment)
}

func (h *Handler) withdraw(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	if err := h.service.Withdraw(c.Request.Context(), id, common.GetUserIDFromContext(c)); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) myEnrollments(c *gin.Context) {
	enrollments, err := h.service.EnrollmentsForStudent(c.Request.Context(), common.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Enrollments retrieved successfully", enrollments)
}

func (h *Handler) courseEnrollments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	enrollments, err := h.service.EnrollmentsForCourse(c.Request.Context(), id,
		common.GetUserIDFromContext(c), common.GetUserRoleFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Enrollments retrieved successfully", enrollments)
}
