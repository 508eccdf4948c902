// File: internal/course/service_test.go
package course

import (
	"context"
	"testing"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Course{}, &Enrollment{}))
	return NewService(NewGORMRepository(db), zap.NewNop())
}

func createPublishedCourse(t *testing.T, service *Service, teacherID uuid.UUID, capacity int) *Course {
	t.Helper()
	course, err := service.CreateCourse(context.Background(), teacherID, CreateCourseRequest{
		TitleFR:  "Mathématiques",
		TitleAR:  "الرياضيات",
		Capacity: capacity,
	})
	require.NoError(t, err)
	course, err = service.PublishCourse(context.Background(), course.ID, teacherID, common.RoleTeacher)
	require.NoError(t, err)
	return course
}

func TestEnroll_Succeeds(t *testing.T) {
	service := newTestService(t)
	course := createPublishedCourse(t, service, uuid.New(), 2)

	studentID := uuid.New()
	enrollment, err := service.Enroll(context.Background(), course.ID, studentID)

	require.NoError(t, err)
	assert.Equal(t, course.ID, enrollment.CourseID)
	assert.Equal(t, studentID, enrollment.StudentID)
}

func TestEnroll_DuplicateFails(t *testing.T) {
	service := newTestService(t)
	course := createPublishedCourse(t, service, uuid.New(), 5)
	studentID := uuid.New()

	_, err := service.Enroll(context.Background(), course.ID, studentID)
	require.NoError(t, err)

	_, err = service.Enroll(context.Background(), course.ID, studentID)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
}

func TestEnroll_FullCourseFails(t *testing.T) {
	service := newTestService(t)
	course := createPublishedCourse(t, service, uuid.New(), 1)

	_, err := service.Enroll(context.Background(), course.ID, uuid.New())
	require.NoError(t, err)

	_, err = service.Enroll(context.Background(), course.ID, uuid.New())
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
}

func TestEnroll_UnpublishedCourseHidden(t *testing.T) {
	service := newTestService(t)
	course, err := service.CreateCourse(context.Background(), uuid.New(), CreateCourseRequest{
		TitleFR: "Physique",
		TitleAR: "الفيزياء",
	})
	require.NoError(t, err)

	_, err = service.Enroll(context.Background(), course.ID, uuid.New())
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}

func TestPublishCourse_OtherTeacherForbidden(t *testing.T) {
	service := newTestService(t)
	owner := uuid.New()
	course, err := service.CreateCourse(context.Background(), owner, CreateCourseRequest{
		TitleFR: "Histoire",
		TitleAR: "التاريخ",
	})
	require.NoError(t, err)

	_, err = service.PublishCourse(context.Background(), course.ID, uuid.New(), common.RoleTeacher)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)

	// Admins can manage any course.
	_, err = service.PublishCourse(context.Background(), course.ID, uuid.New(), common.RoleAdmin)
	assert.NoError(t, err)
}

func TestWithdraw_FreesASeat(t *testing.T) {
	service := newTestService(t)
	course := createPublishedCourse(t, service, uuid.New(), 1)
	studentID := uuid.New()

	_, err := service.Enroll(context.Background(), course.ID, studentID)
	require.NoError(t, err)
	require.NoError(t, service.Withdraw(context.Background(), course.ID, studentID))

	_, err = service.Enroll(context.Background(), course.ID, uuid.New())
	assert.NoError(t, err)
}
