// File: internal/course/service.go
package course

import (
	"context"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles course and enrollment business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new course service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

const defaultCapacity = 30

func (s *Service) CreateCourse(ctx context.Context, teacherID uuid.UUID, req CreateCourseRequest) (*Course, error) {
	capacity := req.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	course := &Course{
		TitleFR:       req.TitleFR,
		TitleAR:       req.TitleAR,
		DescriptionFR: req.DescriptionFR,
		DescriptionAR: req.DescriptionAR,
		TeacherID:     teacherID,
		Capacity:      capacity,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		s.logger.Error("Failed to create course", zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *Service) PublishCourse(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterRole string) (*Course, error) {
	course, err := s.ownedCourse(ctx, id, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}
	course.IsPublished = true
	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) DeleteCourse(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterRole string) error {
	if _, err := s.ownedCourse(ctx, id, requesterID, requesterRole); err != nil {
		return err
	}
	return s.repo.DeleteCourse(ctx, id)
}

// ownedCourse loads a course and checks the requester may manage it. Admins
// manage everything; teachers only their own courses.
func (s *Service) ownedCourse(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) (*Course, error) {
	course, err := s.repo.FindCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterRole != common.RoleAdmin && course.TeacherID != requesterID {
		return nil, common.ErrForbidden.WithDetails("You can only manage your own courses.")
	}
	return course, nil
}

func (s *Service) GetCourse(ctx context.Context, id uuid.UUID) (*Course, int64, error) {
	course, err := s.repo.FindCourseByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountEnrollments(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return course, count, nil
}

func (s *Service) PublishedCourses(ctx context.Context, page, pageSize int) ([]Course, *common.Pagination, error) {
	return s.repo.ListPublishedCourses(ctx, page, pageSize)
}

func (s *Service) CoursesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]Course, error) {
	return s.repo.ListCoursesByTeacher(ctx, teacherID)
}

// Enroll adds a student to a published course, enforcing capacity.
func (s *Service) Enroll(ctx context.Context, courseID, studentID uuid.UUID) (*Enrollment, error) {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, common.ErrNotFound.WithDetails("Course not found.")
	}

	count, err := s.repo.CountEnrollments(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if count >= int64(course.Capacity) {
		return nil, common.ErrConflict.WithDetails("This course is full.")
	}

	enrollment := &Enrollment{CourseID: courseID, StudentID: studentID}
	if err := s.repo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	s.logger.Info("Student enrolled",
		zap.String("courseID", courseID.String()),
		zap.String("studentID", studentID.String()))
	return enrollment, nil
}

// Withdraw removes a student's enrollment.
func (s *Service) Withdraw(ctx context.Context, courseID, studentID uuid.UUID) error {
	return s.repo.DeleteEnrollment(ctx, courseID, studentID)
}

func (s *Service) EnrollmentsForStudent(ctx context.Context, studentID uuid.UUID) ([]Enrollment, error) {
	return s.repo.ListEnrollmentsByStudent(ctx, studentID)
}

func (s *Service) EnrollmentsForCourse(ctx context.Context, courseID, requesterID uuid.UUID, requesterRole string) ([]Enrollment, error) {
	if _, err := s.ownedCourse(ctx, courseID, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollmentsByCourse(ctx, courseID)
}
