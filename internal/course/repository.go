// File: internal/course/repository.go
package course

import (
	"context"
	"errors"
	"strings"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for course data operations.
type Repository interface {
	CreateCourse(ctx context.Context, course *Course) error
	FindCourseByID(ctx context.Context, id uuid.UUID) (*Course, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	ListPublishedCourses(ctx context.Context, page, pageSize int) ([]Course, *common.Pagination, error)
	ListCoursesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]Course, error)

	CreateEnrollment(ctx context.Context, enrollment *Enrollment) error
	DeleteEnrollment(ctx context.Context, courseID, studentID uuid.UUID) error
	CountEnrollments(ctx context.Context, courseID uuid.UUID) (int64, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID uuid.UUID) ([]Enrollment, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM course repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateCourse(ctx context.Context, course *Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *gormRepository) FindCourseByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	var course Course
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Course not found.")
		}
		return nil, err
	}
	return &course, nil
}

func (r *gormRepository) UpdateCourse(ctx context.Context, course *Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *gormRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&Enrollment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Course{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Course not found.")
		}
		return nil
	})
}

func (r *gormRepository) ListPublishedCourses(ctx context.Context, page, pageSize int) ([]Course, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&Course{}).Where("is_published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	var courses []Course
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, nil, err
	}
	return courses, pagination, nil
}

func (r *gormRepository) ListCoursesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]Course, error) {
	var courses []Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *gormRepository) CreateEnrollment(ctx context.Context, enrollment *Enrollment) error {
	err := r.db.WithContext(ctx).Create(enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrConflict.WithDetails("Student is already enrolled in this course.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) DeleteEnrollment(ctx context.Context, courseID, studentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Enrollment not found.")
	}
	return nil
}

func (r *gormRepository) CountEnrollments(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) ListEnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *gormRepository) ListEnrollmentsByCourse(ctx context.Context, courseID uuid.UUID) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}
