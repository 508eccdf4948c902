// File: internal/course/model.go
package course

import (
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// Course is an e-learning course taught by a staff member.
type Course struct {
	common.BaseModel
	TitleFR       string    `gorm:"type:varchar(200);not null"`
	TitleAR       string    `gorm:"type:varchar(200);not null"`
	DescriptionFR string    `gorm:"type:text"`
	DescriptionAR string    `gorm:"type:text"`
	TeacherID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Capacity      int       `gorm:"not null;default:30"`
	IsPublished   bool      `gorm:"not null;default:false;index"`
}

// TableName specifies the table name for the Course model.
func (Course) TableName() string {
	return "courses"
}

// Enrollment links a student to a course. One row per student per course.
type Enrollment struct {
	common.BaseModel
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_course_student"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_course_student"`
}

// TableName specifies the table name for the Enrollment model.
func (Enrollment) TableName() string {
	return "enrollments"
}

// --- DTOs ---

type CreateCourseRequest struct {
	TitleFR       string `json:"title_fr" binding:"required,min=2,max=200"`
	TitleAR       string `json:"title_ar" binding:"required,min=2,max=200"`
	DescriptionFR string `json:"description_fr,omitempty"`
	DescriptionAR string `json:"description_ar,omitempty"`
	Capacity      int    `json:"capacity" binding:"omitempty,min=1,max=500"`
}

type CourseResponse struct {
	ID            uuid.UUID `json:"id"`
	TitleFR       string    `json:"title_fr"`
	TitleAR       string    `json:"title_ar"`
	DescriptionFR string    `json:"description_fr,omitempty"`
	DescriptionAR string    `json:"description_ar,omitempty"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	Capacity      int       `json:"capacity"`
	IsPublished   bool      `json:"is_published"`
	EnrolledCount int64     `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToCourseResponse(c *Course, enrolledCount int64) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		TitleFR:       c.TitleFR,
		TitleAR:       c.TitleAR,
		DescriptionFR: c.DescriptionFR,
		DescriptionAR: c.DescriptionAR,
		TeacherID:     c.TeacherID,
		Capacity:      c.Capacity,
		IsPublished:   c.IsPublished,
		EnrolledCount: enrolledCount,
		CreatedAt:     c.CreatedAt,
	}
}
