// File: internal/user/model.go
package user

import (
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// User represents a portal account in the database. New registrations are
// created with status "pending" and surface in the admin notification feed
// until approved or rejected.
type User struct {
	common.BaseModel
	FirebaseUID string     `gorm:"type:varchar(128);not null;uniqueIndex:idx_users_firebase_uid"`
	Email       *string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email"`
	FullName    *string    `gorm:"type:varchar(150)"`
	Role        string     `gorm:"type:varchar(20);not null;default:'student'"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_users_status_created_at"`
	Locale      string     `gorm:"type:varchar(5);not null;default:'fr'"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	RejectedAt  *time.Time `gorm:"column:rejected_at"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs ---

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       *string    `json:"email,omitempty"`
	FullName    *string    `json:"full_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	Locale      string     `json:"locale"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AdminUpdateRoleRequest changes an account's role.
type AdminUpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher admin"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		Status:      user.Status,
		Locale:      user.Locale,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		ApprovedAt:  user.ApprovedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
