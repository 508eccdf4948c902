// File: internal/user/adapter.go
package user

import "school_portal_backend/internal/shared"

// DBToShared converts a GORM User model to the shared.User view used by other
// packages.
func DBToShared(u *User) *shared.User {
	if u == nil {
		return nil
	}
	return &shared.User{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Status:      u.Status,
		Locale:      u.Locale,
		FirebaseUID: u.FirebaseUID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		ApprovedAt:  u.ApprovedAt,
		RejectedAt:  u.RejectedAt,
	}
}
