// File: internal/club/model.go
package club

import (
	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// Club is an extracurricular activity group.
type Club struct {
	common.BaseModel
	Slug          string  `gorm:"type:varchar(120);not null;uniqueIndex:idx_clubs_slug"`
	NameFR        string  `gorm:"type:varchar(150);not null"`
	NameAR        string  `gorm:"type:varchar(150);not null"`
	DescriptionFR string  `gorm:"type:text"`
	DescriptionAR string  `gorm:"type:text"`
	ImageURL      *string `gorm:"type:varchar(500)"`
	IsActive      bool    `gorm:"not null;default:true"`
}

// TableName specifies the table name for the Club model.
func (Club) TableName() string {
	return "clubs"
}

// --- DTOs ---

type CreateClubRequest struct {
	NameFR        string  `json:"name_fr" binding:"required,min=2,max=150"`
	NameAR        string  `json:"name_ar" binding:"required,min=2,max=150"`
	DescriptionFR string  `json:"description_fr,omitempty"`
	DescriptionAR string  `json:"description_ar,omitempty"`
	ImageURL      *string `json:"image_url,omitempty" binding:"omitempty,url"`
}

type UpdateClubRequest struct {
	NameFR        *string `json:"name_fr,omitempty" binding:"omitempty,min=2,max=150"`
	NameAR        *string `json:"name_ar,omitempty" binding:"omitempty,min=2,max=150"`
	DescriptionFR *string `json:"description_fr,omitempty"`
	DescriptionAR *string `json:"description_ar,omitempty"`
	ImageURL      *string `json:"image_url,omitempty" binding:"omitempty,url"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type ClubResponse struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	NameFR        string    `json:"name_fr"`
	NameAR        string    `json:"name_ar"`
	DescriptionFR string    `json:"description_fr,omitempty"`
	DescriptionAR string    `json:"description_ar,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active"`
}

func ToClubResponse(c *Club) ClubResponse {
	return ClubResponse{
		ID:            c.ID,
		Slug:          c.Slug,
		NameFR:        c.NameFR,
		NameAR:        c.NameAR,
		DescriptionFR: c.DescriptionFR,
		DescriptionAR: c.DescriptionAR,
		ImageURL:      c.ImageURL,
		IsActive:      c.IsActive,
	}
}
