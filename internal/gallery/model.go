// File: internal/gallery/model.go
package gallery

import (
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// GalleryImage is a photo in the school gallery.
type GalleryImage struct {
	common.BaseModel
	CaptionFR  string    `gorm:"type:varchar(250)"`
	CaptionAR  string    `gorm:"type:varchar(250)"`
	URL        string    `gorm:"type:varchar(600);not null"`
	StorageKey string    `gorm:"type:varchar(400);not null"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName specifies the table name for the GalleryImage model.
func (GalleryImage) TableName() string {
	return "gallery_images"
}

// GalleryImageResponse defines the structure for gallery data in API responses.
type GalleryImageResponse struct {
	ID        uuid.UUID `json:"id"`
	CaptionFR string    `json:"caption_fr,omitempty"`
	CaptionAR string    `json:"caption_ar,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func ToGalleryImageResponse(img *GalleryImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:        img.ID,
		CaptionFR: img.CaptionFR,
		CaptionAR: img.CaptionAR,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}
