// File: internal/content/model.go
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// NewsPost is a bilingual news article. Posts are drafts until published.
type NewsPost struct {
	common.BaseModel
	Slug          string     `gorm:"type:varchar(220);not null;uniqueIndex:idx_news_posts_slug"`
	TitleFR       string     `gorm:"type:varchar(200);not null"`
	TitleAR       string     `gorm:"type:varchar(200);not null"`
	BodyFR        string     `gorm:"type:text;not null"`
	BodyAR        string     `gorm:"type:text;not null"`
	CoverImageURL *string    `gorm:"type:varchar(500)"`
	IsPublished   bool       `gorm:"not null;default:false;index:idx_news_posts_published"`
	PublishedAt   *time.Time `gorm:"index"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;not null"`
}

// TableName specifies the table name for the NewsPost model.
func (NewsPost) TableName() string {
	return "news_posts"
}

// Announcement is a short bilingual notice shown on the portal banner until it
// expires.
type Announcement struct {
	common.BaseModel
	TitleFR   string     `gorm:"type:varchar(200);not null"`
	TitleAR   string     `gorm:"type:varchar(200);not null"`
	BodyFR    string     `gorm:"type:text;not null"`
	BodyAR    string     `gorm:"type:text;not null"`
	IsActive  bool       `gorm:"not null;default:true"`
	ExpiresAt *time.Time `gorm:"index"`
}

// TableName specifies the table name for the Announcement model.
func (Announcement) TableName() string {
	return "announcements"
}

// Testimonial is a quote from a parent or alum. Hidden until an admin approves it.
type Testimonial struct {
	common.BaseModel
	AuthorName string `gorm:"type:varchar(150);not null"`
	AuthorRole *string `gorm:"type:varchar(150)"`
	QuoteFR    string `gorm:"type:text;not null"`
	QuoteAR    string `gorm:"type:text;not null"`
	IsApproved bool   `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Testimonial model.
func (Testimonial) TableName() string {
	return "testimonials"
}

// --- DTOs ---

type CreateNewsPostRequest struct {
	TitleFR       string  `json:"title_fr" binding:"required,min=2,max=200"`
	TitleAR       string  `json:"title_ar" binding:"required,min=2,max=200"`
	BodyFR        string  `json:"body_fr" binding:"required"`
	BodyAR        string  `json:"body_ar" binding:"required"`
	CoverImageURL *string `json:"cover_image_url,omitempty" binding:"omitempty,url"`
}

type UpdateNewsPostRequest struct {
	TitleFR       *string `json:"title_fr,omitempty" binding:"omitempty,min=2,max=200"`
	TitleAR       *string `json:"title_ar,omitempty" binding:"omitempty,min=2,max=200"`
	BodyFR        *string `json:"body_fr,omitempty"`
	BodyAR        *string `json:"body_ar,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty" binding:"omitempty,url"`
}

type NewsPostResponse struct {
	ID            uuid.UUID  `json:"id"`
	Slug          string     `json:"slug"`
	TitleFR       string     `json:"title_fr"`
	TitleAR       string     `json:"title_ar"`
	BodyFR        string     `json:"body_fr"`
	BodyAR        string     `json:"body_ar"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	AuthorID      uuid.UUID  `json:"author_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ToNewsPostResponse(p *NewsPost) NewsPostResponse {
	return NewsPostResponse{
		ID:            p.ID,
		Slug:          p.Slug,
		TitleFR:       p.TitleFR,
		TitleAR:       p.TitleAR,
		BodyFR:        p.BodyFR,
		BodyAR:        p.BodyAR,
		CoverImageURL: p.CoverImageURL,
		IsPublished:   p.IsPublished,
		PublishedAt:   p.PublishedAt,
		AuthorID:      p.AuthorID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type CreateAnnouncementRequest struct {
	TitleFR   string     `json:"title_fr" binding:"required,min=2,max=200"`
	TitleAR   string     `json:"title_ar" binding:"required,min=2,max=200"`
	BodyFR    string     `json:"body_fr" binding:"required"`
	BodyAR    string     `json:"body_ar" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type SubmitTestimonialRequest struct {
	AuthorName string  `json:"author_name" binding:"required,min=2,max=150"`
	AuthorRole *string `json:"author_role,omitempty" binding:"omitempty,max=150"`
	QuoteFR    string  `json:"quote_fr" binding:"required"`
	QuoteAR    string  `json:"quote_ar" binding:"required"`
}

// NewsSearchQuery carries the public search parameters.
type NewsSearchQuery struct {
	Term     string
	Locale   string
	Page     int
	PageSize int
}

// NewsPostSearchDocument renders a post as its Elasticsearch document JSON.
func NewsPostSearchDocument(p *NewsPost) (string, error) {
	if p == nil {
		return "", errors.New("news post cannot be nil")
	}

	doc := map[string]interface{}{
		"slug":         p.Slug,
		"title_fr":     p.TitleFR,
		"title_ar":     p.TitleAR,
		"body_fr":      p.BodyFR,
		"body_ar":      p.BodyAR,
		"is_published": p.IsPublished,
		"author_id":    p.AuthorID.String(),
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
	if p.PublishedAt != nil {
		doc["published_at"] = p.PublishedAt
	} else {
		doc["published_at"] = nil
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error marshalling news post to JSON for ES: %w", err)
	}
	return string(docBytes), nil
}
