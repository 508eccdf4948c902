// File: internal/event/model.go
package event

import (
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// Event is a bilingual calendar entry. Past events get archived by a daily
// job instead of being deleted.
type Event struct {
	common.BaseModel
	TitleFR       string    `gorm:"type:varchar(200);not null"`
	TitleAR       string    `gorm:"type:varchar(200);not null"`
	DescriptionFR string    `gorm:"type:text"`
	DescriptionAR string    `gorm:"type:text"`
	Location      *string   `gorm:"type:varchar(250)"`
	StartsAt      time.Time `gorm:"not null;index"`
	EndsAt        *time.Time
	IsArchived    bool `gorm:"not null;default:false;index"`
}

// TableName specifies the table name for the Event model.
func (Event) TableName() string {
	return "events"
}

// --- DTOs ---

type CreateEventRequest struct {
	TitleFR       string     `json:"title_fr" binding:"required,min=2,max=200"`
	TitleAR       string     `json:"title_ar" binding:"required,min=2,max=200"`
	DescriptionFR string     `json:"description_fr,omitempty"`
	DescriptionAR string     `json:"description_ar,omitempty"`
	Location      *string    `json:"location,omitempty" binding:"omitempty,max=250"`
	StartsAt      time.Time  `json:"starts_at" binding:"required"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
}

type EventResponse struct {
	ID            uuid.UUID  `json:"id"`
	TitleFR       string     `json:"title_fr"`
	TitleAR       string     `json:"title_ar"`
	DescriptionFR string     `json:"description_fr,omitempty"`
	DescriptionAR string     `json:"description_ar,omitempty"`
	Location      *string    `json:"location,omitempty"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	IsArchived    bool       `json:"is_archived"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:            e.ID,
		TitleFR:       e.TitleFR,
		TitleAR:       e.TitleAR,
		DescriptionFR: e.DescriptionFR,
		DescriptionAR: e.DescriptionAR,
		Location:      e.Location,
		StartsAt:      e.StartsAt,
		EndsAt:        e.EndsAt,
		IsArchived:    e.IsArchived,
	}
}
