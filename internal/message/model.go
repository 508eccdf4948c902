// File: internal/message/model.go
package message

import (
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
)

// Contact message statuses.
const (
	StatusPending = "pending"
	StatusRead    = "read"
)

// ContactMessage is a message submitted through the public contact form.
// Pending messages surface in the admin notification feed.
type ContactMessage struct {
	common.BaseModel
	ReferenceCode string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_contact_messages_reference_code"`
	SenderName    string  `gorm:"type:varchar(150);not null"`
	SenderEmail   string  `gorm:"type:varchar(255);not null"`
	SenderPhone   *string `gorm:"type:varchar(30)"`
	Subject       string  `gorm:"type:varchar(200);not null"`
	Body          string  `gorm:"type:text;not null"`
	Locale        string  `gorm:"type:varchar(5);not null;default:'fr'"`
	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index:idx_contact_messages_status_created_at"`
	ReadAt        *time.Time
}

// TableName specifies the table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// --- DTOs ---

// SubmitMessageRequest is the public contact form payload.
type SubmitMessageRequest struct {
	SenderName  string  `json:"sender_name" binding:"required,min=2,max=150"`
	SenderEmail string  `json:"sender_email" binding:"required,email"`
	SenderPhone *string `json:"sender_phone,omitempty" binding:"omitempty,max=30"`
	Subject     string  `json:"subject" binding:"required,min=2,max=200"`
	Body        string  `json:"body" binding:"required,min=5"`
	Locale      string  `json:"locale,omitempty" binding:"omitempty,oneof=fr ar"`
}

// MessageResponse defines the structure for contact message data in API responses.
type MessageResponse struct {
	ID            uuid.UUID  `json:"id"`
	ReferenceCode string     `json:"reference_code"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	SenderPhone   *string    `json:"sender_phone,omitempty"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Locale        string     `json:"locale"`
	Status        string     `json:"status"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToMessageResponse converts a ContactMessage model to its response DTO.
func ToMessageResponse(m *ContactMessage) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		ReferenceCode: m.ReferenceCode,
		SenderName:    m.SenderName,
		SenderEmail:   m.SenderEmail,
		SenderPhone:   m.SenderPhone,
		Subject:       m.Subject,
		Body:          m.Body,
		Locale:        m.Locale,
		Status:        m.Status,
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
}
