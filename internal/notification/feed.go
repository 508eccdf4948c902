// File: internal/notification/feed.go
package notification

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"school_portal_backend/internal/message"
	"school_portal_backend/internal/user"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeRegistration = "registration"
	TypeMessage      = "message"
)

// Composite ID prefixes. The prefix keeps IDs from the two streams from
// colliding and tells an action which backend to hit.
const (
	registrationIDPrefix = "user-"
	messageIDPrefix      = "message-"
)

// Notification is a single entry in the admin feed. Data carries a copy of
// the source record so the frontend can render details without a second
// fetch.
type Notification struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	SourceID  uuid.UUID              `json:"source_id"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Timestamp time.Time              `json:"timestamp"`
	Read      bool                   `json:"read"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// FromRegistration builds the feed entry for a pending account.
func FromRegistration(u *user.User) Notification {
	title := "New account registration"
	who := ""
	if u.FullName != nil && *u.FullName != "" {
		who = *u.FullName
	} else if u.Email != nil {
		who = *u.Email
	}
	body := "A new account is awaiting approval."
	if who != "" {
		body = fmt.Sprintf("%s is awaiting approval.", who)
	}
	data := map[string]interface{}{
		"status": u.Status,
		"role":   u.Role,
		"locale": u.Locale,
	}
	if u.Email != nil {
		data["email"] = *u.Email
	}
	if u.FullName != nil {
		data["full_name"] = *u.FullName
	}
	return Notification{
		ID:        registrationIDPrefix + u.ID.String(),
		Type:      TypeRegistration,
		SourceID:  u.ID,
		Title:     title,
		Body:      body,
		Timestamp: u.CreatedAt,
		Data:      data,
	}
}

// FromMessage builds the feed entry for a pending contact message.
func FromMessage(m *message.ContactMessage) Notification {
	return Notification{
		ID:        messageIDPrefix + m.ID.String(),
		Type:      TypeMessage,
		SourceID:  m.ID,
		Title:     fmt.Sprintf("New message from %s", m.SenderName),
		Body:      m.Subject,
		Timestamp: m.CreatedAt,
		Data: map[string]interface{}{
			"reference_code": m.ReferenceCode,
			"sender_name":    m.SenderName,
			"sender_email":   m.SenderEmail,
			"subject":        m.Subject,
			"locale":         m.Locale,
			"status":         m.Status,
		},
	}
}

// Merge combines the two per-stream lists into one feed, deduplicated by ID
// and sorted newest first. Inputs are not modified.
func Merge(registrations, messages []Notification) []Notification {
	merged := make([]Notification, 0, len(registrations)+len(messages))
	seen := make(map[string]struct{}, len(registrations)+len(messages))
	for _, n := range registrations {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		merged = append(merged, n)
	}
	for _, n := range messages {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		merged = append(merged, n)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}

// splitID returns the notification type and source ID encoded in a composite
// feed ID.
func splitID(id string) (string, uuid.UUID, error) {
	switch {
	case strings.HasPrefix(id, registrationIDPrefix):
		sourceID, err := uuid.Parse(strings.TrimPrefix(id, registrationIDPrefix))
		return TypeRegistration, sourceID, err
	case strings.HasPrefix(id, messageIDPrefix):
		sourceID, err := uuid.Parse(strings.TrimPrefix(id, messageIDPrefix))
		return TypeMessage, sourceID, err
	default:
		return "", uuid.Nil, fmt.Errorf("unrecognized notification ID %q", id)
	}
}
