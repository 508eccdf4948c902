// File: internal/notification/feed_test.go
package notification

import (
	"testing"
	"time"

	"school_portal_backend/internal/message"
	"school_portal_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registrationAt(ts time.Time) Notification {
	u := &user.User{FirebaseUID: uuid.NewString()}
	u.ID = uuid.New()
	u.CreatedAt = ts
	return FromRegistration(u)
}

func messageAt(ts time.Time) Notification {
	m := &message.ContactMessage{SenderName: "Sender", Subject: "Subject"}
	m.ID = uuid.New()
	m.CreatedAt = ts
	return FromMessage(m)
}

func TestFromRegistration_CompositeID(t *testing.T) {
	name := "Amina K"
	u := &user.User{FirebaseUID: "fb-1", FullName: &name}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()

	n := FromRegistration(u)

	assert.Equal(t, "user-"+u.ID.String(), n.ID)
	assert.Equal(t, TypeRegistration, n.Type)
	assert.Equal(t, u.ID, n.SourceID)
	assert.Equal(t, u.CreatedAt, n.Timestamp)
	assert.False(t, n.Read)
	assert.Contains(t, n.Body, "Amina K")
}

func TestFromMessage_CompositeID(t *testing.T) {
	m := &message.ContactMessage{SenderName: "Karim B", Subject: "Inscription"}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	n := FromMessage(m)

	assert.Equal(t, "message-"+m.ID.String(), n.ID)
	assert.Equal(t, TypeMessage, n.Type)
	assert.Equal(t, "Inscription", n.Body)
	assert.Contains(t, n.Title, "Karim B")
}

func TestMerge_SortsNewestFirst(t *testing.T) {
	base := time.Now()
	oldest := registrationAt(base.Add(-3 * time.Hour))
	middle := messageAt(base.Add(-2 * time.Hour))
	newest := registrationAt(base.Add(-1 * time.Hour))

	merged := Merge([]Notification{oldest, newest}, []Notification{middle})

	require.Len(t, merged, 3)
	assert.Equal(t, newest.ID, merged[0].ID)
	assert.Equal(t, middle.ID, merged[1].ID)
	assert.Equal(t, oldest.ID, merged[2].ID)
}

func TestMerge_DeduplicatesByID(t *testing.T) {
	n := registrationAt(time.Now())

	merged := Merge([]Notification{n, n}, nil)

	assert.Len(t, merged, 1)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	base := time.Now()
	registrations := []Notification{registrationAt(base.Add(-2 * time.Hour)), registrationAt(base)}
	snapshot := make([]Notification, len(registrations))
	copy(snapshot, registrations)

	Merge(registrations, nil)

	assert.Equal(t, snapshot, registrations)
}

func TestSplitID(t *testing.T) {
	id := uuid.New()

	kind, sourceID, err := splitID("user-" + id.String())
	require.NoError(t, err)
	assert.Equal(t, TypeRegistration, kind)
	assert.Equal(t, id, sourceID)

	kind, sourceID, err = splitID("message-" + id.String())
	require.NoError(t, err)
	assert.Equal(t, TypeMessage, kind)
	assert.Equal(t, id, sourceID)

	_, _, err = splitID("bogus-" + id.String())
	assert.Error(t, err)
}
