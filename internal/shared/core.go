// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// User represents a portal account as seen by other packages.
type User struct {
	ID          uuid.UUID
	Email       *string
	FullName    *string
	Role        string
	Status      string
	Locale      string
	FirebaseUID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
}

// Service defines the user operations other packages depend on. The concrete
// implementation lives in internal/user.
type Service interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	// GetOrCreateUserFromFirebaseClaims resolves the local account for a
	// verified Firebase token, creating a pending account on first sight.
	GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (usr *User, wasCreated bool, err error)
}
