// File: internal/user/service.go
package user

import (
	"context"
	"time"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/config"
	"school_portal_backend/internal/firebase"
	"school_portal_backend/internal/shared"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation implements the shared.Service interface plus the
// administrative approve/reject operations used by the notification feed.
type ServiceImplementation struct {
	repo            Repository
	firebaseService *firebase.FirebaseService
	cfg             *config.Config
	logger          *zap.Logger
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	firebaseService *firebase.FirebaseService,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:            repo,
		firebaseService: firebaseService,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetOrCreateUserFromFirebaseClaims resolves the local account for a verified
// Firebase token. Unknown UIDs get a fresh pending student account, which then
// shows up in the admin registration feed.
func (s *ServiceImplementation) GetOrCreateUserFromFirebaseClaims(
	ctx context.Context,
	firebaseToken *firebaseauth.Token,
) (*shared.User, bool, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseToken.UID)
	if err == nil {
		now := time.Now()
		dbUser.LastLoginAt = &now
		if updateErr := s.repo.Update(ctx, dbUser); updateErr != nil {
			// Not critical for authentication.
			s.logger.Warn("Failed to update last login time", zap.Error(updateErr), zap.String("userID", dbUser.ID.String()))
		}
		return DBToShared(dbUser), false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	newUser := &User{
		FirebaseUID: firebaseToken.UID,
		Role:        common.RoleStudent,
		Status:      common.StatusPending,
		Locale:      common.LocaleFrench,
	}
	if email, ok := firebaseToken.Claims["email"].(string); ok && email != "" {
		newUser.Email = &email
	}
	if name, ok := firebaseToken.Claims["name"].(string); ok && name != "" {
		newUser.FullName = &name
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		s.logger.Error("Failed to create account from Firebase claims", zap.Error(err), zap.String("uid", firebaseToken.UID))
		return nil, false, err
	}

	s.logger.Info("New pending account created from Firebase sign-in",
		zap.String("userID", newUser.ID.String()),
		zap.String("uid", firebaseToken.UID))
	return DBToShared(newUser), true, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) GetUserByEmail(ctx context.Context, email string) (*shared.User, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*shared.User, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// PendingRegistrations returns all pending accounts, newest first. Backs the
// registration stream of the admin notification feed.
func (s *ServiceImplementation) PendingRegistrations(ctx context.Context) ([]User, error) {
	return s.repo.FindPending(ctx)
}

// ListUsers returns a paginated account listing with optional role/status filters.
func (s *ServiceImplementation) ListUsers(ctx context.Context, role, status string, page, pageSize int) ([]User, *common.Pagination, error) {
	users, pagination, err := s.repo.List(ctx, role, status, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve users.")
	}
	return users, pagination, nil
}

// ApproveUser activates a pending account.
func (s *ServiceImplementation) ApproveUser(ctx context.Context, id uuid.UUID) error {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if dbUser.Status != common.StatusPending {
		return common.ErrConflict.WithDetails("Only pending accounts can be approved.")
	}

	now := time.Now()
	dbUser.Status = common.StatusActive
	dbUser.ApprovedAt = &now
	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to approve account", zap.Error(err), zap.String("userID", id.String()))
		return err
	}
	s.logger.Info("Account approved", zap.String("userID", id.String()))
	return nil
}

// RejectUser marks a pending account as rejected and revokes its Firebase
// sessions. Token revocation is best-effort.
func (s *ServiceImplementation) RejectUser(ctx context.Context, id uuid.UUID) error {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if dbUser.Status != common.StatusPending {
		return common.ErrConflict.WithDetails("Only pending accounts can be rejected.")
	}

	now := time.Now()
	dbUser.Status = common.StatusRejected
	dbUser.RejectedAt = &now
	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to reject account", zap.Error(err), zap.String("userID", id.String()))
		return err
	}

	if s.firebaseService != nil {
		if err := s.firebaseService.RevokeRefreshTokens(ctx, dbUser.FirebaseUID); err != nil {
			s.logger.Warn("Failed to revoke Firebase sessions for rejected account",
				zap.Error(err), zap.String("userID", id.String()))
		}
	}

	s.logger.Info("Account rejected", zap.String("userID", id.String()))
	return nil
}

// UpdateUserRole changes an account's role.
func (s *ServiceImplementation) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dbUser.Role = role
	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to update account role", zap.Error(err), zap.String("userID", id.String()))
		return nil, err
	}
	s.logger.Info("Account role updated", zap.String("userID", id.String()), zap.String("role", role))
	return dbUser, nil
}

func isNotFound(err error) bool {
	apiErr, ok := common.IsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Code == common.ErrNotFound.Code
}
