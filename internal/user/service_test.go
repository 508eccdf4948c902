// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"
	"time"

	"school_portal_backend/internal/common"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock Repository ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	args := m.Called(ctx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) FindPending(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, role, status string, page, pageSize int) ([]User, *common.Pagination, error) {
	args := m.Called(ctx, role, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]User), args.Get(1).(*common.Pagination), args.Error(2)
}

func newTestService(repo Repository) *ServiceImplementation {
	return NewService(repo, nil, nil, zap.NewNop())
}

func pendingUser(id uuid.UUID) *User {
	u := &User{
		FirebaseUID: "fb-" + id.String(),
		Role:        common.RoleStudent,
		Status:      common.StatusPending,
		Locale:      common.LocaleFrench,
	}
	u.ID = id
	u.CreatedAt = time.Now().Add(-time.Hour)
	return u
}

// --- Tests ---

func TestGetOrCreateUserFromFirebaseClaims_ExistingUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	existing := pendingUser(uuid.New())
	existing.Status = common.StatusActive
	token := &firebaseauth.Token{UID: existing.FirebaseUID, Claims: map[string]interface{}{}}

	mockRepo.On("FindByFirebaseUID", mock.Anything, existing.FirebaseUID).Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil).Once()

	usr, created, err := service.GetOrCreateUserFromFirebaseClaims(context.Background(), token)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, usr.ID)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_NewUserIsPendingStudent(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	token := &firebaseauth.Token{
		UID: "new-firebase-uid",
		Claims: map[string]interface{}{
			"email": "new.student@example.com",
			"name":  "New Student",
		},
	}

	mockRepo.On("FindByFirebaseUID", mock.Anything, "new-firebase-uid").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this Firebase UID.")).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Status == common.StatusPending &&
			u.Role == common.RoleStudent &&
			u.Email != nil && *u.Email == "new.student@example.com"
	})).Return(nil).Once()

	usr, created, err := service.GetOrCreateUserFromFirebaseClaims(context.Background(), token)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, common.StatusPending, usr.Status)
	assert.Equal(t, common.RoleStudent, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestApproveUser_PendingAccount(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	target := pendingUser(uuid.New())
	mockRepo.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Status == common.StatusActive && u.ApprovedAt != nil
	})).Return(nil).Once()

	err := service.ApproveUser(context.Background(), target.ID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestApproveUser_AlreadyActiveFails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	target := pendingUser(uuid.New())
	target.Status = common.StatusActive
	mockRepo.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()

	err := service.ApproveUser(context.Background(), target.ID)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRejectUser_PendingAccount(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	target := pendingUser(uuid.New())
	mockRepo.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Status == common.StatusRejected && u.RejectedAt != nil
	})).Return(nil).Once()

	err := service.RejectUser(context.Background(), target.ID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRejectUser_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).
		Return(nil, common.ErrNotFound.WithDetails("User not found with this ID.")).Once()

	err := service.RejectUser(context.Background(), id)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}

func TestPendingRegistrations(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	first := pendingUser(uuid.New())
	second := pendingUser(uuid.New())
	mockRepo.On("FindPending", mock.Anything).Return([]User{*first, *second}, nil).Once()

	users, err := service.PendingRegistrations(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)
}
