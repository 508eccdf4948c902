// File: internal/message/service_test.go
package message

import (
	"context"
	"testing"
	"time"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/config"
	"school_portal_backend/internal/mail"

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

func (m *MockRepository) Create(ctx context.Context, msg *ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ContactMessage), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, msg *ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockRepository) FindPending(ctx context.Context, limit int) ([]ContactMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ContactMessage), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status string, page, pageSize int) ([]ContactMessage, *common.Pagination, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]ContactMessage), args.Get(1).(*common.Pagination), args.Error(2)
}

func testConfig() *config.Config {
	return &config.Config{ContactInboxEmail: "contact@school.example"}
}

// --- Tests ---

func TestSubmit_StoresMessageAndNotifiesInbox(t *testing.T) {
	mockRepo := new(MockRepository)
	console := mail.NewConsoleService(zap.NewNop())
	service := NewService(mockRepo, console, testConfig(), zap.NewNop())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *ContactMessage) bool {
		return m.Status == StatusPending &&
			m.ReferenceCode != "" &&
			m.Locale == common.LocaleFrench
	})).Return(nil).Once()

	msg, err := service.Submit(context.Background(), SubmitMessageRequest{
		SenderName:  "Amina K",
		SenderEmail: "amina@example.com",
		Subject:     "Inscription",
		Body:        "Bonjour, je souhaite inscrire mon fils.",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, msg.Status)
	assert.NotEmpty(t, msg.ReferenceCode)

	sent := console.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "contact@school.example", sent[0].To)
	assert.Contains(t, sent[0].Subject, msg.ReferenceCode)
	mockRepo.AssertExpectations(t)
}

func TestSubmit_MailFailureDoesNotFailSubmission(t *testing.T) {
	mockRepo := new(MockRepository)
	failing := &failingMail{}
	service := NewService(mockRepo, failing, testConfig(), zap.NewNop())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*message.ContactMessage")).Return(nil).Once()

	msg, err := service.Submit(context.Background(), SubmitMessageRequest{
		SenderName:  "Karim B",
		SenderEmail: "karim@example.com",
		Subject:     "Question",
		Body:        "Quels sont les horaires?",
	})

	require.NoError(t, err)
	assert.NotNil(t, msg)
	assert.True(t, failing.called)
}

func TestMarkMessageAsRead_PendingMessage(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, testConfig(), zap.NewNop())

	id := uuid.New()
	msg := &ContactMessage{Status: StatusPending}
	msg.ID = id

	mockRepo.On("FindByID", mock.Anything, id).Return(msg, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *ContactMessage) bool {
		return m.Status == StatusRead && m.ReadAt != nil
	})).Return(nil).Once()

	err := service.MarkMessageAsRead(context.Background(), id)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestMarkMessageAsRead_AlreadyReadIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, testConfig(), zap.NewNop())

	id := uuid.New()
	readAt := time.Now().Add(-time.Hour)
	msg := &ContactMessage{Status: StatusRead, ReadAt: &readAt}
	msg.ID = id

	mockRepo.On("FindByID", mock.Anything, id).Return(msg, nil).Once()

	err := service.MarkMessageAsRead(context.Background(), id)

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPendingMessages_PassesLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, testConfig(), zap.NewNop())

	mockRepo.On("FindPending", mock.Anything, 50).Return([]ContactMessage{}, nil).Once()

	msgs, err := service.PendingMessages(context.Background(), 50)

	require.NoError(t, err)
	assert.Empty(t, msgs)
	mockRepo.AssertExpectations(t)
}

// failingMail always errors, for asserting best-effort delivery.
type failingMail struct {
	called bool
}

func (f *failingMail) Send(_ context.Context, _ mail.Email) error {
	f.called = true
	return assert.AnError
}
