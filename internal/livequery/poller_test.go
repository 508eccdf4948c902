// File: internal/livequery/poller_test.go
package livequery

import (
	"context"
	"sync"
	"testing"
	"time"

	"school_portal_backend/internal/message"
	"school_portal_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRegistrationProvider struct {
	mu    sync.Mutex
	users []user.User
	err   error
	calls int
}

func (p *stubRegistrationProvider) PendingRegistrations(_ context.Context) ([]user.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([]user.User, len(p.users))
	copy(out, p.users)
	return out, nil
}

func (p *stubRegistrationProvider) set(users []user.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = users
}

type stubMessageProvider struct {
	mu    sync.Mutex
	msgs  []message.ContactMessage
	limit int
}

func (p *stubMessageProvider) PendingMessages(_ context.Context, limit int) ([]message.ContactMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limit = limit
	out := make([]message.ContactMessage, len(p.msgs))
	copy(out, p.msgs)
	return out, nil
}

func newTestUser() user.User {
	u := user.User{FirebaseUID: uuid.NewString()}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return u
}

func TestRegistrationSource_InitialDeliveryIsImmediate(t *testing.T) {
	provider := &stubRegistrationProvider{users: []user.User{newTestUser()}}
	source := NewPendingRegistrationSource(provider, time.Hour, zap.NewNop())

	got := make(chan []user.User, 1)
	cancel := source.Subscribe(context.Background(), func(users []user.User) {
		select {
		case got <- users:
		default:
		}
	}, nil)
	defer cancel()

	select {
	case users := <-got:
		assert.Len(t, users, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate initial snapshot")
	}
}

func TestRegistrationSource_RedeliversFullSetOnChange(t *testing.T) {
	first := newTestUser()
	provider := &stubRegistrationProvider{users: []user.User{first}}
	source := NewPendingRegistrationSource(provider, 10*time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	var snapshots [][]user.User
	cancel := source.Subscribe(context.Background(), func(users []user.User) {
		mu.Lock()
		snapshots = append(snapshots, users)
		mu.Unlock()
	}, nil)
	defer cancel()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snapshots) == 1
	}, 2*time.Second, 5*time.Millisecond)

	second := newTestUser()
	provider.set([]user.User{second, first})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snapshots) >= 2 && len(snapshots[len(snapshots)-1]) == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRegistrationSource_UnchangedSetIsNotRedelivered(t *testing.T) {
	provider := &stubRegistrationProvider{users: []user.User{newTestUser()}}
	source := NewPendingRegistrationSource(provider, 10*time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	deliveries := 0
	cancel := source.Subscribe(context.Background(), func([]user.User) {
		mu.Lock()
		deliveries++
		mu.Unlock()
	}, nil)
	defer cancel()

	require.Eventually(t, func() bool {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		return provider.calls >= 5
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, deliveries)
}

func TestRegistrationSource_ErrorInvokesCallbackAndKeepsPolling(t *testing.T) {
	provider := &stubRegistrationProvider{err: assert.AnError}
	source := NewPendingRegistrationSource(provider, 10*time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	errCount := 0
	cancel := source.Subscribe(context.Background(), func([]user.User) {}, func(error) {
		mu.Lock()
		errCount++
		mu.Unlock()
	})
	defer cancel()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return errCount >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRegistrationSource_CancelStopsDeliveries(t *testing.T) {
	provider := &stubRegistrationProvider{users: []user.User{newTestUser()}}
	source := NewPendingRegistrationSource(provider, 10*time.Millisecond, zap.NewNop())

	cancel := source.Subscribe(context.Background(), func([]user.User) {}, nil)
	cancel()

	time.Sleep(50 * time.Millisecond)
	provider.mu.Lock()
	callsAfterCancel := provider.calls
	provider.mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, callsAfterCancel, provider.calls)
}

func TestMessageSource_PassesConfiguredLimit(t *testing.T) {
	provider := &stubMessageProvider{}
	source := NewPendingMessageSource(provider, time.Hour, 50, zap.NewNop())

	got := make(chan struct{}, 1)
	cancel := source.Subscribe(context.Background(), func([]message.ContactMessage) {
		select {
		case got <- struct{}{}:
		default:
		}
	}, nil)
	defer cancel()

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate initial snapshot")
	}

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, 50, provider.limit)
}
