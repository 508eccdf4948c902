// File: internal/notification/aggregator_test.go
package notification

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

// --- Fakes ---

// fakeRegistrationStream lets tests push snapshots and errors by hand.
type fakeRegistrationStream struct {
	mu         sync.Mutex
	onSnapshot func([]user.User)
	onError    func(error)
	cancelled  bool
}

func (f *fakeRegistrationStream) Subscribe(_ context.Context, onSnapshot func([]user.User), onError func(error)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSnapshot = onSnapshot
	f.onError = onError
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled = true
	}
}

func (f *fakeRegistrationStream) push(users []user.User) {
	f.mu.Lock()
	cb := f.onSnapshot
	f.mu.Unlock()
	cb(users)
}

func (f *fakeRegistrationStream) fail(err error) {
	f.mu.Lock()
	cb := f.onError
	f.mu.Unlock()
	cb(err)
}

type fakeMessageStream struct {
	mu         sync.Mutex
	onSnapshot func([]message.ContactMessage)
	onError    func(error)
	cancelled  bool
}

func (f *fakeMessageStream) Subscribe(_ context.Context, onSnapshot func([]message.ContactMessage), onError func(error)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSnapshot = onSnapshot
	f.onError = onError
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled = true
	}
}

func (f *fakeMessageStream) push(msgs []message.ContactMessage) {
	f.mu.Lock()
	cb := f.onSnapshot
	f.mu.Unlock()
	cb(msgs)
}

type fakeUserActions struct {
	mu       sync.Mutex
	approved []uuid.UUID
	rejected []uuid.UUID
	err      error
}

func (f *fakeUserActions) ApproveUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeUserActions) RejectUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rejected = append(f.rejected, id)
	return nil
}

type fakeMessageActions struct {
	mu   sync.Mutex
	read []uuid.UUID
	err  error
}

func (f *fakeMessageActions) MarkMessageAsRead(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.read = append(f.read, id)
	return nil
}

// --- Helpers ---

type harness struct {
	agg           *Aggregator
	registrations *fakeRegistrationStream
	messages      *fakeMessageStream
	userActions   *fakeUserActions
	msgActions    *fakeMessageActions
	chimes        *chimeCounter
}

type chimeCounter struct {
	mu    sync.Mutex
	count int
}

func (c *chimeCounter) play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *chimeCounter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		registrations: &fakeRegistrationStream{},
		messages:      &fakeMessageStream{},
		userActions:   &fakeUserActions{},
		msgActions:    &fakeMessageActions{},
		chimes:        &chimeCounter{},
	}
	h.agg = NewAggregator(h.userActions, h.msgActions, h.registrations, h.messages, h.chimes.play, zap.NewNop())
	require.NoError(t, h.agg.Start(context.Background()))
	t.Cleanup(h.agg.Stop)
	return h
}

func testUser(createdAt time.Time) user.User {
	u := user.User{FirebaseUID: uuid.NewString()}
	u.ID = uuid.New()
	u.CreatedAt = createdAt
	return u
}

func testMessage(createdAt time.Time) message.ContactMessage {
	m := message.ContactMessage{SenderName: "Sender", Subject: "Subject", Status: message.StatusPending}
	m.ID = uuid.New()
	m.CreatedAt = createdAt
	return m
}

// --- Tests ---

func TestAggregator_StartTwiceFails(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.agg.Start(context.Background()))
}

func TestAggregator_StopCancelsBothStreams(t *testing.T) {
	h := newHarness(t)
	h.agg.Stop()

	h.registrations.mu.Lock()
	assert.True(t, h.registrations.cancelled)
	h.registrations.mu.Unlock()
	h.messages.mu.Lock()
	assert.True(t, h.messages.cancelled)
	h.messages.mu.Unlock()
}

func TestAggregator_MergedFeedSortedNewestFirst(t *testing.T) {
	h := newHarness(t)
	base := time.Now()

	older := testUser(base.Add(-2 * time.Hour))
	newer := testMessage(base.Add(-1 * time.Hour))
	h.registrations.push([]user.User{older})
	h.messages.push([]message.ContactMessage{newer})

	feed := h.agg.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, "message-"+newer.ID.String(), feed[0].ID)
	assert.Equal(t, "user-"+older.ID.String(), feed[1].ID)
}

func TestAggregator_SnapshotFullyReplacesItsStream(t *testing.T) {
	h := newHarness(t)
	base := time.Now()

	gone := testUser(base.Add(-2 * time.Hour))
	kept := testMessage(base.Add(-3 * time.Hour))
	h.registrations.push([]user.User{gone})
	h.messages.push([]message.ContactMessage{kept})
	require.Len(t, h.agg.Feed(), 2)

	replacement := testUser(base.Add(-1 * time.Hour))
	h.registrations.push([]user.User{replacement})

	feed := h.agg.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, "user-"+replacement.ID.String(), feed[0].ID)
	assert.Equal(t, "message-"+kept.ID.String(), feed[1].ID)
}

func TestAggregator_UnreadCountTracksReadFlags(t *testing.T) {
	h := newHarness(t)
	base := time.Now()

	h.registrations.push([]user.User{testUser(base.Add(-1 * time.Hour)), testUser(base.Add(-2 * time.Hour))})
	h.messages.push([]message.ContactMessage{testMessage(base.Add(-3 * time.Hour))})
	assert.Equal(t, 3, h.agg.UnreadCount())

	feed := h.agg.Feed()
	require.NoError(t, h.agg.MarkAsRead(feed[0].ID))
	assert.Equal(t, 2, h.agg.UnreadCount())

	h.agg.MarkAllAsRead()
	assert.Equal(t, 0, h.agg.UnreadCount())
}

func TestAggregator_MarkAsReadIsLocalOnly(t *testing.T) {
	h := newHarness(t)

	msg := testMessage(time.Now())
	h.messages.push([]message.ContactMessage{msg})

	require.NoError(t, h.agg.MarkAsRead("message-"+msg.ID.String()))

	h.msgActions.mu.Lock()
	defer h.msgActions.mu.Unlock()
	assert.Empty(t, h.msgActions.read)
}

func TestAggregator_MarkAsReadUnknownID(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.agg.MarkAsRead("user-"+uuid.NewString()))
}

func TestAggregator_RedeliveryResetsReadFlags(t *testing.T) {
	h := newHarness(t)

	msg := testMessage(time.Now())
	h.messages.push([]message.ContactMessage{msg})
	require.NoError(t, h.agg.MarkAsRead("message-"+msg.ID.String()))
	assert.Equal(t, 0, h.agg.UnreadCount())

	// The stream redelivers the same pending set. Entries are rebuilt from
	// the snapshot, so the read flag is gone and the count goes back up.
	h.messages.push([]message.ContactMessage{msg})

	feed := h.agg.Feed()
	require.Len(t, feed, 1)
	assert.False(t, feed[0].Read)
	assert.Equal(t, 1, h.agg.UnreadCount())
}

func TestAggregator_OtherStreamRebuildKeepsReadFlags(t *testing.T) {
	h := newHarness(t)
	base := time.Now()

	msg := testMessage(base.Add(-1 * time.Hour))
	h.messages.push([]message.ContactMessage{msg})
	require.NoError(t, h.agg.MarkAsRead("message-"+msg.ID.String()))

	h.registrations.push([]user.User{testUser(base)})

	feed := h.agg.Feed()
	require.Len(t, feed, 2)
	for _, n := range feed {
		if n.ID == "message-"+msg.ID.String() {
			assert.True(t, n.Read)
		}
	}
	assert.Equal(t, 1, h.agg.UnreadCount())
}

func TestAggregator_StreamErrorTreatedAsEmpty(t *testing.T) {
	h := newHarness(t)
	base := time.Now()

	h.registrations.push([]user.User{testUser(base)})
	h.messages.push([]message.ContactMessage{testMessage(base)})
	require.Len(t, h.agg.Feed(), 2)

	h.registrations.fail(assert.AnError)

	feed := h.agg.Feed()
	require.Len(t, feed, 1)
	assert.Equal(t, TypeMessage, feed[0].Type)
}

func TestAggregator_ChimeNotPlayedOnFirstLoad(t *testing.T) {
	h := newHarness(t)

	h.registrations.push([]user.User{testUser(time.Now())})
	h.messages.push([]message.ContactMessage{testMessage(time.Now())})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, h.chimes.total())
}

func TestAggregator_ChimePlayedOnRedelivery(t *testing.T) {
	h := newHarness(t)

	h.registrations.push(nil)
	h.registrations.push([]user.User{testUser(time.Now())})

	require.Eventually(t, func() bool {
		return h.chimes.total() == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestAggregator_PanickingChimeIsSwallowed(t *testing.T) {
	registrations := &fakeRegistrationStream{}
	messages := &fakeMessageStream{}
	agg := NewAggregator(&fakeUserActions{}, &fakeMessageActions{}, registrations, messages,
		func() { panic("audio backend unavailable") }, zap.NewNop())
	require.NoError(t, agg.Start(context.Background()))
	defer agg.Stop()

	registrations.push(nil)
	registrations.push([]user.User{testUser(time.Now())})

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, agg.Feed(), 1)
}

func TestAggregator_ApproveSuccessPrunes(t *testing.T) {
	h := newHarness(t)

	u := testUser(time.Now())
	h.registrations.push([]user.User{u})
	require.Len(t, h.agg.Feed(), 1)

	err := h.agg.Approve(context.Background(), "user-"+u.ID.String())

	require.NoError(t, err)
	assert.Empty(t, h.agg.Feed())
	h.userActions.mu.Lock()
	defer h.userActions.mu.Unlock()
	assert.Equal(t, []uuid.UUID{u.ID}, h.userActions.approved)
}

func TestAggregator_ApproveFailureLeavesFeedUnchanged(t *testing.T) {
	h := newHarness(t)
	h.userActions.err = assert.AnError

	u := testUser(time.Now())
	h.registrations.push([]user.User{u})
	before := h.agg.Feed()

	err := h.agg.Approve(context.Background(), "user-"+u.ID.String())

	require.Error(t, err)
	assert.Equal(t, before, h.agg.Feed())
}

func TestAggregator_RejectSuccessPrunes(t *testing.T) {
	h := newHarness(t)

	u := testUser(time.Now())
	h.registrations.push([]user.User{u})

	require.NoError(t, h.agg.Reject(context.Background(), "user-"+u.ID.String()))
	assert.Empty(t, h.agg.Feed())
}

func TestAggregator_ResolveSuccessPrunes(t *testing.T) {
	h := newHarness(t)

	m := testMessage(time.Now())
	h.messages.push([]message.ContactMessage{m})

	require.NoError(t, h.agg.Resolve(context.Background(), "message-"+m.ID.String()))
	assert.Empty(t, h.agg.Feed())
	h.msgActions.mu.Lock()
	defer h.msgActions.mu.Unlock()
	assert.Equal(t, []uuid.UUID{m.ID}, h.msgActions.read)
}

func TestAggregator_ResolveFailureLeavesFeedUnchanged(t *testing.T) {
	h := newHarness(t)
	h.msgActions.err = assert.AnError

	m := testMessage(time.Now())
	h.messages.push([]message.ContactMessage{m})
	before := h.agg.Feed()

	require.Error(t, h.agg.Resolve(context.Background(), "message-"+m.ID.String()))
	assert.Equal(t, before, h.agg.Feed())
}

func TestAggregator_ActionOnWrongTypeFails(t *testing.T) {
	h := newHarness(t)

	m := testMessage(time.Now())
	h.messages.push([]message.ContactMessage{m})

	assert.Error(t, h.agg.Approve(context.Background(), "message-"+m.ID.String()))
	assert.Error(t, h.agg.Resolve(context.Background(), "user-"+uuid.NewString()))
}

func TestAggregator_VersionAdvancesOnChange(t *testing.T) {
	h := newHarness(t)

	v0 := h.agg.Version()
	h.registrations.push([]user.User{testUser(time.Now())})
	v1 := h.agg.Version()
	assert.Greater(t, v1, v0)

	h.agg.MarkAllAsRead()
	assert.Greater(t, h.agg.Version(), v1)
}
