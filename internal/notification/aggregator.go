// File: internal/notification/aggregator.go
package notification

import (
	"context"
	"sync"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/message"
	"school_portal_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserActions are the account operations an admin can take from the feed.
// Satisfied by the user service.
type UserActions interface {
	ApproveUser(ctx context.Context, id uuid.UUID) error
	RejectUser(ctx context.Context, id uuid.UUID) error
}

// MessageActions are the message operations an admin can take from the feed.
// Satisfied by the contact message service.
type MessageActions interface {
	MarkMessageAsRead(ctx context.Context, id uuid.UUID) error
}

// RegistrationStream delivers pending registration snapshots.
// Satisfied by livequery.PendingRegistrationSource.
type RegistrationStream interface {
	Subscribe(ctx context.Context, onSnapshot func([]user.User), onError func(error)) (cancel func())
}

// MessageStream delivers pending contact message snapshots.
// Satisfied by livequery.PendingMessageSource.
type MessageStream interface {
	Subscribe(ctx context.Context, onSnapshot func([]message.ContactMessage), onError func(error)) (cancel func())
}

// Chime plays the new-notification sound on whatever frontend channel is
// wired. It is fire-and-forget: never awaited and failures are swallowed.
type Chime func()

// Aggregator merges the pending registration stream and the pending contact
// message stream into one admin notification feed.
//
// Read flags live only in the aggregator. A stream redelivery rebuilds that
// stream's entries from scratch, so redelivered notifications come back
// unread even if they were marked read before. Admins re-dismiss them; the
// feed itself stays consistent.
type Aggregator struct {
	userActions    UserActions
	messageActions MessageActions
	registrations  RegistrationStream
	messages       MessageStream
	chime          Chime
	logger         *zap.Logger

	mu                 sync.Mutex
	running            bool
	stopFuncs          []func()
	registrationFeed   []Notification
	messageFeed        []Notification
	feed               []Notification
	version            uint64
	registrationLoaded bool
	messageLoaded      bool
}

// NewAggregator creates a stopped aggregator. Chime may be nil.
func NewAggregator(
	userActions UserActions,
	messageActions MessageActions,
	registrations RegistrationStream,
	messages MessageStream,
	chime Chime,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		userActions:    userActions,
		messageActions: messageActions,
		registrations:  registrations,
		messages:       messages,
		chime:          chime,
		logger:         logger.Named("NotificationAggregator"),
	}
}

// Start subscribes to both streams. Calling Start on a running aggregator is
// an error.
func (a *Aggregator) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return common.ErrConflict.WithDetails("Notification aggregator is already running.")
	}

	cancelRegistrations := a.registrations.Subscribe(ctx, a.onRegistrations, func(err error) {
		a.onStreamError("registrations", err)
	})
	cancelMessages := a.messages.Subscribe(ctx, a.onMessages, func(err error) {
		a.onStreamError("messages", err)
	})

	a.stopFuncs = []func(){cancelRegistrations, cancelMessages}
	a.running = true
	a.logger.Info("Notification aggregator started")
	return nil
}

// Stop unsubscribes from both streams. The current feed remains readable.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	for _, stop := range a.stopFuncs {
		stop()
	}
	a.stopFuncs = nil
	a.running = false
	a.logger.Info("Notification aggregator stopped")
}

// onRegistrations replaces the registration side of the feed with the new
// snapshot. Every rebuilt entry starts unread.
func (a *Aggregator) onRegistrations(users []user.User) {
	fresh := make([]Notification, 0, len(users))
	for i := range users {
		fresh = append(fresh, FromRegistration(&users[i]))
	}

	a.mu.Lock()
	first := !a.registrationLoaded
	a.registrationLoaded = true
	a.registrationFeed = fresh
	a.rebuildLocked()
	unread := a.unreadCountLocked()
	a.mu.Unlock()

	if !first && unread > 0 {
		a.playChime()
	}
}

// onMessages replaces the message side of the feed with the new snapshot.
func (a *Aggregator) onMessages(msgs []message.ContactMessage) {
	fresh := make([]Notification, 0, len(msgs))
	for i := range msgs {
		fresh = append(fresh, FromMessage(&msgs[i]))
	}

	a.mu.Lock()
	first := !a.messageLoaded
	a.messageLoaded = true
	a.messageFeed = fresh
	a.rebuildLocked()
	unread := a.unreadCountLocked()
	a.mu.Unlock()

	if !first && unread > 0 {
		a.playChime()
	}
}

// onStreamError logs the failure and treats the stream as empty so the rest
// of the feed stays usable.
func (a *Aggregator) onStreamError(stream string, err error) {
	a.logger.Error("Notification stream failed, treating as empty",
		zap.String("stream", stream), zap.Error(err))

	a.mu.Lock()
	defer a.mu.Unlock()
	switch stream {
	case "registrations":
		a.registrationFeed = nil
	case "messages":
		a.messageFeed = nil
	}
	a.rebuildLocked()
}

func (a *Aggregator) rebuildLocked() {
	a.feed = Merge(a.registrationFeed, a.messageFeed)
	a.version++
}

// playChime invokes the chime without waiting for it. A panicking chime must
// never take the feed down with it.
func (a *Aggregator) playChime() {
	if a.chime == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Debug("Notification chime failed", zap.Any("panic", r))
			}
		}()
		a.chime()
	}()
}

// Feed returns a copy of the current merged feed, newest first.
func (a *Aggregator) Feed() []Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Notification, len(a.feed))
	copy(out, a.feed)
	return out
}

// UnreadCount returns the number of unread entries in the current feed.
func (a *Aggregator) UnreadCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unreadCountLocked()
}

func (a *Aggregator) unreadCountLocked() int {
	count := 0
	for i := range a.feed {
		if !a.feed[i].Read {
			count++
		}
	}
	return count
}

// Version increments whenever the feed content changes. SSE clients use it to
// know when to resend.
func (a *Aggregator) Version() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version
}

// MarkAsRead sets the local read flag on one notification. Nothing is written
// to the backend; the flag survives only until that stream redelivers.
func (a *Aggregator) MarkAsRead(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.feed {
		if a.feed[i].ID == id {
			if !a.feed[i].Read {
				a.feed[i].Read = true
				a.markStreamReadLocked(id)
				a.version++
			}
			return nil
		}
	}
	return common.ErrNotFound.WithDetails("Notification not found in the current feed.")
}

// MarkAllAsRead sets the local read flag on every entry.
func (a *Aggregator) MarkAllAsRead() {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := false
	for i := range a.feed {
		if !a.feed[i].Read {
			a.feed[i].Read = true
			a.markStreamReadLocked(a.feed[i].ID)
			changed = true
		}
	}
	if changed {
		a.version++
	}
}

// markStreamReadLocked mirrors a read flag into the per-stream slice so an
// unrelated rebuild of the OTHER stream does not lose it. A redelivery of the
// owning stream still clobbers it.
func (a *Aggregator) markStreamReadLocked(id string) {
	for i := range a.registrationFeed {
		if a.registrationFeed[i].ID == id {
			a.registrationFeed[i].Read = true
			return
		}
	}
	for i := range a.messageFeed {
		if a.messageFeed[i].ID == id {
			a.messageFeed[i].Read = true
			return
		}
	}
}

// Approve approves the pending account behind a registration notification.
// The entry is pruned locally only after the backend confirms.
func (a *Aggregator) Approve(ctx context.Context, id string) error {
	kind, sourceID, err := splitID(id)
	if err != nil {
		return common.ErrBadRequest.WithDetails("Invalid notification ID.")
	}
	if kind != TypeRegistration {
		return common.ErrBadRequest.WithDetails("Only registration notifications can be approved.")
	}
	if err := a.userActions.ApproveUser(ctx, sourceID); err != nil {
		return err
	}
	a.prune(id)
	return nil
}

// Reject rejects the pending account behind a registration notification.
func (a *Aggregator) Reject(ctx context.Context, id string) error {
	kind, sourceID, err := splitID(id)
	if err != nil {
		return common.ErrBadRequest.WithDetails("Invalid notification ID.")
	}
	if kind != TypeRegistration {
		return common.ErrBadRequest.WithDetails("Only registration notifications can be rejected.")
	}
	if err := a.userActions.RejectUser(ctx, sourceID); err != nil {
		return err
	}
	a.prune(id)
	return nil
}

// Resolve marks the contact message behind a message notification as read in
// the backend, then prunes the entry.
func (a *Aggregator) Resolve(ctx context.Context, id string) error {
	kind, sourceID, err := splitID(id)
	if err != nil {
		return common.ErrBadRequest.WithDetails("Invalid notification ID.")
	}
	if kind != TypeMessage {
		return common.ErrBadRequest.WithDetails("Only message notifications can be resolved.")
	}
	if err := a.messageActions.MarkMessageAsRead(ctx, sourceID); err != nil {
		return err
	}
	a.prune(id)
	return nil
}

// prune removes one entry from the feed and its stream slice.
func (a *Aggregator) prune(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registrationFeed = removeByID(a.registrationFeed, id)
	a.messageFeed = removeByID(a.messageFeed, id)
	a.rebuildLocked()
}

func removeByID(feed []Notification, id string) []Notification {
	for i := range feed {
		if feed[i].ID == id {
			return append(feed[:i:i], feed[i+1:]...)
		}
	}
	return feed
}
