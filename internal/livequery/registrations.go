// File: internal/livequery/registrations.go
package livequery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school_portal_backend/internal/user"

	"go.uber.org/zap"
)

// RegistrationProvider yields the current pending registrations, newest first.
type RegistrationProvider interface {
	PendingRegistrations(ctx context.Context) ([]user.User, error)
}

// PendingRegistrationSource streams the set of pending account registrations.
type PendingRegistrationSource struct {
	provider RegistrationProvider
	interval time.Duration
	logger   *zap.Logger
}

// NewPendingRegistrationSource creates a source polling at the given interval.
func NewPendingRegistrationSource(provider RegistrationProvider, interval time.Duration, logger *zap.Logger) *PendingRegistrationSource {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PendingRegistrationSource{
		provider: provider,
		interval: interval,
		logger:   logger.Named("RegistrationSource"),
	}
}

// Subscribe starts delivering snapshots. onSnapshot receives the full pending
// set each time it changes, starting with an immediate initial delivery.
// onError is invoked for query failures; the loop keeps polling afterwards.
func (s *PendingRegistrationSource) Subscribe(
	ctx context.Context,
	onSnapshot func([]user.User),
	onError func(error),
) (cancel func()) {
	loopCtx, stop := context.WithCancel(ctx)

	go func() {
		var lastFingerprint string
		first := true

		deliver := func() {
			users, err := s.provider.PendingRegistrations(loopCtx)
			if err != nil {
				if loopCtx.Err() != nil {
					return
				}
				s.logger.Warn("Pending registration query failed", zap.Error(err))
				if onError != nil {
					onError(err)
				}
				return
			}
			fp := registrationFingerprint(users)
			if !first && fp == lastFingerprint {
				return
			}
			first = false
			lastFingerprint = fp
			onSnapshot(users)
		}

		deliver()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				deliver()
			}
		}
	}()

	return stop
}

func registrationFingerprint(users []user.User) string {
	var b strings.Builder
	for i := range users {
		fmt.Fprintf(&b, "%s:%d;", users[i].ID, users[i].UpdatedAt.UnixNano())
	}
	return b.String()
}
