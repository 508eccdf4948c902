// File: internal/livequery/messages.go
package livequery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school_portal_backend/internal/message"

	"go.uber.org/zap"
)

// MessageProvider yields the current pending contact messages, newest first,
// capped at limit.
type MessageProvider interface {
	PendingMessages(ctx context.Context, limit int) ([]message.ContactMessage, error)
}

// PendingMessageSource streams the set of pending contact messages.
type PendingMessageSource struct {
	provider MessageProvider
	interval time.Duration
	limit    int
	logger   *zap.Logger
}

// NewPendingMessageSource creates a source polling at the given interval and
// capping each snapshot at limit messages.
func NewPendingMessageSource(provider MessageProvider, interval time.Duration, limit int, logger *zap.Logger) *PendingMessageSource {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if limit <= 0 {
		limit = 50
	}
	return &PendingMessageSource{
		provider: provider,
		interval: interval,
		limit:    limit,
		logger:   logger.Named("MessageSource"),
	}
}

// Subscribe starts delivering snapshots, same contract as the registration
// source: immediate first delivery, full set on every change.
func (s *PendingMessageSource) Subscribe(
	ctx context.Context,
	onSnapshot func([]message.ContactMessage),
	onError func(error),
) (cancel func()) {
	loopCtx, stop := context.WithCancel(ctx)

	go func() {
		var lastFingerprint string
		first := true

		deliver := func() {
			msgs, err := s.provider.PendingMessages(loopCtx, s.limit)
			if err != nil {
				if loopCtx.Err() != nil {
					return
				}
				s.logger.Warn("Pending message query failed", zap.Error(err))
				if onError != nil {
					onError(err)
				}
				return
			}
			fp := messageFingerprint(msgs)
			if !first && fp == lastFingerprint {
				return
			}
			first = false
			lastFingerprint = fp
			onSnapshot(msgs)
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

func messageFingerprint(msgs []message.ContactMessage) string {
	var b strings.Builder
	for i := range msgs {
		fmt.Fprintf(&b, "%s:%d;", msgs[i].ID, msgs[i].UpdatedAt.UnixNano())
	}
	return b.String()
}
