// File: internal/mail/service.go
package mail

import "context"

// Email is an outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Service sends transactional email. Callers treat failures as non-fatal; the
// portal never blocks a request on mail delivery.
type Service interface {
	Send(ctx context.Context, email Email) error
}
