// File: internal/mail/provider.go
package mail

import (
	"school_portal_backend/internal/config"

	"go.uber.org/zap"
)

// NewService picks the mail backend from configuration. Without an API key the
// portal still runs, it just logs mail instead of sending it.
func NewService(cfg *config.Config, logger *zap.Logger) Service {
	if cfg.SendgridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY not set, using console mail backend")
		return NewConsoleService(logger)
	}
	return NewSendgridService(cfg, logger)
}
