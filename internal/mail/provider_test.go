// File: internal/mail/provider_test.go
package mail

import (
	"testing"

	"school_portal_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewService_NoAPIKeyFallsBackToConsole(t *testing.T) {
	svc := NewService(&config.Config{}, zap.NewNop())

	_, ok := svc.(*ConsoleService)
	require.True(t, ok, "expected the console backend when no SendGrid key is configured")
}

func TestNewService_APIKeySelectsSendgrid(t *testing.T) {
	cfg := &config.Config{
		SendgridAPIKey:  "SG.test-key",
		MailFromName:    "School Portal",
		MailFromAddress: "no-reply@school.example",
	}

	svc := NewService(cfg, zap.NewNop())

	sg, ok := svc.(*SendgridService)
	require.True(t, ok, "expected the SendGrid backend when a key is configured")
	assert.Equal(t, "School Portal", sg.fromName)
	assert.Equal(t, "no-reply@school.example", sg.fromAddr)
}
