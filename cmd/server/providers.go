// File: cmd/server/providers.go
package main

import (
	"log"

	"school_portal_backend/internal/config"
	"school_portal_backend/internal/livequery"
	"school_portal_backend/internal/message"
	"school_portal_backend/internal/notification"
	"school_portal_backend/internal/platform/database"
	"school_portal_backend/internal/user"

	platformElasticsearch "school_portal_backend/internal/platform/elasticsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideESClient tolerates a missing Elasticsearch; search then falls back to
// the relational path.
func provideESClient(cfg *config.Config, logger *zap.Logger) *platformElasticsearch.ESClientWrapper {
	esClient, err := platformElasticsearch.NewClient(cfg, logger)
	if err != nil {
		logger.Warn("Elasticsearch client not available, search will use the database fallback", zap.Error(err))
		return nil
	}
	return esClient
}

func provideRegistrationSource(
	userService *user.ServiceImplementation,
	cfg *config.Config,
	logger *zap.Logger,
) *livequery.PendingRegistrationSource {
	return livequery.NewPendingRegistrationSource(userService, cfg.NotificationPollInterval, logger)
}

func provideMessageSource(
	messageService *message.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *livequery.PendingMessageSource {
	return livequery.NewPendingMessageSource(messageService, cfg.NotificationPollInterval, cfg.NotificationMessageLimit, logger)
}

// provideChime is the server-side hook for the admin-facing notification
// sound. Clients play the actual audio; here we only leave a trace.
func provideChime(logger *zap.Logger) notification.Chime {
	chimeLogger := logger.Named("NotificationChime")
	return func() {
		chimeLogger.Debug("New notification chime")
	}
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
