// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"school_portal_backend/internal/app"
	"school_portal_backend/internal/auth"
	"school_portal_backend/internal/club"
	"school_portal_backend/internal/config"
	"school_portal_backend/internal/content"
	"school_portal_backend/internal/course"
	"school_portal_backend/internal/event"
	"school_portal_backend/internal/filestorage"
	"school_portal_backend/internal/firebase"
	"school_portal_backend/internal/gallery"
	"school_portal_backend/internal/jobs"
	"school_portal_backend/internal/livequery"
	"school_portal_backend/internal/mail"
	"school_portal_backend/internal/message"
	"school_portal_backend/internal/notification"
	"school_portal_backend/internal/platform/database"
	"school_portal_backend/internal/platform/logger"
	"school_portal_backend/internal/shared"
	"school_portal_backend/internal/sitesettings"
	"school_portal_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideESClient,
		provideCleanup,

		// Firebase
		firebase.NewFirebaseService,

		// Core user services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),
		user.NewHandler,
		auth.NewHandler,

		// Contact messages
		mail.NewService,
		message.NewGORMRepository,
		message.NewService,
		message.NewHandler,

		// Notification feed
		provideRegistrationSource,
		provideMessageSource,
		provideChime,
		wire.Bind(new(notification.UserActions), new(*user.ServiceImplementation)),
		wire.Bind(new(notification.MessageActions), new(*message.Service)),
		wire.Bind(new(notification.RegistrationStream), new(*livequery.PendingRegistrationSource)),
		wire.Bind(new(notification.MessageStream), new(*livequery.PendingMessageSource)),
		notification.NewAggregator,
		notification.NewHandler,

		// Site content
		content.NewGORMRepository,
		content.NewService,
		content.NewHandler,
		event.NewGORMRepository,
		event.NewService,
		event.NewHandler,
		club.NewGORMRepository,
		club.NewService,
		club.NewHandler,
		sitesettings.NewService,
		sitesettings.NewHandler,

		// Media
		filestorage.NewStorage,
		gallery.NewGORMRepository,
		gallery.NewService,
		gallery.NewHandler,

		// E-learning
		course.NewGORMRepository,
		course.NewService,
		course.NewHandler,

		// Jobs
		jobs.NewEventArchivalJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
