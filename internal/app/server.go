// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"school_portal_backend/internal/auth"
	"school_portal_backend/internal/club"
	"school_portal_backend/internal/common"
	"school_portal_backend/internal/config"
	"school_portal_backend/internal/content"
	"school_portal_backend/internal/course"
	"school_portal_backend/internal/event"
	"school_portal_backend/internal/filestorage"
	"school_portal_backend/internal/firebase"
	"school_portal_backend/internal/gallery"
	"school_portal_backend/internal/jobs"
	"school_portal_backend/internal/message"
	"school_portal_backend/internal/middleware"
	"school_portal_backend/internal/notification"
	"school_portal_backend/internal/shared"
	"school_portal_backend/internal/sitesettings"
	"school_portal_backend/internal/user"

	platformElasticsearch "school_portal_backend/internal/platform/elasticsearch"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Exposed for startup tasks in main.
	AppLogger *zap.Logger
	ESClient  *platformElasticsearch.ESClientWrapper

	// Handlers
	authHandler         *auth.Handler
	userHandler         *user.Handler
	messageHandler      *message.Handler
	notificationHandler *notification.Handler
	contentHandler      *content.Handler
	eventHandler        *event.Handler
	clubHandler         *club.Handler
	galleryHandler      *gallery.Handler
	courseHandler       *course.Handler
	settingsHandler     *sitesettings.Handler

	// Background workers
	aggregator       *notification.Aggregator
	eventArchivalJob *jobs.EventArchivalJob
	clubService      *club.Service

	aggregatorCancel context.CancelFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	messageHandler *message.Handler,
	notificationHandler *notification.Handler,
	contentHandler *content.Handler,
	eventHandler *event.Handler,
	clubHandler *club.Handler,
	galleryHandler *gallery.Handler,
	courseHandler *course.Handler,
	settingsHandler *sitesettings.Handler,
	aggregator *notification.Aggregator,
	eventArchivalJob *jobs.EventArchivalJob,
	clubService *club.Service,
	db *gorm.DB,
	esClient *platformElasticsearch.ESClientWrapper,
	firebaseService *firebase.FirebaseService,
	userService shared.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, userService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)
	staffRoleMW := middleware.RoleAuthMiddleware(common.RoleTeacher, common.RoleAdmin)
	activeMW := middleware.RoleAuthMiddleware(common.RoleStudent, common.RoleTeacher, common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "School Portal API is healthy!"})
	})

	// The local backend serves uploaded media directly.
	if cfg.StorageBackend == "local" || cfg.StorageBackend == "" {
		router.Static(filestorage.MediaURLPrefix, cfg.LocalStoragePath)
	}

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	messageHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	notificationHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	contentHandler.RegisterRoutes(v1, authMW, staffRoleMW, adminRoleMW)
	eventHandler.RegisterRoutes(v1, authMW, staffRoleMW)
	clubHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	galleryHandler.RegisterRoutes(v1, authMW, staffRoleMW)
	courseHandler.RegisterRoutes(v1, authMW, activeMW, staffRoleMW)
	settingsHandler.RegisterRoutes(v1, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:          httpServer,
		router:              router,
		cfg:                 cfg,
		logger:              logger,
		AppLogger:           logger,
		ESClient:            esClient,
		authHandler:         authHandler,
		userHandler:         userHandler,
		messageHandler:      messageHandler,
		notificationHandler: notificationHandler,
		contentHandler:      contentHandler,
		eventHandler:        eventHandler,
		clubHandler:         clubHandler,
		galleryHandler:      galleryHandler,
		courseHandler:       courseHandler,
		settingsHandler:     settingsHandler,
		aggregator:          aggregator,
		eventArchivalJob:    eventArchivalJob,
		clubService:         clubService,
	}, nil
}

// Start brings up the background workers and blocks serving HTTP.
func (s *Server) Start() error {
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := s.clubService.SeedDefaultClubs(seedCtx); err != nil {
		s.logger.Error("Failed to seed default clubs", zap.Error(err))
	}
	cancelSeed()

	if s.aggregator != nil {
		aggCtx, cancel := context.WithCancel(context.Background())
		s.aggregatorCancel = cancel
		if err := s.aggregator.Start(aggCtx); err != nil {
			s.logger.Error("Failed to start notification aggregator", zap.Error(err))
		}
	}

	if s.eventArchivalJob != nil {
		if err := s.eventArchivalJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start event archival job", zap.Error(err))
		}
	} else {
		s.logger.Info("Event archival job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

// Shutdown stops the background workers and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.eventArchivalJob != nil {
		s.eventArchivalJob.Stop()
	}
	if s.aggregator != nil {
		s.aggregator.Stop()
	}
	if s.aggregatorCancel != nil {
		s.aggregatorCancel()
	}
	return s.httpServer.Shutdown(ctx)
}
