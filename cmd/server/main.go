// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"school_portal_backend/internal/config"
	"school_portal_backend/internal/content"
	"school_portal_backend/internal/content/esutil"
	"school_portal_backend/internal/platform/database"
	"school_portal_backend/internal/platform/logger"
	"school_portal_backend/pkg/migration"

	platformElasticsearch "school_portal_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

func main() {
	syncNewsCmd := flag.NewFlagSet("sync-news", flag.ExitOnError)
	batchSize := syncNewsCmd.Int("batch-size", 100, "Batch size for syncing news posts")
	esRefresh := syncNewsCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "sync-news" {
		syncNewsCmd.Parse(os.Args[2:])

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
		}
		appLogger, err := logger.New(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
		}
		db, err := database.NewGORM(cfg)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
		}
		defer database.CloseGORMDB(db)

		esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
		}
		if err := platformElasticsearch.CreateNewsIndexIfNotExists(esClient, appLogger); err != nil {
			appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before sync", zap.Error(err))
		}

		contentRepo := content.NewGORMRepository(db)
		if err := runNewsSync(contentRepo, esClient, appLogger, *batchSize, *esRefresh); err != nil {
			appLogger.Fatal("FATAL: News synchronization failed", zap.Error(err))
		}
		appLogger.Info("News synchronization completed successfully.")
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	if err := migration.AutoMigrate(cfg.DatabaseURL(), cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal("FATAL: Database migration failed", zap.Error(err))
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateNewsIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch news index.", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not initialized, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runNewsSync pushes every news post into Elasticsearch in bulk batches.
func runNewsSync(
	contentRepo content.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	logger *zap.Logger,
	batchSize int,
	esRefresh string,
) error {
	logger.Info("Starting news synchronization to Elasticsearch...",
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", esRefresh),
	)

	offset := 0
	totalSynced := 0
	totalFailed := 0
	batchNumber := 1

	for {
		posts, err := contentRepo.ListAllNewsPosts(context.Background(), offset, batchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch batch %d: %w", batchNumber, err)
		}
		if len(posts) == 0 {
			logger.Info("No more news posts to sync.")
			break
		}

		var bulkRequestBody strings.Builder
		batchCount := 0
		for i := range posts {
			p := &posts[i]
			docJSON, errDoc := esutil.NewsPostToElasticsearchDoc(p)
			if errDoc != nil {
				logger.Error("Failed to convert news post to Elasticsearch document",
					zap.String("newsPostID", p.ID.String()),
					zap.Error(errDoc),
				)
				totalFailed++
				continue
			}
			action := fmt.Sprintf(`{ "index" : { "_index" : "%s", "_id" : "%s" } }%s`,
				platformElasticsearch.NewsIndexName, p.ID.String(), "\n")
			bulkRequestBody.WriteString(action)
			bulkRequestBody.WriteString(docJSON)
			bulkRequestBody.WriteString("\n")
			batchCount++
		}

		if bulkRequestBody.Len() == 0 {
			offset += len(posts)
			batchNumber++
			continue
		}

		logger.Info("Sending bulk request to Elasticsearch",
			zap.Int("batchNumber", batchNumber),
			zap.Int("documentCount", batchCount),
		)
		req := esapi.BulkRequest{
			Body:    strings.NewReader(bulkRequestBody.String()),
			Refresh: esRefresh,
		}
		res, errBulk := req.Do(context.Background(), esClient.Client)
		if errBulk != nil {
			return fmt.Errorf("bulk request for batch %d failed: %w", batchNumber, errBulk)
		}

		var bulkResponse struct {
			Errors bool `json:"errors"`
			Items  []struct {
				Index struct {
					ID     string                 `json:"_id"`
					Status int                    `json:"status"`
					Error  map[string]interface{} `json:"error,omitempty"`
				} `json:"index"`
			} `json:"items"`
		}
		if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
			res.Body.Close()
			return fmt.Errorf("failed to parse bulk response for batch %d: %w", batchNumber, err)
		}
		res.Body.Close()

		batchSynced := 0
		batchFailed := 0
		for _, item := range bulkResponse.Items {
			if item.Index.Error != nil {
				logger.Error("Failed to index news post in bulk batch",
					zap.String("newsPostID", item.Index.ID),
					zap.Any("error", item.Index.Error),
					zap.Int("status", item.Index.Status),
				)
				batchFailed++
			} else {
				batchSynced++
			}
		}

		totalSynced += batchSynced
		totalFailed += batchFailed
		logger.Info("Batch processed.",
			zap.Int("batchNumber", batchNumber),
			zap.Int("syncedInBatch", batchSynced),
			zap.Int("failedInBatch", batchFailed),
		)

		offset += len(posts)
		batchNumber++
	}

	logger.Info("News synchronization process finished.",
		zap.Int("totalSyncedSuccessfully", totalSynced),
		zap.Int("totalFailed", totalFailed),
	)
	if totalFailed > 0 {
		return fmt.Errorf("%d news posts failed to sync", totalFailed)
	}
	return nil
}
