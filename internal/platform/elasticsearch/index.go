// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// NewsIndexName is the index holding published news posts for site search.
const NewsIndexName = "news_posts"

// defineNewsMapping returns the JSON string for the news index mapping.
// Both the French and Arabic fields are full-text searchable.
func defineNewsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title_fr":     map[string]interface{}{"type": "text", "analyzer": "french"},
				"title_ar":     map[string]interface{}{"type": "text", "analyzer": "arabic"},
				"body_fr":      map[string]interface{}{"type": "text", "analyzer": "french"},
				"body_ar":      map[string]interface{}{"type": "text", "analyzer": "arabic"},
				"is_published": map[string]interface{}{"type": "boolean"},
				"created_at":   map[string]interface{}{"type": "date"},
				"updated_at":   map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling news mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateNewsIndexIfNotExists creates the news index with the defined mapping
// if it does not already exist.
func CreateNewsIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	existsReq := esapi.IndicesExistsRequest{
		Index: []string{NewsIndexName},
	}
	res, err := existsReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if news index exists", zap.Error(err))
		return fmt.Errorf("error checking if news index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("News index already exists", zap.String("index_name", NewsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Unexpected status checking news index", zap.String("status", res.Status()))
		return fmt.Errorf("unexpected status checking news index: %s", res.Status())
	}

	mapping, err := defineNewsMapping()
	if err != nil {
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: NewsIndexName,
		Body:  strings.NewReader(mapping),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating news index", zap.Error(err))
		return fmt.Errorf("error creating news index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		log.Error("News index creation returned an error", zap.String("status", createRes.Status()))
		return fmt.Errorf("news index creation error: %s", createRes.Status())
	}

	log.Info("News index created", zap.String("index_name", NewsIndexName))
	return nil
}
