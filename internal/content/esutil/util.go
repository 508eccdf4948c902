// File: internal/content/esutil/util.go
package esutil

import (
	"school_portal_backend/internal/content"
)

// NewsPostToElasticsearchDoc converts a news post to its Elasticsearch
// document representation. Used by the sync-news bulk reindex command.
func NewsPostToElasticsearchDoc(p *content.NewsPost) (string, error) {
	return content.NewsPostSearchDocument(p)
}
