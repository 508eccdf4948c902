// File: internal/content/service.go
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school_portal_backend/internal/common"
	platformES "school_portal_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service handles news, announcement and testimonial business logic.
type Service struct {
	repo     Repository
	esClient *platformES.ESClientWrapper
	logger   *zap.Logger
}

// NewService creates a new content service. esClient may be nil; search then
// falls back to the relational store.
func NewService(repo Repository, esClient *platformES.ESClientWrapper, logger *zap.Logger) *Service {
	return &Service{repo: repo, esClient: esClient, logger: logger}
}

// --- News posts ---

// CreateNewsPost creates a draft post. The slug derives from the French title,
// suffixed on collision.
func (s *Service) CreateNewsPost(ctx context.Context, authorID uuid.UUID, req CreateNewsPostRequest) (*NewsPost, error) {
	postSlug, err := s.uniqueSlug(ctx, req.TitleFR)
	if err != nil {
		s.logger.Error("Failed to derive news post slug", zap.Error(err))
		return nil, err
	}
	post := &NewsPost{
		Slug:          postSlug,
		TitleFR:       req.TitleFR,
		TitleAR:       req.TitleAR,
		BodyFR:        req.BodyFR,
		BodyAR:        req.BodyAR,
		CoverImageURL: req.CoverImageURL,
		AuthorID:      authorID,
	}
	if err := s.repo.CreateNewsPost(ctx, post); err != nil {
		s.logger.Error("Failed to create news post", zap.Error(err))
		return nil, err
	}
	s.indexNewsPost(post)
	return post, nil
}

// uniqueSlug suffixes the base slug until it is free. Only a confirmed
// not-found counts as free; any other repository error aborts the create.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		_, err := s.repo.FindNewsPostBySlug(ctx, candidate)
		if err != nil {
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
				return candidate, nil
			}
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) GetNewsPostBySlug(ctx context.Context, postSlug string) (*NewsPost, error) {
	post, err := s.repo.FindNewsPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, common.ErrNotFound.WithDetails("News post not found.")
	}
	return post, nil
}

func (s *Service) GetNewsPostByID(ctx context.Context, id uuid.UUID) (*NewsPost, error) {
	return s.repo.FindNewsPostByID(ctx, id)
}

func (s *Service) UpdateNewsPost(ctx context.Context, id uuid.UUID, req UpdateNewsPostRequest) (*NewsPost, error) {
	post, err := s.repo.FindNewsPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.TitleFR != nil {
		post.TitleFR = *req.TitleFR
	}
	if req.TitleAR != nil {
		post.TitleAR = *req.TitleAR
	}
	if req.BodyFR != nil {
		post.BodyFR = *req.BodyFR
	}
	if req.BodyAR != nil {
		post.BodyAR = *req.BodyAR
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = req.CoverImageURL
	}
	if err := s.repo.UpdateNewsPost(ctx, post); err != nil {
		s.logger.Error("Failed to update news post", zap.Error(err), zap.String("postID", id.String()))
		return nil, err
	}
	s.indexNewsPost(post)
	return post, nil
}

// PublishNewsPost makes a draft visible and stamps its publication time.
func (s *Service) PublishNewsPost(ctx context.Context, id uuid.UUID) (*NewsPost, error) {
	post, err := s.repo.FindNewsPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.IsPublished {
		return post, nil
	}
	now := time.Now()
	post.IsPublished = true
	post.PublishedAt = &now
	if err := s.repo.UpdateNewsPost(ctx, post); err != nil {
		return nil, err
	}
	s.indexNewsPost(post)
	s.logger.Info("News post published", zap.String("postID", id.String()), zap.String("slug", post.Slug))
	return post, nil
}

func (s *Service) UnpublishNewsPost(ctx context.Context, id uuid.UUID) (*NewsPost, error) {
	post, err := s.repo.FindNewsPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.IsPublished = false
	if err := s.repo.UpdateNewsPost(ctx, post); err != nil {
		return nil, err
	}
	s.indexNewsPost(post)
	return post, nil
}

func (s *Service) DeleteNewsPost(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNewsPost(ctx, id); err != nil {
		return err
	}
	s.deleteNewsPostFromIndex(id)
	return nil
}

func (s *Service) ListNewsPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]NewsPost, *common.Pagination, error) {
	return s.repo.ListNewsPosts(ctx, publishedOnly, page, pageSize)
}

// SearchNewsPosts searches published posts. Uses Elasticsearch when available,
// otherwise the relational fallback.
func (s *Service) SearchNewsPosts(ctx context.Context, query NewsSearchQuery) ([]NewsPost, *common.Pagination, error) {
	if query.PageSize <= 0 {
		query.PageSize = common.DefaultPageSize
	}
	if query.Page <= 0 {
		query.Page = common.DefaultPage
	}
	if s.esClient == nil || query.Term == "" {
		return s.repo.SearchNewsPosts(ctx, query)
	}

	posts, pagination, err := s.searchNewsPostsES(ctx, query)
	if err != nil {
		s.logger.Warn("Elasticsearch search failed, falling back to database", zap.Error(err))
		return s.repo.SearchNewsPosts(ctx, query)
	}
	return posts, pagination, nil
}

func (s *Service) searchNewsPostsES(ctx context.Context, query NewsSearchQuery) ([]NewsPost, *common.Pagination, error) {
	fields := []string{"title_fr^2", "body_fr"}
	if query.Locale == common.LocaleArabic {
		fields = []string{"title_ar^2", "body_ar"}
	}

	esQuery := map[string]interface{}{
		"from": (query.Page - 1) * query.PageSize,
		"size": query.PageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query.Term,
						"fields": fields,
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_published": true},
				},
			},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(esQuery); err != nil {
		return nil, nil, fmt.Errorf("error encoding search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(platformES.NewsIndexName),
		s.esClient.Search.WithBody(&body),
	)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, nil, fmt.Errorf("elasticsearch search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, nil, fmt.Errorf("error decoding search response: %w", err)
	}

	posts := make([]NewsPost, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		post, err := s.repo.FindNewsPostByID(ctx, id)
		if err != nil {
			// Index can lag behind deletions.
			continue
		}
		posts = append(posts, *post)
	}

	pagination := common.NewPagination(parsed.Hits.Total.Value, query.Page, query.PageSize)
	return posts, pagination, nil
}

// indexNewsPost pushes one post into the search index. Best-effort; the write
// path never fails on index errors.
func (s *Service) indexNewsPost(post *NewsPost) {
	if s.esClient == nil {
		return
	}
	docJSON, err := NewsPostSearchDocument(post)
	if err != nil {
		s.logger.Error("Failed to convert news post for indexing", zap.Error(err), zap.String("postID", post.ID.String()))
		return
	}

	req := esapi.IndexRequest{
		Index:      platformES.NewsIndexName,
		DocumentID: post.ID.String(),
		Body:       bytes.NewReader([]byte(docJSON)),
	}
	res, err := req.Do(context.Background(), s.esClient.Client)
	if err != nil {
		s.logger.Warn("Failed to index news post", zap.Error(err), zap.String("postID", post.ID.String()))
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logger.Warn("Elasticsearch rejected news post document",
			zap.String("status", res.Status()), zap.String("postID", post.ID.String()))
	}
}

func (s *Service) deleteNewsPostFromIndex(id uuid.UUID) {
	if s.esClient == nil {
		return
	}
	req := esapi.DeleteRequest{
		Index:      platformES.NewsIndexName,
		DocumentID: id.String(),
	}
	res, err := req.Do(context.Background(), s.esClient.Client)
	if err != nil {
		s.logger.Warn("Failed to delete news post from index", zap.Error(err), zap.String("postID", id.String()))
		return
	}
	res.Body.Close()
}

// --- Announcements ---

func (s *Service) CreateAnnouncement(ctx context.Context, req CreateAnnouncementRequest) (*Announcement, error) {
	ann := &Announcement{
		TitleFR:   req.TitleFR,
		TitleAR:   req.TitleAR,
		BodyFR:    req.BodyFR,
		BodyAR:    req.BodyAR,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.repo.CreateAnnouncement(ctx, ann); err != nil {
		s.logger.Error("Failed to create announcement", zap.Error(err))
		return nil, err
	}
	return ann, nil
}

// ActiveAnnouncements returns non-expired active announcements, newest first.
func (s *Service) ActiveAnnouncements(ctx context.Context) ([]Announcement, error) {
	return s.repo.ListActiveAnnouncements(ctx, time.Now())
}

func (s *Service) DeactivateAnnouncement(ctx context.Context, id uuid.UUID) error {
	ann, err := s.repo.FindAnnouncementByID(ctx, id)
	if err != nil {
		return err
	}
	ann.IsActive = false
	return s.repo.UpdateAnnouncement(ctx, ann)
}

func (s *Service) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAnnouncement(ctx, id)
}

// --- Testimonials ---

func (s *Service) SubmitTestimonial(ctx context.Context, req SubmitTestimonialRequest) (*Testimonial, error) {
	tst := &Testimonial{
		AuthorName: req.AuthorName,
		AuthorRole: req.AuthorRole,
		QuoteFR:    req.QuoteFR,
		QuoteAR:    req.QuoteAR,
	}
	if err := s.repo.CreateTestimonial(ctx, tst); err != nil {
		s.logger.Error("Failed to store testimonial", zap.Error(err))
		return nil, err
	}
	return tst, nil
}

func (s *Service) ApproveTestimonial(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	tst, err := s.repo.FindTestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tst.IsApproved = true
	if err := s.repo.UpdateTestimonial(ctx, tst); err != nil {
		return nil, err
	}
	return tst, nil
}

func (s *Service) ApprovedTestimonials(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListApprovedTestimonials(ctx)
}
