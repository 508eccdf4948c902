// File: internal/content/service_test.go
package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&NewsPost{}, &Announcement{}, &Testimonial{}))
	return NewService(NewGORMRepository(db), nil, zap.NewNop())
}

func TestCreateNewsPost_SlugCollisionGetsSuffix(t *testing.T) {
	service := newTestService(t)
	authorID := uuid.New()

	first, err := service.CreateNewsPost(context.Background(), authorID, CreateNewsPostRequest{
		TitleFR: "Rentrée scolaire 2026",
		TitleAR: "العودة المدرسية 2026",
		BodyFR:  "Les cours reprennent le 7 septembre.",
		BodyAR:  "تستأنف الدروس يوم 7 سبتمبر.",
	})
	require.NoError(t, err)
	assert.Equal(t, "rentree-scolaire-2026", first.Slug)

	second, err := service.CreateNewsPost(context.Background(), authorID, CreateNewsPostRequest{
		TitleFR: "Rentrée scolaire 2026",
		TitleAR: "العودة المدرسية 2026",
		BodyFR:  "Informations complémentaires.",
		BodyAR:  "معلومات إضافية.",
	})
	require.NoError(t, err)
	assert.Equal(t, "rentree-scolaire-2026-2", second.Slug)
}

// slugLookupFailingRepo fails every slug lookup with a non-API error, as a
// broken database connection would.
type slugLookupFailingRepo struct {
	Repository
	created bool
}

func (r *slugLookupFailingRepo) FindNewsPostBySlug(_ context.Context, _ string) (*NewsPost, error) {
	return nil, assert.AnError
}

func (r *slugLookupFailingRepo) CreateNewsPost(_ context.Context, _ *NewsPost) error {
	r.created = true
	return nil
}

func TestCreateNewsPost_SlugLookupErrorAborts(t *testing.T) {
	repo := &slugLookupFailingRepo{}
	service := NewService(repo, nil, zap.NewNop())

	_, err := service.CreateNewsPost(context.Background(), uuid.New(), CreateNewsPostRequest{
		TitleFR: "Rentrée scolaire 2026",
		TitleAR: "العودة المدرسية 2026",
		BodyFR:  "corps",
		BodyAR:  "نص",
	})

	require.Error(t, err)
	assert.False(t, repo.created, "no post should be created when the slug lookup fails")
}

func TestNewsPostSearchDocument_ContainsBilingualFields(t *testing.T) {
	now := time.Now()
	post := &NewsPost{
		Slug:        "rentree-scolaire-2026",
		TitleFR:     "Rentrée scolaire 2026",
		TitleAR:     "العودة المدرسية 2026",
		BodyFR:      "Les cours reprennent.",
		BodyAR:      "تستأنف الدروس.",
		IsPublished: true,
		PublishedAt: &now,
		AuthorID:    uuid.New(),
	}

	docJSON, err := NewsPostSearchDocument(post)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(docJSON), &doc))
	assert.Equal(t, "rentree-scolaire-2026", doc["slug"])
	assert.Equal(t, "Rentrée scolaire 2026", doc["title_fr"])
	assert.Equal(t, "العودة المدرسية 2026", doc["title_ar"])
	assert.Equal(t, true, doc["is_published"])
	assert.NotNil(t, doc["published_at"])

	_, err = NewsPostSearchDocument(nil)
	assert.Error(t, err)
}

func TestGetNewsPostBySlug_UnpublishedHidden(t *testing.T) {
	service := newTestService(t)

	post, err := service.CreateNewsPost(context.Background(), uuid.New(), CreateNewsPostRequest{
		TitleFR: "Brouillon",
		TitleAR: "مسودة",
		BodyFR:  "corps",
		BodyAR:  "نص",
	})
	require.NoError(t, err)

	_, err = service.GetNewsPostBySlug(context.Background(), post.Slug)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)

	_, err = service.PublishNewsPost(context.Background(), post.ID)
	require.NoError(t, err)

	found, err := service.GetNewsPostBySlug(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.True(t, found.IsPublished)
	assert.NotNil(t, found.PublishedAt)
}

func TestPublishNewsPost_IsIdempotent(t *testing.T) {
	service := newTestService(t)

	post, err := service.CreateNewsPost(context.Background(), uuid.New(), CreateNewsPostRequest{
		TitleFR: "Annonce",
		TitleAR: "إعلان",
		BodyFR:  "corps",
		BodyAR:  "نص",
	})
	require.NoError(t, err)

	published, err := service.PublishNewsPost(context.Background(), post.ID)
	require.NoError(t, err)
	firstStamp := *published.PublishedAt

	again, err := service.PublishNewsPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, firstStamp, *again.PublishedAt, time.Second)
}

func TestActiveAnnouncements_FiltersExpiredAndInactive(t *testing.T) {
	service := newTestService(t)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired, err := service.CreateAnnouncement(context.Background(), CreateAnnouncementRequest{
		TitleFR: "Expirée", TitleAR: "منتهية", BodyFR: "x", BodyAR: "y", ExpiresAt: &past,
	})
	require.NoError(t, err)

	current, err := service.CreateAnnouncement(context.Background(), CreateAnnouncementRequest{
		TitleFR: "En cours", TitleAR: "جارية", BodyFR: "x", BodyAR: "y", ExpiresAt: &future,
	})
	require.NoError(t, err)

	deactivated, err := service.CreateAnnouncement(context.Background(), CreateAnnouncementRequest{
		TitleFR: "Retirée", TitleAR: "مسحوبة", BodyFR: "x", BodyAR: "y",
	})
	require.NoError(t, err)
	require.NoError(t, service.DeactivateAnnouncement(context.Background(), deactivated.ID))

	active, err := service.ActiveAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)
	assert.NotEqual(t, expired.ID, active[0].ID)
}

func TestTestimonials_OnlyApprovedAreListed(t *testing.T) {
	service := newTestService(t)

	pending, err := service.SubmitTestimonial(context.Background(), SubmitTestimonialRequest{
		AuthorName: "Parent d'élève",
		QuoteFR:    "Une excellente école.",
		QuoteAR:    "مدرسة ممتازة.",
	})
	require.NoError(t, err)

	listed, err := service.ApprovedTestimonials(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = service.ApproveTestimonial(context.Background(), pending.ID)
	require.NoError(t, err)

	listed, err = service.ApprovedTestimonials(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, pending.ID, listed[0].ID)
}
