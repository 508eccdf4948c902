// File: internal/content/repository.go
package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for content data operations.
type Repository interface {
	CreateNewsPost(ctx context.Context, post *NewsPost) error
	FindNewsPostByID(ctx context.Context, id uuid.UUID) (*NewsPost, error)
	FindNewsPostBySlug(ctx context.Context, slug string) (*NewsPost, error)
	UpdateNewsPost(ctx context.Context, post *NewsPost) error
	DeleteNewsPost(ctx context.Context, id uuid.UUID) error
	ListNewsPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]NewsPost, *common.Pagination, error)
	// SearchNewsPosts is the relational fallback used when Elasticsearch is
	// not configured.
	SearchNewsPosts(ctx context.Context, query NewsSearchQuery) ([]NewsPost, *common.Pagination, error)
	ListAllNewsPosts(ctx context.Context, offset, limit int) ([]NewsPost, error)

	CreateAnnouncement(ctx context.Context, ann *Announcement) error
	FindAnnouncementByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	UpdateAnnouncement(ctx context.Context, ann *Announcement) error
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	ListActiveAnnouncements(ctx context.Context, now time.Time) ([]Announcement, error)

	CreateTestimonial(ctx context.Context, tst *Testimonial) error
	FindTestimonialByID(ctx context.Context, id uuid.UUID) (*Testimonial, error)
	UpdateTestimonial(ctx context.Context, tst *Testimonial) error
	ListApprovedTestimonials(ctx context.Context) ([]Testimonial, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM content repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// --- News posts ---

func (r *gormRepository) CreateNewsPost(ctx context.Context, post *NewsPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrConflict.WithDetails("A news post with this slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindNewsPostByID(ctx context.Context, id uuid.UUID) (*NewsPost, error) {
	var post NewsPost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("News post not found.")
		}
		return nil, err
	}
	return &post, nil
}

func (r *gormRepository) FindNewsPostBySlug(ctx context.Context, slug string) (*NewsPost, error) {
	var post NewsPost
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("News post not found.")
		}
		return nil, err
	}
	return &post, nil
}

func (r *gormRepository) UpdateNewsPost(ctx context.Context, post *NewsPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *gormRepository) DeleteNewsPost(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&NewsPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("News post not found.")
	}
	return nil
}

func (r *gormRepository) ListNewsPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]NewsPost, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&NewsPost{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	var posts []NewsPost
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, nil, err
	}
	return posts, pagination, nil
}

func (r *gormRepository) SearchNewsPosts(ctx context.Context, q NewsSearchQuery) ([]NewsPost, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&NewsPost{}).Where("is_published = ?", true)
	if q.Term != "" {
		term := "%" + q.Term + "%"
		if q.Locale == common.LocaleArabic {
			query = query.Where("title_ar ILIKE ? OR body_ar ILIKE ?", term, term)
		} else {
			query = query.Where("title_fr ILIKE ? OR body_fr ILIKE ?", term, term)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, q.Page, q.PageSize)

	var posts []NewsPost
	err := query.Order("published_at DESC NULLS LAST").
		Limit(q.PageSize).
		Offset((q.Page - 1) * q.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, nil, err
	}
	return posts, pagination, nil
}

func (r *gormRepository) ListAllNewsPosts(ctx context.Context, offset, limit int) ([]NewsPost, error) {
	var posts []NewsPost
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// --- Announcements ---

func (r *gormRepository) CreateAnnouncement(ctx context.Context, ann *Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *gormRepository) FindAnnouncementByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	var ann Announcement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ann).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Announcement not found.")
		}
		return nil, err
	}
	return &ann, nil
}

func (r *gormRepository) UpdateAnnouncement(ctx context.Context, ann *Announcement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

func (r *gormRepository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Announcement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Announcement not found.")
	}
	return nil
}

func (r *gormRepository) ListActiveAnnouncements(ctx context.Context, now time.Time) ([]Announcement, error) {
	var anns []Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Find(&anns).Error
	if err != nil {
		return nil, err
	}
	return anns, nil
}

// --- Testimonials ---

func (r *gormRepository) CreateTestimonial(ctx context.Context, tst *Testimonial) error {
	return r.db.WithContext(ctx).Create(tst).Error
}

func (r *gormRepository) FindTestimonialByID(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	var tst Testimonial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Testimonial not found.")
		}
		return nil, err
	}
	return &tst, nil
}

func (r *gormRepository) UpdateTestimonial(ctx context.Context, tst *Testimonial) error {
	return r.db.WithContext(ctx).Save(tst).Error
}

func (r *gormRepository) ListApprovedTestimonials(ctx context.Context) ([]Testimonial, error) {
	var tsts []Testimonial
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Find(&tsts).Error
	if err != nil {
		return nil, err
	}
	return tsts, nil
}
