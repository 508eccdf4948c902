// File: internal/gallery/repository.go
package gallery

import (
	"context"
	"errors"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for gallery data operations.
type Repository interface {
	Create(ctx context.Context, img *GalleryImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*GalleryImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, pageSize int) ([]GalleryImage, *common.Pagination, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM gallery repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, img *GalleryImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*GalleryImage, error) {
	var img GalleryImage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Gallery image not found.")
		}
		return nil, err
	}
	return &img, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GalleryImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Gallery image not found.")
	}
	return nil
}

func (r *gormRepository) List(ctx context.Context, page, pageSize int) ([]GalleryImage, *common.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&GalleryImage{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	var images []GalleryImage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&images).Error
	if err != nil {
		return nil, nil, err
	}
	return images, pagination, nil
}
