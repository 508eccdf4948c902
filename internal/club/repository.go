// File: internal/club/repository.go
package club

import (
	"context"
	"errors"
	"strings"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for club data operations.
type Repository interface {
	Create(ctx context.Context, club *Club) error
	FindByID(ctx context.Context, id uuid.UUID) (*Club, error)
	FindBySlug(ctx context.Context, slug string) (*Club, error)
	Update(ctx context.Context, club *Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]Club, error)
	ListAll(ctx context.Context) ([]Club, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM club repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, club *Club) error {
	err := r.db.WithContext(ctx).Create(club).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrConflict.WithDetails("A club with this name already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Club, error) {
	var club Club
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Club not found.")
		}
		return nil, err
	}
	return &club, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Club, error) {
	var club Club
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&club).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Club not found.")
		}
		return nil, err
	}
	return &club, nil
}

func (r *gormRepository) Update(ctx context.Context, club *Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Club{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Club not found.")
	}
	return nil
}

func (r *gormRepository) ListActive(ctx context.Context) ([]Club, error) {
	var clubs []Club
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name_fr ASC").
		Find(&clubs).Error
	return clubs, err
}

func (r *gormRepository) ListAll(ctx context.Context) ([]Club, error) {
	var clubs []Club
	err := r.db.WithContext(ctx).Order("name_fr ASC").Find(&clubs).Error
	return clubs, err
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Club{}).Count(&count).Error
	return count, err
}
