// File: internal/message/repository.go
package message

import (
	"context"
	"errors"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for contact message data operations.
type Repository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	Update(ctx context.Context, msg *ContactMessage) error
	// FindPending returns up to limit pending messages, newest first. This backs
	// the admin notification feed's message stream.
	FindPending(ctx context.Context, limit int) ([]ContactMessage, error)
	List(ctx context.Context, status string, page, pageSize int) ([]ContactMessage, *common.Pagination, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM contact message repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, msg *ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error) {
	var msg ContactMessage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Message not found with this ID.")
		}
		return nil, err
	}
	return &msg, nil
}

func (r *gormRepository) Update(ctx context.Context, msg *ContactMessage) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *gormRepository) FindPending(ctx context.Context, limit int) ([]ContactMessage, error) {
	var msgs []ContactMessage
	query := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *gormRepository) List(ctx context.Context, status string, page, pageSize int) ([]ContactMessage, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&ContactMessage{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	offset := (page - 1) * pageSize
	if page <= 0 {
		offset = 0
	}

	var msgs []ContactMessage
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, nil, err
	}
	return msgs, pagination, nil
}
