// File: internal/event/repository.go
package event

import (
	"context"
	"errors"
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for event data operations.
type Repository interface {
	Create(ctx context.Context, evt *Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, evt *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListUpcoming(ctx context.Context, now time.Time, page, pageSize int) ([]Event, *common.Pagination, error)
	ListArchived(ctx context.Context, page, pageSize int) ([]Event, *common.Pagination, error)
	// ArchivePast flags every non-archived event that ended before the cutoff.
	// Returns the number of events archived.
	ArchivePast(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM event repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, evt *Event) error {
	return r.db.WithContext(ctx).Create(evt).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var evt Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&evt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Event not found.")
		}
		return nil, err
	}
	return &evt, nil
}

func (r *gormRepository) Update(ctx context.Context, evt *Event) error {
	return r.db.WithContext(ctx).Save(evt).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Event not found.")
	}
	return nil
}

func (r *gormRepository) ListUpcoming(ctx context.Context, now time.Time, page, pageSize int) ([]Event, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&Event{}).
		Where("is_archived = ?", false).
		Where("starts_at >= ? OR (ends_at IS NOT NULL AND ends_at >= ?)", now, now)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	var events []Event
	err := query.Order("starts_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&events).Error
	if err != nil {
		return nil, nil, err
	}
	return events, pagination, nil
}

func (r *gormRepository) ListArchived(ctx context.Context, page, pageSize int) ([]Event, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&Event{}).Where("is_archived = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, page, pageSize)

	var events []Event
	err := query.Order("starts_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&events).Error
	if err != nil {
		return nil, nil, err
	}
	return events, pagination, nil
}

func (r *gormRepository) ArchivePast(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Event{}).
		Where("is_archived = ?", false).
		Where("(ends_at IS NOT NULL AND ends_at < ?) OR (ends_at IS NULL AND starts_at < ?)", cutoff, cutoff).
		Update("is_archived", true)
	return result.RowsAffected, result.Error
}
