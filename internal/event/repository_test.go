// File: internal/event/repository_test.go
package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Event{}))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, startsAt time.Time, endsAt *time.Time) *Event {
	t.Helper()
	evt := &Event{
		TitleFR:  "Journee portes ouvertes",
		TitleAR:  "يوم الأبواب المفتوحة",
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	require.NoError(t, db.Create(evt).Error)
	return evt
}

func TestGORMRepository_ArchivePast(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	now := time.Now().UTC()

	pastEnd := now.Add(-2 * time.Hour)
	past := seedEvent(t, db, now.Add(-4*time.Hour), &pastEnd)
	pastNoEnd := seedEvent(t, db, now.Add(-24*time.Hour), nil)
	future := seedEvent(t, db, now.Add(24*time.Hour), nil)

	archived, err := repo.ArchivePast(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), archived)

	reloaded, err := repo.FindByID(context.Background(), past.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsArchived)

	reloaded, err = repo.FindByID(context.Background(), pastNoEnd.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsArchived)

	reloaded, err = repo.FindByID(context.Background(), future.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsArchived)
}

func TestGORMRepository_ListUpcomingExcludesArchivedAndPast(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	now := time.Now().UTC()

	seedEvent(t, db, now.Add(-48*time.Hour), nil)
	future := seedEvent(t, db, now.Add(48*time.Hour), nil)
	archivedFuture := seedEvent(t, db, now.Add(72*time.Hour), nil)
	require.NoError(t, db.Model(archivedFuture).Update("is_archived", true).Error)

	events, pagination, err := repo.ListUpcoming(context.Background(), now, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, future.ID, events[0].ID)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestGORMRepository_ArchivePastIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	now := time.Now().UTC()

	seedEvent(t, db, now.Add(-24*time.Hour), nil)

	first, err := repo.ArchivePast(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.ArchivePast(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second)
}
