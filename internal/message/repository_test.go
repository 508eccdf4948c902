// File: internal/message/repository_test.go
package message

import (
	"context"
	"fmt"
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
	require.NoError(t, db.AutoMigrate(&ContactMessage{}))
	return db
}

func seedMessage(t *testing.T, db *gorm.DB, status string, createdAt time.Time, n int) *ContactMessage {
	t.Helper()
	msg := &ContactMessage{
		ReferenceCode: fmt.Sprintf("MSG-%05d", n),
		SenderName:    "Sender",
		SenderEmail:   "sender@example.com",
		Subject:       fmt.Sprintf("Subject %d", n),
		Body:          "Body",
		Locale:        "fr",
		Status:        status,
	}
	require.NoError(t, db.Create(msg).Error)
	// CreatedAt is set by GORM on insert; force the value we need for ordering.
	require.NoError(t, db.Model(msg).UpdateColumn("created_at", createdAt).Error)
	msg.CreatedAt = createdAt
	return msg
}

func TestGORMRepository_FindPending_OrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	base := time.Now().UTC().Truncate(time.Second)

	oldest := seedMessage(t, db, StatusPending, base.Add(-3*time.Hour), 1)
	seedMessage(t, db, StatusRead, base.Add(-2*time.Hour), 2)
	newest := seedMessage(t, db, StatusPending, base.Add(-1*time.Hour), 3)

	msgs, err := repo.FindPending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, newest.ID, msgs[0].ID)
	assert.Equal(t, oldest.ID, msgs[1].ID)

	limited, err := repo.FindPending(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestGORMRepository_List_FiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	base := time.Now().UTC().Truncate(time.Second)

	seedMessage(t, db, StatusPending, base.Add(-2*time.Hour), 1)
	read := seedMessage(t, db, StatusRead, base.Add(-1*time.Hour), 2)

	msgs, pagination, err := repo.List(context.Background(), StatusRead, 1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, read.ID, msgs[0].ID)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestGORMRepository_UpdatePersistsReadStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRepository(db)

	msg := seedMessage(t, db, StatusPending, time.Now().UTC(), 1)

	now := time.Now().UTC()
	msg.Status = StatusRead
	msg.ReadAt = &now
	require.NoError(t, repo.Update(context.Background(), msg))

	reloaded, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRead, reloaded.Status)
	assert.NotNil(t, reloaded.ReadAt)
}
