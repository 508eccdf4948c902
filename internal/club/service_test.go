// File: internal/club/service_test.go
package club

import (
	"context"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Club{}))
	return NewService(NewGORMRepository(db), zap.NewNop())
}

func TestSeedDefaultClubs_OnEmptyTable(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.SeedDefaultClubs(context.Background()))

	clubs, err := service.ActiveClubs(context.Background())
	require.NoError(t, err)
	assert.Len(t, clubs, len(defaultClubs))
}

func TestSeedDefaultClubs_SkipsWhenClubsExist(t *testing.T) {
	service := newTestService(t)

	_, err := service.CreateClub(context.Background(), CreateClubRequest{
		NameFR: "Club Échecs",
		NameAR: "نادي الشطرنج",
	})
	require.NoError(t, err)

	require.NoError(t, service.SeedDefaultClubs(context.Background()))

	clubs, err := service.AllClubs(context.Background())
	require.NoError(t, err)
	assert.Len(t, clubs, 1)
}

func TestCreateClub_GeneratesSlug(t *testing.T) {
	service := newTestService(t)

	club, err := service.CreateClub(context.Background(), CreateClubRequest{
		NameFR: "Club Échecs",
		NameAR: "نادي الشطرنج",
	})

	require.NoError(t, err)
	assert.Equal(t, "club-echecs", club.Slug)

	found, err := service.GetClubBySlug(context.Background(), "club-echecs")
	require.NoError(t, err)
	assert.Equal(t, club.ID, found.ID)
}

func TestUpdateClub_Deactivate(t *testing.T) {
	service := newTestService(t)

	club, err := service.CreateClub(context.Background(), CreateClubRequest{
		NameFR: "Club Musique",
		NameAR: "نادي الموسيقى",
	})
	require.NoError(t, err)

	inactive := false
	_, err = service.UpdateClub(context.Background(), club.ID, UpdateClubRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := service.ActiveClubs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}
