package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/teachback-api/internal/models"
)

func TestBadgeRepositoryAwardIsIdempotent(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Badge{}, &models.UserBadge{})
	repo := NewBadgeRepository(db)

	user := createTestUser(t, db, "jane", 0)
	badge := models.Badge{Name: "First Steps", Description: "d", Icon: "i", Color: "pink", Criteria: datatypes.JSONMap{"explanationsCount": 1}}
	require.NoError(t, db.Create(&badge).Error)

	created, err := repo.Award(context.Background(), user.ID, badge.ID)
	require.NoError(t, err)
	require.True(t, created)

	again, err := repo.Award(context.Background(), user.ID, badge.ID)
	require.NoError(t, err)
	require.False(t, again, "second award of the same badge must be a no-op")

	count, err := repo.CountByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestBadgeRepositoryEarnedIDs(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Badge{}, &models.UserBadge{})
	repo := NewBadgeRepository(db)

	user := createTestUser(t, db, "jane", 0)
	first := models.Badge{Name: "First Steps", Description: "d", Icon: "i", Color: "pink", Criteria: datatypes.JSONMap{"explanationsCount": 1}}
	second := models.Badge{Name: "Week Warrior", Description: "d", Icon: "i", Color: "red", Criteria: datatypes.JSONMap{"streak": 7}}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	_, err := repo.Award(context.Background(), user.ID, first.ID)
	require.NoError(t, err)

	earned, err := repo.EarnedIDs(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, earned[first.ID])
	require.False(t, earned[second.ID])
}

func TestBadgeRepositoryUpsertCatalogByName(t *testing.T) {
	db := setupTestDB(t, &models.Badge{})
	repo := NewBadgeRepository(db)

	badges := []models.Badge{{Name: "Top Scorer", Description: "90+ average", Icon: "star", Color: "yellow", Criteria: datatypes.JSONMap{"averageScore": 90}}}
	_, err := repo.UpsertCatalog(context.Background(), badges)
	require.NoError(t, err)

	update := []models.Badge{{Name: "Top Scorer", Description: "Achieve a 90+ average score", Icon: "star", Color: "gold", Criteria: datatypes.JSONMap{"averageScore": 90}}}
	_, err = repo.UpsertCatalog(context.Background(), update)
	require.NoError(t, err)

	catalog, err := repo.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	require.Equal(t, "gold", catalog[0].Color)
}
