package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, totalXP int) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		TotalXP:      totalXP,
		Level:        totalXP/1000 + 1,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUserRepositoryAddXPDerivesLevelInSameUpdate(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "jane", 950)

	updated, err := repo.AddXP(context.Background(), user.ID, 80)
	require.NoError(t, err)
	require.Equal(t, 1030, updated.TotalXP)
	require.Equal(t, 2, updated.Level, "crossing 1000 XP must bump the level")
}

func TestUserRepositoryAddXPZeroEarnedKeepsState(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "jane", 500)

	updated, err := repo.AddXP(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 500, updated.TotalXP)
	require.Equal(t, 1, updated.Level)
}

func TestUserRepositoryAddXPSequentialIncrementsAccumulate(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "jane", 0)

	// Each call increments the stored value rather than writing back a
	// value read earlier, so no increment can be lost.
	for i := 0; i < 5; i++ {
		_, err := repo.AddXP(context.Background(), user.ID, 300)
		require.NoError(t, err)
	}

	updated, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 1500, updated.TotalXP)
	require.Equal(t, 2, updated.Level)
}

func TestUserRepositoryAddXPUnknownUser(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	_, err := repo.AddXP(context.Background(), 99, 10)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryUpdateActivity(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "jane", 0)
	now := time.Now().Truncate(time.Second)

	updated, err := repo.UpdateActivity(context.Background(), user.ID, 4, now)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Streak)
	require.NotNil(t, updated.LastActiveAt)
	require.WithinDuration(t, now, *updated.LastActiveAt, time.Second)
}

func TestUserRepositoryLeaderboardOrdersByXP(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	createTestUser(t, db, "low", 100)
	createTestUser(t, db, "high", 5000)
	createTestUser(t, db, "mid", 1200)

	top, err := repo.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "high", top[0].Username)
	require.Equal(t, "mid", top[1].Username)
}
