package seed

import (
	"context"
	"testing"

	"parlor/internal/database"
	"parlor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestRun(t *testing.T) {
	db := setupSeedDB(t)

	opts := Options{
		Users:           4,
		PostsPerProfile: 2,
		CommentsPerPost: 2,
		RepliesPerPost:  1,
		Password:        "password1",
		Seed:            11,
	}
	require.NoError(t, Run(context.Background(), db, opts))

	var users, profiles, posts, comments, likes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)

	assert.EqualValues(t, 4, users)
	assert.EqualValues(t, 4, profiles, "every user gets exactly one profile")
	assert.EqualValues(t, 8, posts)
	assert.EqualValues(t, 24, comments, "comments plus one reply per post")
	assert.Greater(t, likes, int64(0))

	// Every comment references exactly one parent kind.
	var mixed int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("post_id IS NOT NULL AND comment_id IS NOT NULL").
		Count(&mixed).Error)
	assert.Zero(t, mixed)
}

func TestRunIsRepeatable(t *testing.T) {
	db := setupSeedDB(t)

	opts := DefaultOptions()
	opts.Users = 2
	opts.PostsPerProfile = 1
	opts.CommentsPerPost = 1
	opts.RepliesPerPost = 0

	require.NoError(t, Run(context.Background(), db, opts))
	require.NoError(t, Run(context.Background(), db, opts), "random email suffixes avoid collisions across runs")

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 4, users)
}
