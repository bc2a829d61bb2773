package database

import (
	"context"
	"testing"
	"time"

	"iyouconnect/internal/core/post"
	"iyouconnect/internal/core/simulation"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *PostRepositoryDatabase {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := NewPostRepositoryDatabase(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func samplePost(username string, createdAt time.Time) *post.Post {
	target := 30
	profile := simulation.Persona{IntervalMin: time.Minute, IntervalMax: 2 * time.Minute, StepMin: 1, StepMax: 2, IdleChance: 20}
	return &post.Post{
		ID:              uuid.Must(uuid.NewV4()).String(),
		Username:        username,
		Content:         "posted by " + username,
		CreatedAt:       createdAt,
		Tags:            []string{"ops", "roadmap"},
		AutoLikeTarget:  &target,
		AutoLikeProfile: &profile,
	}
}

func TestPostRepositoryDatabase_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	p := samplePost("alice", time.Now().UTC())

	created, err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.Seq)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, []string{"ops", "roadmap"}, found.Tags)
	require.NotNil(t, found.AutoLikeTarget)
	assert.Equal(t, 30, *found.AutoLikeTarget)
	require.NotNil(t, found.AutoLikeProfile)
	assert.Equal(t, 20, found.AutoLikeProfile.IdleChance)
	assert.Equal(t, time.Minute, found.AutoLikeProfile.IntervalMin)
}

func TestPostRepositoryDatabase_NotFound(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, post.ErrPostNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), post.ErrPostNotFound)
	assert.ErrorIs(t, repo.Update(ctx, samplePost("ghost", time.Now())), post.ErrPostNotFound)
}

func TestPostRepositoryDatabase_ListOrderAndUpdate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first := samplePost("first", now)
	second := samplePost("second", now)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent insert comes first")
	assert.Equal(t, first.ID, list[1].ID)

	first.Content = "edited"
	first.Likes = 7
	require.NoError(t, repo.Update(ctx, first))
	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", found.Content)
	assert.Equal(t, 7, found.Likes)

	require.NoError(t, repo.Delete(ctx, second.ID))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
