package seed

import (
	"context"
	"testing"

	"iyouconnect/internal/adapters/memory"
	postapp "iyouconnect/internal/core/post/service"
	"iyouconnect/internal/core/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryIsRepeatable(t *testing.T) {
	a, b := NewFactory(42), NewFactory(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Input(), b.Input())
	}
}

func TestFactoryInputIsValid(t *testing.T) {
	f := NewFactory(7)
	for i := 0; i < 20; i++ {
		in := f.Input()
		assert.NotEmpty(t, in.Username)
		assert.NotEmpty(t, in.Content)
		assert.NotEmpty(t, in.Tags)
		for _, tag := range in.Tags {
			assert.Contains(t, demoTags, tag)
		}
	}
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	svc := postapp.NewPostService(memory.NewPostRepositoryMemory(), memory.NewLikeLedgerMemory(),
		postapp.WithRandom(simulation.NewSource(1)))

	n, err := Posts(ctx, svc, NewFactory(9), 15, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, total)

	pending, err := svc.PendingAutoLikes(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 15)
}
