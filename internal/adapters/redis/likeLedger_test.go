package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*LikeLedgerRedis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewLikeLedgerRedis(rdb, nil), mr
}

func TestLikeLedgerRedis_OncePerClient(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	first, err := ledger.MarkLiked(ctx, "post-1", "client-a")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := ledger.MarkLiked(ctx, "post-1", "client-a")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := ledger.MarkLiked(ctx, "post-1", "client-b")
	require.NoError(t, err)
	assert.True(t, other)

	members, err := mr.Members("likes:post-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"client-a", "client-b"}, members)

	liked, err := ledger.HasLiked(ctx, "post-1", "client-b")
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeLedgerRedis_Forget(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.MarkLiked(ctx, "post-2", "client-a")
	require.NoError(t, err)
	require.NoError(t, ledger.Forget(ctx, "post-2"))

	assert.False(t, mr.Exists("likes:post-2"))
	liked, err := ledger.HasLiked(ctx, "post-2", "client-a")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeLedgerRedis_ServerDown(t *testing.T) {
	ledger, mr := newTestLedger(t)
	mr.Close()

	_, err := ledger.MarkLiked(context.Background(), "post-3", "client-a")
	assert.Error(t, err)
}

func TestLikeLedgerRedis_Unmark(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.MarkLiked(ctx, "post-4", "client-a")
	require.NoError(t, err)
	_, err = ledger.MarkLiked(ctx, "post-4", "client-b")
	require.NoError(t, err)
	require.NoError(t, ledger.Unmark(ctx, "post-4", "client-a"))

	members, err := mr.Members("likes:post-4")
	require.NoError(t, err)
	assert.Equal(t, []string{"client-b"}, members)

	first, err := ledger.MarkLiked(ctx, "post-4", "client-a")
	require.NoError(t, err)
	assert.True(t, first, "an unmarked client can like again")
}
