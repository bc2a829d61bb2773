package presenter

import (
	"strings"
	"testing"
	"time"

	postEntity "iyouconnect/internal/core/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{-time.Minute, "Just now"},
		{9 * time.Second, "Just now"},
		{10 * time.Second, "10s ago"},
		{59 * time.Second, "59s ago"},
		{time.Minute, "1m ago"},
		{59*time.Minute + 59*time.Second, "59m ago"},
		{time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{10 * 24 * time.Hour, "10d ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now.Add(-c.ago), now), "ago=%s", c.ago)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "152", FormatCount(152))
	assert.Equal(t, "3,820", FormatCount(3820))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "125 online", FormatOnline(125))

	assert.Equal(t, "0s", FormatDuration(-4))
	assert.Equal(t, "45s", FormatDuration(45))
	assert.Equal(t, "1m 00s", FormatDuration(60))
	assert.Equal(t, "7m 05s", FormatDuration(425))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadingTime(""))
	assert.Equal(t, "1 min read", ReadingTime("short post"))
	assert.Equal(t, "1 min read", ReadingTime(strings.Repeat("word ", 42)))
	assert.Equal(t, "2 min read", ReadingTime(strings.Repeat("word ", 43)))
}

func TestPresent(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	target := 20
	p := &postEntity.Post{
		ID:             "p1",
		Username:       "alice",
		Content:        "hello",
		CreatedAt:      now.Add(-5 * time.Minute),
		Likes:          1500,
		AutoLikeTarget: &target,
	}
	before := *p

	v := Present(p, now)
	assert.Equal(t, "@alice", v.Label)
	assert.Equal(t, "5m ago", v.RelativeTime)
	assert.Equal(t, "1,500", v.LikesLabel)
	assert.True(t, v.Editable)
	assert.False(t, v.AutoLikeActive)
	assert.Equal(t, before, *p, "presenting must not mutate the post")

	p.DisplayName = "Alice"
	p.IsDeveloper = true
	v = Present(p, now)
	assert.Equal(t, "Alice", v.Label)
	assert.False(t, v.Editable)
}

func TestFilterAndSort(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []*postEntity.Post{
		{ID: "a", Username: "a", CreatedAt: now.Add(-3 * time.Hour), Likes: 5, Tags: []string{"ops"}},
		{ID: "b", Username: "b", CreatedAt: now.Add(-1 * time.Hour), Likes: 50, Tags: []string{"product"}},
		{ID: "c", Username: "c", CreatedAt: now.Add(-2 * time.Hour), Likes: 5, Tags: []string{"ops", "roadmap"}},
	}
	views := PresentAll(posts, now)

	assert.Len(t, FilterByTag(views, ""), 3)
	assert.Len(t, FilterByTag(views, "all"), 3)
	ops := FilterByTag(views, " OPS ")
	require.Len(t, ops, 2)
	assert.Equal(t, "a", ops[0].ID)
	assert.Empty(t, FilterByTag(views, "missing"))

	ids := func(vs []PostView) []string {
		var out []string
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}

	SortViews(views, SortTrending)
	assert.Equal(t, []string{"b", "a", "c"}, ids(views), "ties keep their order")
	SortViews(views, SortRecent)
	assert.Equal(t, []string{"b", "c", "a"}, ids(views))
	SortViews(views, SortChronological)
	assert.Equal(t, []string{"a", "c", "b"}, ids(views))
	SortViews(views, "bogus")
	assert.Equal(t, []string{"b", "a", "c"}, ids(views))
}
