// Package presenter derives display fields for posts. It never mutates a post.
package presenter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	postEntity "iyouconnect/internal/core/post"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 42

// Sort modes accepted by SortViews.
const (
	SortTrending      = "trending"
	SortRecent        = "recent"
	SortChronological = "chronological"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// PostView is a post plus everything a feed card shows.
type PostView struct {
	*postEntity.Post
	Label          string `json:"label"`
	RelativeTime   string `json:"relativeTime"`
	ReadingTime    string `json:"readingTime"`
	LikesLabel     string `json:"likesLabel"`
	CommentsLabel  string `json:"commentsLabel"`
	Editable       bool   `json:"editable"`
	AutoLikeActive bool   `json:"autoLikeActive"`
}

// Present builds the view of p as seen at now.
func Present(p *postEntity.Post, now time.Time) PostView {
	active := p.AutoLikeTarget != nil && p.Likes < *p.AutoLikeTarget
	return PostView{
		Post:           p,
		Label:          DisplayLabel(p),
		RelativeTime:   RelativeTime(p.CreatedAt, now),
		ReadingTime:    ReadingTime(p.Content),
		LikesLabel:     FormatCount(p.Likes),
		CommentsLabel:  FormatCount(p.Comments),
		Editable:       !p.IsDeveloper,
		AutoLikeActive: active,
	}
}

// PresentAll maps Present over posts.
func PresentAll(posts []*postEntity.Post, now time.Time) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, Present(p, now))
	}
	return views
}

// RelativeTime renders the age of t at now. Future times count as "Just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 10*time.Second:
		return "Just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// FormatCount groups digits the en-US way: 3820 -> "3,820".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatOnline is the live indicator label.
func FormatOnline(n int) string {
	return FormatCount(n) + " online"
}

// FormatDuration renders seconds as "Ns" under a minute and "Nm SSs" otherwise.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	m, s := seconds/60, seconds%60
	if m <= 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

// ReadingTime estimates minutes to read content, never less than one.
func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// DisplayLabel prefers the display name and falls back to @username.
func DisplayLabel(p *postEntity.Post) string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return "@" + p.Username
}

// FilterByTag keeps views carrying tag. An empty tag or "all" keeps everything.
func FilterByTag(views []PostView, tag string) []PostView {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == "all" {
		return views
	}
	out := make([]PostView, 0, len(views))
	for _, v := range views {
		for _, t := range v.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// SortViews reorders views in place by mode. Unknown modes sort as trending.
func SortViews(views []PostView, mode string) {
	var less func(a, b PostView) bool
	switch mode {
	case SortRecent:
		less = func(a, b PostView) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortChronological:
		less = func(a, b PostView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		less = func(a, b PostView) bool { return a.Likes > b.Likes }
	}
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}
