package post

import (
	"context"
	"iyouconnect/internal/core/post"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌های کاربران.
// The protected post never lives here; the service owns it.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id string) error
	// List returns every stored post, most recently inserted first.
	List(ctx context.Context) ([]*post.Post, error)
	Count(ctx context.Context) (int, error)
}

// CreateInput is the raw submission before normalization.
type CreateInput struct {
	Username    string
	Content     string
	DisplayName string
	Tags        []string
}

// FeedPage is one page of the sorted feed projection.
type FeedPage struct {
	Items       []*post.Post `json:"items"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalCount  int          `json:"totalCount"`
}
