package like

import "context"

// LikeLedger remembers which client liked which post.
type LikeLedger interface {
	// MarkLiked records the like and reports whether it is the client's first one for the post.
	MarkLiked(ctx context.Context, postID, clientID string) (bool, error)
	HasLiked(ctx context.Context, postID, clientID string) (bool, error)
	// Unmark removes a single client's like, undoing MarkLiked.
	Unmark(ctx context.Context, postID, clientID string) error
	// Forget drops every like recorded for a deleted post.
	Forget(ctx context.Context, postID string) error
}
