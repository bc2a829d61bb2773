package postapp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	postEntity "iyouconnect/internal/core/post"
	"iyouconnect/internal/core/simulation"
	likePort "iyouconnect/internal/ports/like"
	postPort "iyouconnect/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 12

	AutoLikeTargetMin = 12
	AutoLikeTargetMax = 48
)

// Metrics receives post lifecycle events. The zero PostService uses a no-op.
type Metrics interface {
	PostCreated()
	PostDeleted()
	LikesAdded(source string, n int)
}

type noopMetrics struct{}

func (noopMetrics) PostCreated()           {}
func (noopMetrics) PostDeleted()           {}
func (noopMetrics) LikesAdded(string, int) {}

// Admin describes the protected post seeded at construction.
type Admin struct {
	Handle         string
	DisplayName    string
	Content        string
	Response       string
	ResponseAuthor string
	Likes          int
	Comments       int
	Tags           []string
}

// DefaultAdmin is the seed used when no admin is configured.
func DefaultAdmin() Admin {
	return Admin{
		Handle:         "ayush rai",
		DisplayName:    "Ayush Rai",
		Content:        "1st rule of programming: if it works don't touch it.",
		Response:       "Dev infra verified. Monitoring queue depth hourly; ping ops if latency exceeds 220ms.",
		ResponseAuthor: "@ops.admin",
		Likes:          152,
		Comments:       312,
		Tags:           []string{"product", "roadmap", "ops"},
	}
}

type Option func(*PostService)

func WithLogger(l *zap.Logger) Option         { return func(s *PostService) { s.logger = l } }
func WithMetrics(m Metrics) Option            { return func(s *PostService) { s.metrics = m } }
func WithRandom(src simulation.Source) Option { return func(s *PostService) { s.rng = src } }
func WithAdmin(a Admin) Option                { return func(s *PostService) { s.admin = a } }

// WithNow replaces the wall clock used for CreatedAt.
func WithNow(now func() time.Time) Option { return func(s *PostService) { s.now = now } }

// PostService is the authoritative feed store: user posts in the repository plus
// the protected developer post held here. One mutex serializes every
// read-modify-write and every feed rebuild.
type PostService struct {
	PostRepository postPort.PostRepository
	LikeLedger     likePort.LikeLedger

	mu        sync.Mutex
	protected *postEntity.Post
	admin     Admin
	rng       simulation.Source
	now       func() time.Time
	logger    *zap.Logger
	metrics   Metrics
}

func NewPostService(postRepo postPort.PostRepository, ledger likePort.LikeLedger, opts ...Option) *PostService {
	s := &PostService{
		PostRepository: postRepo,
		LikeLedger:     ledger,
		admin:          DefaultAdmin(),
		now:            time.Now,
		logger:         zap.NewNop(),
		metrics:        noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = simulation.NewSource(time.Now().UnixNano())
	}
	s.admin.Handle = postEntity.NormalizeHandle(s.admin.Handle)
	s.protected = s.newProtectedPost()
	return s
}

func (s *PostService) newProtectedPost() *postEntity.Post {
	a := s.admin
	return &postEntity.Post{
		ID:             uuid.Must(uuid.NewV4()).String(),
		Username:       a.Handle,
		DisplayName:    a.DisplayName,
		Content:        a.Content,
		CreatedAt:      s.now(),
		IsDeveloper:    true,
		Response:       a.Response,
		ResponseAuthor: a.ResponseAuthor,
		Likes:          a.Likes,
		Comments:       a.Comments,
		Tags:           append([]string(nil), a.Tags...),
	}
}

// ProtectedPost returns a copy of the developer post.
func (s *PostService) ProtectedPost() *postEntity.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.protected.Clone()
}

// CreatePost validates, normalizes and stores a user submission.
func (s *PostService) CreatePost(ctx context.Context, in postPort.CreateInput) (*postEntity.Post, error) {
	username := strings.TrimSpace(in.Username)
	content := strings.TrimSpace(in.Content)
	handle := postEntity.NormalizeHandle(username)
	if handle == "" || content == "" {
		return nil, postEntity.ErrInvalidPost
	}

	p := &postEntity.Post{
		ID:          uuid.Must(uuid.NewV4()).String(),
		Username:    handle,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Content:     postEntity.Truncate(content, postEntity.MaxContentLength),
		IsDeveloper: handle == s.admin.Handle,
		Tags:        normalizeTags(in.Tags),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.CreatedAt = s.now()
	if !p.IsDeveloper {
		target := simulation.IntBetween(s.rng, AutoLikeTargetMin, AutoLikeTargetMax)
		profile := simulation.NewLikePersona(s.rng)
		p.AutoLikeTarget = &target
		p.AutoLikeProfile = &profile
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		s.logger.Error("❌ Failed to create post", zap.String("username", handle), zap.Error(err))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.metrics.PostCreated()
	s.logger.Info("✅ Created post", zap.String("postID", created.ID), zap.String("username", handle))
	return created.Clone(), nil
}

// GetPost looks a post up by id, the protected post included.
func (s *PostService) GetPost(ctx context.Context, id string) (*postEntity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.findLocked(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// UpdatePost replaces the content of an unlocked post. Timestamp and likes are kept.
func (s *PostService) UpdatePost(ctx context.Context, id, content string) (*postEntity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findLocked(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeveloper {
		return nil, postEntity.ErrPostLocked
	}
	p.Content = content
	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.logger.Info("✏️ Updated post", zap.String("postID", id))
	return p.Clone(), nil
}

// DeletePost removes an unlocked post from the user collection.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findLocked(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDeveloper {
		return postEntity.ErrPostLocked
	}
	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if s.LikeLedger != nil {
		if err := s.LikeLedger.Forget(ctx, id); err != nil {
			s.logger.Warn("⚠️ Could not clear likes of deleted post", zap.String("postID", id), zap.Error(err))
		}
	}
	s.metrics.PostDeleted()
	s.logger.Info("🗑️ Deleted post", zap.String("postID", id))
	return nil
}

// Feed rebuilds the sorted projection and returns the requested page, clamped
// into [1, TotalPages].
func (s *PostService) Feed(ctx context.Context, page, pageSize int) (*postPort.FeedPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.sortedLocked(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (len(all) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	items := make([]*postEntity.Post, 0, end-start)
	for _, p := range all[start:end] {
		items = append(items, p.Clone())
	}
	return &postPort.FeedPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  len(all),
	}, nil
}

// LikePost adds one like per client. Manual likes are not clamped to the auto-like target.
func (s *PostService) LikePost(ctx context.Context, id, clientID string) (*postEntity.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findLocked(ctx, id)
	if err != nil {
		return nil, false, err
	}

	first := true
	if s.LikeLedger != nil && clientID != "" {
		first, err = s.LikeLedger.MarkLiked(ctx, id, clientID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to record like: %w", err)
		}
	}
	if !first {
		return p.Clone(), false, nil
	}

	p.Likes++
	if err := s.saveLocked(ctx, p); err != nil {
		if s.LikeLedger != nil && clientID != "" {
			if uerr := s.LikeLedger.Unmark(ctx, id, clientID); uerr != nil {
				s.logger.Warn("⚠️ Could not roll back like", zap.String("postID", id), zap.Error(uerr))
			}
		}
		return nil, false, err
	}
	s.metrics.LikesAdded("manual", 1)
	return p.Clone(), true, nil
}

// AddAutoLikes applies a simulated like delta, capped at the post's target when
// it has one. It returns the resulting like count.
func (s *PostService) AddAutoLikes(ctx context.Context, id string, delta int) (int, error) {
	if delta <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findLocked(ctx, id)
	if err != nil {
		return 0, err
	}
	if p.AutoLikeTarget != nil {
		remaining := *p.AutoLikeTarget - p.Likes
		if remaining <= 0 {
			return p.Likes, nil
		}
		if delta > remaining {
			delta = remaining
		}
	}
	p.Likes += delta
	if err := s.saveLocked(ctx, p); err != nil {
		return 0, err
	}
	s.metrics.LikesAdded("auto", delta)
	return p.Likes, nil
}

// PendingAutoLikes lists posts whose simulated likes have not reached their target yet.
func (s *PostService) PendingAutoLikes(ctx context.Context) ([]*postEntity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	var pending []*postEntity.Post
	for _, p := range stored {
		if p.AutoLikeTarget != nil && p.Likes < *p.AutoLikeTarget {
			pending = append(pending, p.Clone())
		}
	}
	return pending, nil
}

// Count returns the number of posts in the feed, the protected post included.
func (s *PostService) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.PostRepository.Count(ctx)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

func (s *PostService) findLocked(ctx context.Context, id string) (*postEntity.Post, error) {
	if id == s.protected.ID {
		return s.protected.Clone(), nil
	}
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postEntity.ErrPostNotFound) {
			return nil, postEntity.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return p, nil
}

func (s *PostService) saveLocked(ctx context.Context, p *postEntity.Post) error {
	if p.ID == s.protected.ID {
		s.protected = p.Clone()
		return nil
	}
	if err := s.PostRepository.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// sortedLocked merges the protected post ahead of the user posts and sorts by
// CreatedAt descending; the stable sort keeps that base order for equal timestamps.
func (s *PostService) sortedLocked(ctx context.Context) ([]*postEntity.Post, error) {
	stored, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	all := make([]*postEntity.Post, 0, len(stored)+1)
	all = append(all, s.protected)
	all = append(all, stored...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, raw := range tags {
		for _, part := range strings.Split(raw, ",") {
			tag := strings.ToLower(strings.TrimSpace(part))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
