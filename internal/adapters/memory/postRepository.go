package memory

import (
	"context"
	"sync"

	"iyouconnect/internal/core/post"
)

// PostRepositoryMemory نگهداری پست‌های کاربران در حافظه.
// Posts are kept most-recently-inserted first; values are cloned on the way in
// and out so callers never share state with the store.
type PostRepositoryMemory struct {
	mu    sync.RWMutex
	posts []*post.Post
	seq   uint64
}

// NewPostRepositoryMemory سازنده PostRepositoryMemory
func NewPostRepositoryMemory() *PostRepositoryMemory {
	return &PostRepositoryMemory{}
}

func (repo *PostRepositoryMemory) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.seq++
	stored := p.Clone()
	stored.Seq = repo.seq
	repo.posts = append([]*post.Post{stored}, repo.posts...)
	return stored.Clone(), nil
}

func (repo *PostRepositoryMemory) FindByID(ctx context.Context, id string) (*post.Post, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	i := repo.indexOf(id)
	if i < 0 {
		return nil, post.ErrPostNotFound
	}
	return repo.posts[i].Clone(), nil
}

func (repo *PostRepositoryMemory) Update(ctx context.Context, p *post.Post) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	i := repo.indexOf(p.ID)
	if i < 0 {
		return post.ErrPostNotFound
	}
	updated := p.Clone()
	updated.Seq = repo.posts[i].Seq
	updated.CreatedAt = repo.posts[i].CreatedAt
	repo.posts[i] = updated
	return nil
}

func (repo *PostRepositoryMemory) Delete(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return post.ErrPostNotFound
	}
	repo.posts = append(repo.posts[:i], repo.posts[i+1:]...)
	return nil
}

func (repo *PostRepositoryMemory) List(ctx context.Context) ([]*post.Post, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]*post.Post, 0, len(repo.posts))
	for _, p := range repo.posts {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (repo *PostRepositoryMemory) Count(ctx context.Context) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.posts), nil
}

func (repo *PostRepositoryMemory) indexOf(id string) int {
	for i, p := range repo.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
