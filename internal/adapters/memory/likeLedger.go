package memory

import (
	"context"
	"sync"
)

// LikeLedgerMemory ثبت لایک‌ها در حافظه، هر کلاینت یک بار برای هر پست.
type LikeLedgerMemory struct {
	mu    sync.Mutex
	liked map[string]map[string]struct{}
}

func NewLikeLedgerMemory() *LikeLedgerMemory {
	return &LikeLedgerMemory{liked: make(map[string]map[string]struct{})}
}

func (l *LikeLedgerMemory) MarkLiked(ctx context.Context, postID, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	clients, ok := l.liked[postID]
	if !ok {
		clients = make(map[string]struct{})
		l.liked[postID] = clients
	}
	if _, seen := clients[clientID]; seen {
		return false, nil
	}
	clients[clientID] = struct{}{}
	return true, nil
}

func (l *LikeLedgerMemory) HasLiked(ctx context.Context, postID, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.liked[postID][clientID]
	return ok, nil
}

func (l *LikeLedgerMemory) Unmark(ctx context.Context, postID, clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.liked[postID], clientID)
	return nil
}

func (l *LikeLedgerMemory) Forget(ctx context.Context, postID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.liked, postID)
	return nil
}
