package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	postEntity "iyouconnect/internal/core/post"
	"iyouconnect/internal/core/simulation"

	"go.uber.org/zap"
)

const DefaultPollInterval = 5 * time.Second

// PostSource بخشی از سرویس پست که worker به آن نیاز دارد
type PostSource interface {
	PendingAutoLikes(ctx context.Context) ([]*postEntity.Post, error)
	AddAutoLikes(ctx context.Context, id string, delta int) (int, error)
	ProtectedPost() *postEntity.Post
}

// CounterGauge receives the number of running auto-like counters.
type CounterGauge interface {
	SetAutoLikeCounters(n int)
}

// AutoLikeWorker runs one convergent like counter per pending post, plus an
// open-ended ticker on the protected post.
type AutoLikeWorker struct {
	Posts        PostSource
	Clock        simulation.Clock
	Source       simulation.Source
	PollInterval time.Duration
	AdminTicker  bool
	Gauge        CounterGauge
	Logger       *zap.Logger

	mu       sync.Mutex
	counters map[string]*simulation.Counter
	admin    *simulation.Counter
}

func NewAutoLikeWorker(
	posts PostSource,
	clock simulation.Clock,
	src simulation.Source,
	pollInterval time.Duration,
	adminTicker bool,
	logger *zap.Logger,
) *AutoLikeWorker {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoLikeWorker{
		Posts:        posts,
		Clock:        clock,
		Source:       src,
		PollInterval: pollInterval,
		AdminTicker:  adminTicker,
		Logger:       logger,
		counters:     make(map[string]*simulation.Counter),
	}
}

// Run هر PollInterval پست‌های در انتظار لایک را بررسی می‌کند
func (w *AutoLikeWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 AutoLikeWorker started", zap.Duration("poll", w.PollInterval))
	if w.AdminTicker {
		w.StartAdminTicker()
	}
	for {
		if err := w.Sync(ctx); err != nil {
			w.Logger.Error("❌ Error fetching pending posts", zap.Error(err))
		}
		if !w.wait(ctx, w.PollInterval) {
			w.StopAll()
			w.Logger.Info("🛑 AutoLike worker stopped")
			return
		}
	}
}

// wait blocks for d on the worker clock; it reports false once ctx is done.
func (w *AutoLikeWorker) wait(ctx context.Context, d time.Duration) bool {
	fired := make(chan struct{})
	timer := w.Clock.AfterFunc(d, func() { close(fired) })
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-fired:
		return true
	}
}

// Sync starts a counter for every pending post that has none and drops finished ones.
func (w *AutoLikeWorker) Sync(ctx context.Context) error {
	pending, err := w.Posts.PendingAutoLikes(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for id, c := range w.counters {
		if !c.Running() {
			delete(w.counters, id)
		}
	}

	started := 0
	for _, p := range pending {
		if _, ok := w.counters[p.ID]; ok || p.AutoLikeTarget == nil {
			continue
		}
		persona := simulation.Persona{}
		if p.AutoLikeProfile != nil {
			persona = *p.AutoLikeProfile
		}
		target := *p.AutoLikeTarget
		c := simulation.NewCounter(w.Clock, w.Source, persona.Normalize(), simulation.Ceiling(target), p.Likes,
			w.applyLikes(p.ID, target))
		w.counters[p.ID] = c
		c.Start()
		started++
	}
	if started > 0 {
		w.Logger.Info("➡ Started auto-like counters", zap.Int("count", started), zap.Int("running", len(w.counters)))
	}
	w.publishLocked()
	return nil
}

// applyLikes pushes each simulated delta into the store and retires the
// counter once the post is gone or has reached its target.
func (w *AutoLikeWorker) applyLikes(id string, target int) simulation.ChangeFunc {
	return func(_, delta int) {
		likes, err := w.Posts.AddAutoLikes(context.Background(), id, delta)
		switch {
		case errors.Is(err, postEntity.ErrPostNotFound):
			w.Logger.Info("🗑️ Post gone, stopping auto-likes", zap.String("postID", id))
			w.retire(id)
		case err != nil:
			w.Logger.Warn("⚠️ Could not add auto-likes", zap.String("postID", id), zap.Error(err))
		case likes >= target:
			w.Logger.Info("✅ Post reached its like target", zap.String("postID", id), zap.Int("likes", likes))
			w.retire(id)
		}
	}
}

func (w *AutoLikeWorker) retire(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.counters[id]; ok {
		c.Stop()
		delete(w.counters, id)
	}
	w.publishLocked()
}

// StartAdminTicker keeps nudging the protected post's likes upward, without a ceiling.
func (w *AutoLikeWorker) StartAdminTicker() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.admin != nil {
		return
	}
	p := w.Posts.ProtectedPost()
	id := p.ID
	w.admin = simulation.NewCounter(w.Clock, w.Source, simulation.NewAdminPersona(w.Source), simulation.Unbounded(), p.Likes,
		func(_, delta int) {
			if _, err := w.Posts.AddAutoLikes(context.Background(), id, delta); err != nil {
				w.Logger.Warn("⚠️ Could not bump admin likes", zap.Error(err))
			}
		})
	w.admin.Start()
}

// StopAll cancels every counter.
func (w *AutoLikeWorker) StopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, c := range w.counters {
		c.Stop()
		delete(w.counters, id)
	}
	if w.admin != nil {
		w.admin.Stop()
		w.admin = nil
	}
	w.publishLocked()
}

// Active returns the number of tracked post counters.
func (w *AutoLikeWorker) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.counters)
}

func (w *AutoLikeWorker) publishLocked() {
	if w.Gauge != nil {
		w.Gauge.SetAutoLikeCounters(len(w.counters))
	}
}
