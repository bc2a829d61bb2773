package httpapi

import (
	"context"
	"net/http"
	"time"

	"iyouconnect/internal/adapters/httpapi/middleware"
	"iyouconnect/internal/core/activity"
	postEntity "iyouconnect/internal/core/post"
	postPort "iyouconnect/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type PostUseCase interface {
	CreatePost(ctx context.Context, in postPort.CreateInput) (*postEntity.Post, error)
	GetPost(ctx context.Context, id string) (*postEntity.Post, error)
	UpdatePost(ctx context.Context, id, content string) (*postEntity.Post, error)
	DeletePost(ctx context.Context, id string) error
	Feed(ctx context.Context, page, pageSize int) (*postPort.FeedPage, error)
	LikePost(ctx context.Context, id, clientID string) (*postEntity.Post, bool, error)
}

type LiveUseCase interface {
	Snapshot() activity.Snapshot
	TogglePresence() string
}

// MetricsExporter serves /metrics and observes requests.
type MetricsExporter interface {
	middleware.RequestObserver
	Handler() http.Handler
}

type Options struct {
	AppName  string
	PageSize int
	Logger   *zap.Logger
	Metrics  MetricsExporter
	Now      func() time.Time
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(postUC PostUseCase, liveUC LiveUseCase, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AppName == "" {
		opts.AppName = "iyouConnect"
	}

	r := gin.New()
	r.Use(middleware.Recovery(opts.Logger), middleware.ZapLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.Use(middleware.ClientID())

	pc := NewPostController(postUC, liveUC, opts)
	lc := NewLiveController(liveUC)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/posts") })

	posts := r.Group("/posts")
	posts.GET("", pc.Feed)
	posts.POST("", pc.CreatePost)
	posts.GET("/new", pc.NewPost)
	posts.GET("/:id", pc.ShowPost)
	posts.GET("/:id/edit", pc.EditPost)
	posts.PATCH("/:id", pc.UpdatePost)
	posts.PUT("/:id", pc.UpdatePost)
	posts.DELETE("/:id", pc.DeletePost)
	posts.POST("/:id/like", pc.LikePost)

	r.GET("/live", lc.Snapshot)
	r.POST("/live/presence", lc.TogglePresence)

	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })

	return middleware.MethodOverride(r)
}
