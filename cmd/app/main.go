package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "iyouconnect/internal/adapters/database"
	"iyouconnect/internal/adapters/httpapi"
	"iyouconnect/internal/adapters/memory"
	redisadapter "iyouconnect/internal/adapters/redis"
	"iyouconnect/internal/config"
	activityapp "iyouconnect/internal/core/activity/service"
	postapp "iyouconnect/internal/core/post/service"
	"iyouconnect/internal/core/simulation"
	"iyouconnect/internal/metrics"
	likePort "iyouconnect/internal/ports/like"
	postPort "iyouconnect/internal/ports/post"
	"iyouconnect/internal/seed"
	"iyouconnect/internal/workers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	defer config.SyncLogger()
	settings := config.Load() // بارگذاری تنظیمات از .env

	if settings.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// بستن منابع بعد از اتمام کار سرور
	defer config.CloseResources()

	postRepo := newPostRepository(settings) // آداپتر خروجی
	ledger := newLikeLedger(settings)       // آداپتر خروجی

	seedValue := settings.SimSeed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	src := simulation.NewSource(seedValue)
	clock := simulation.RealClock{}
	m := metrics.New()

	admin := postapp.DefaultAdmin()
	admin.Handle = settings.AdminHandle
	admin.DisplayName = settings.AdminDisplayName

	postSvc := postapp.NewPostService(postRepo, ledger, // یوزکیس/سرویس
		postapp.WithLogger(config.Logger),
		postapp.WithMetrics(m),
		postapp.WithRandom(src),
		postapp.WithAdmin(admin),
	)
	liveSvc := activityapp.NewActivityService(clock, src, activityapp.Config{ // یوزکیس/سرویس
		OnlineBase:     settings.LiveOnlineBase,
		OnlineVariance: settings.LiveOnlineVar,
	}, config.Logger)
	m.WatchActivity(liveSvc.Snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if settings.SeedPosts > 0 {
		if _, err := seed.Posts(ctx, postSvc, seed.NewFactory(settings.SimSeed), settings.SeedPosts, config.Logger); err != nil {
			config.Logger.Error("❌ Error seeding demo posts", zap.Error(err))
		}
	}

	// تزریق یوزکیس به آداپتر ورودی
	handler := httpapi.SetupRoutes(postSvc, liveSvc, httpapi.Options{
		AppName:  settings.AppName,
		PageSize: settings.PageSize,
		Logger:   config.Logger,
		Metrics:  m,
	})

	autoLikeWorker := workers.NewAutoLikeWorker(postSvc, clock, src, settings.AutoLikePoll, settings.AdminLikeTicker, config.Logger)
	autoLikeWorker.Gauge = m

	// اجرای worker و شبیه‌سازی در پس‌زمینه
	liveSvc.Start()
	defer liveSvc.Stop()
	workerDone := make(chan struct{})
	go func() {
		autoLikeWorker.Run(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		config.Logger.Info("✅ Server running", zap.String("addr", srv.Addr), zap.String("app", settings.AppName))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Info("🛑 Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Error during server shutdown", zap.Error(err))
	}
	cancel()
	<-workerDone
}

func newPostRepository(s config.Settings) postPort.PostRepository {
	if s.Storage != config.StorageSQLite {
		return memory.NewPostRepositoryMemory()
	}
	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	config.InitDB(s.DBDSN)
	repo := dbadapter.NewPostRepositoryDatabase(config.DB)
	if err := repo.Migrate(); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")
	return repo
}

func newLikeLedger(s config.Settings) likePort.LikeLedger {
	if s.LikeLedger != config.LedgerRedis {
		return memory.NewLikeLedgerMemory()
	}
	// اتصال به Redis
	config.InitRedis(s)
	return redisadapter.NewLikeLedgerRedis(config.RedisClient, config.Logger)
}
