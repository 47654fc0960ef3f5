package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-quest/docs"
	"github.com/comitanigiacomo/kanso-quest/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-quest/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-quest/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-quest/internal/catalog"
	"github.com/comitanigiacomo/kanso-quest/internal/config"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/events"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
	"github.com/comitanigiacomo/kanso-quest/internal/core/workers"
)

// @title HealthQuest API
// @version 1.0
// @description Habit tracking with quests, streaks and achievements.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("connecting to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))

	db, err := sqlx.Connect(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = repository.EnsureSchema(schemaCtx, db)
	schemaCancel()
	if err != nil {
		logger.Fatal("failed to prepare schema", zap.Error(err))
	}
	logger.Info("database connected")

	var rdb *redis.Client
	var store domain.SnapshotStore = repository.NewPostgresSnapshotRepository(db)
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer rdb.Close()
			store = repository.NewCachedSnapshotRepository(store, rdb, logger)
			logger.Info("redis connected", zap.String("addr", cfg.Redis.Host+":"+cfg.Redis.Port))
		}
	}

	quests, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("failed to load quest catalog", zap.Error(err))
	}
	logger.Info("quest catalog loaded",
		zap.Int("templates", quests.Size()),
		zap.Bool("override", cfg.CatalogFile != ""),
	)

	bus := events.NewBus()
	bus.SubscribeAll(events.NewLogSubscriber(logger))

	autosave := workers.NewAutosaveWorker(cfg.Game.AutoSaveInterval, cfg.SessionIdle, logger)

	game := services.NewGameService(services.GameDependencies{
		Store:   store,
		Catalog: quests,
		Config:  cfg.Game,
		Events:  bus,
		Logger:  logger,
		Queue:   autosave,
	})

	workerCtx, stopWorker := context.WithCancel(context.Background())
	autosave.Start(workerCtx, game)

	accountRepo := repository.NewPostgresAccountRepository(db.DB)
	authService := services.NewAuthService(accountRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, accountRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		PlayerHandler:      adapterHTTP.NewPlayerHandler(game),
		QuestHandler:       adapterHTTP.NewQuestHandler(game),
		HabitHandler:       adapterHTTP.NewHabitHandler(game),
		AchievementHandler: adapterHTTP.NewAchievementHandler(game),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              rdb,
		Logger:             logger,
		RateLimit:          cfg.RateLimit,
		RateWindow:         cfg.RateWindow,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HealthQuest API listening", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	stopWorker()
	autosave.Wait()

	logger.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
