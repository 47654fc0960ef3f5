package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type RouterDependencies struct {
	AuthHandler        *AuthHandler
	PlayerHandler      *PlayerHandler
	QuestHandler       *QuestHandler
	HabitHandler       *HabitHandler
	AchievementHandler *AchievementHandler
	TokenService       *services.TokenService
	DB                 *sqlx.DB
	Redis              *redis.Client
	Logger             *zap.Logger
	RateLimit          int
	RateWindow         time.Duration
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger.Named("http")), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "GET", "OPTIONS", "PUT", "DELETE"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "connected"
		if deps.DB == nil || deps.DB.PingContext(c.Request.Context()) != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	public := apiV1.Group("")
	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))

	if deps.Redis != nil {
		limiterLog := logger.Named("ratelimit")
		public.Use(middleware.RateLimiterMiddleware(deps.Redis, middleware.RateLimit{
			Scope: "public", Limit: deps.RateLimit, Window: deps.RateWindow,
		}, limiterLog))
		protected.Use(middleware.RateLimiterMiddleware(deps.Redis, middleware.RateLimit{
			Scope: "player", Limit: deps.RateLimit, Window: deps.RateWindow,
		}, limiterLog))
	}

	deps.AuthHandler.RegisterRoutes(public)
	{
		deps.PlayerHandler.RegisterRoutes(protected)
		deps.QuestHandler.RegisterRoutes(protected)
		deps.HabitHandler.RegisterRoutes(protected)
		deps.AchievementHandler.RegisterRoutes(protected)
	}

	return router
}
