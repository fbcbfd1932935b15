package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/api/handlers"
	"github.com/jstittsworth/contrarian-dfs/internal/api/middleware"
	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/metrics"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/jstittsworth/contrarian-dfs/pkg/config"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the HTTP surface needs.
type Dependencies struct {
	Config     *config.Config
	DB         handlers.Pinger
	Cache      *services.CacheService
	Table      handlers.TableAdmin
	Classifier *classifier.Classifier
	Hub        *services.WebSocketHub
	Metrics    *metrics.Recorder
	Logger     *logrus.Logger
}

// NewRouter builds the engine with global middleware, probes, metrics, the
// websocket endpoint and the /api/v1 group.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	router.Use(middleware.CORS(deps.Config.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.Config.CorsOrigins)
	router.GET("/ws", middleware.OptionalAuth(deps.Config.JWTSecret), wsHandler.HandleWebSocket)

	SetupRoutes(router.Group("/api/v1"), deps)
	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	cfg := deps.Config

	playerHandler := handlers.NewPlayerHandler(deps.Table)
	classifyHandler := handlers.NewClassifyHandler(deps.Classifier, deps.Metrics)
	lineupHandler := handlers.NewLineupHandler(deps.Table, cfg.SalaryCap, deps.Metrics)
	assistantHandler := handlers.NewAssistantHandler(deps.Table)
	tournamentHandler := handlers.NewTournamentHandler(deps.Table)
	adminHandler := handlers.NewAdminHandler(deps.Table)

	group.GET("/players", playerHandler.GetPlayers)
	group.GET("/players/summary", playerHandler.GetSummary)
	group.GET("/players/freshness", playerHandler.GetFreshness)
	group.GET("/players/:name", playerHandler.GetPlayer)

	group.POST("/classify", classifyHandler.Classify)

	buildLimiter := middleware.NewIPRateLimiter(cfg.BuildRateLimit, cfg.BuildRateBurst)
	group.POST("/lineups/build", middleware.RateLimit(buildLimiter), lineupHandler.BuildLineup)

	group.POST("/assistant/ask", assistantHandler.Ask)
	group.GET("/tournament/recommendations", tournamentHandler.GetRecommendations)

	admin := group.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.AdminRequired())
	{
		admin.POST("/players/import", adminHandler.ImportPlayers)
		admin.POST("/players/reload", adminHandler.ReloadPlayers)
	}
}
