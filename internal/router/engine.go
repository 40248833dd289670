package router

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rhythm-registry/internal/config"
	"rhythm-registry/internal/handlers"
	"rhythm-registry/internal/middleware"
	"rhythm-registry/internal/monitoring"
)

// NewEngine assembles the gin engine: request id and access log, metrics,
// CORS, then the route table. Forwarded client addresses are only believed
// from cfg.TrustedProxies.
func NewEngine(cfg *config.Config, db *sql.DB, startedAt time.Time) *gin.Engine {
	api := handlers.New(db, handlers.Options{
		MonitoringKey: cfg.MonitoringAPIKey,
		StartedAt:     startedAt,
	})
	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerMinute)

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("ignoring invalid trusted proxies")
		_ = engine.SetTrustedProxies(nil)
	}
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		monitoring.RequestMetricsMiddleware(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	rt := New(
		Routes(api, limiter.Handler()),
		middleware.Authenticate(),
		middleware.RequireArtistOwnership(api.Ownership()),
	)
	rt.Mount(engine)
	return engine
}
