// Package handlers holds the HTTP controllers. Each one parses its input,
// runs a validator and a service call, and writes exactly one response.
package handlers

import (
	"database/sql"
	"time"

	"rhythm-registry/internal/middleware"
	"rhythm-registry/internal/monitoring"
	"rhythm-registry/internal/services"
)

// API bundles the services the controllers call.
type API struct {
	users         *services.UserService
	auth          *services.AuthService
	artists       *services.ArtistService
	songs         *services.SongService
	monitor       *monitoring.Service
	monitoringKey string
}

type Options struct {
	// MonitoringKey guards /api/monitor/snapshot. Empty disables it.
	MonitoringKey string
	StartedAt     time.Time
}

func New(db *sql.DB, opts Options) *API {
	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}
	users := services.NewUserService(db)
	return &API{
		users:         users,
		auth:          services.NewAuthService(db, users),
		artists:       services.NewArtistService(db),
		songs:         services.NewSongService(db),
		monitor:       monitoring.NewService(opts.StartedAt, db),
		monitoringKey: opts.MonitoringKey,
	}
}

// Ownership exposes the song ownership check to the router.
func (a *API) Ownership() middleware.OwnershipChecker {
	return a.songs
}
