package monitoring

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"rhythm-registry/internal/store"
)

// Service holds runtime context for monitoring and reporting.
type Service struct {
	startedAt time.Time
	db        *sql.DB
}

type Snapshot struct {
	TimestampUTC       string      `json:"timestamp_utc"`
	UptimeSeconds      int64       `json:"uptime_seconds"`
	DBStatus           string      `json:"db_status"`
	HTTPActiveRequests int64       `json:"http_active_requests"`
	HTTPTotalRequests  uint64      `json:"http_total_requests"`
	HTTPClientErrors   uint64      `json:"http_client_errors"`
	HTTPServerErrors   uint64      `json:"http_server_errors"`
	DBMaxOpen          int         `json:"db_max_open_connections"`
	DBOpenConnections  int         `json:"db_open_connections"`
	DBInUseConnections int         `json:"db_in_use_connections"`
	DBIdleConnections  int         `json:"db_idle_connections"`
	DBWaitCount        int64       `json:"db_wait_count"`
	DBWaitDurationMS   int64       `json:"db_wait_duration_ms"`
	Goroutines         int         `json:"goroutines"`
	GoMemoryAllocBytes uint64      `json:"go_memory_alloc_bytes"`
	GoHeapInUseBytes   uint64      `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32      `json:"go_gc_count"`
	UsersTotal         int64       `json:"users_total"`
	ArtistsTotal       int64       `json:"artists_total"`
	SongsTotal         int64       `json:"songs_total"`
	Imports            ImportStats `json:"csv_imports"`
}

func NewService(startedAt time.Time, db *sql.DB) *Service {
	return &Service{startedAt: startedAt, db: db}
}

// Snapshot collects process, pool and catalog figures. Count failures are
// logged and leave the total at zero.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	stats := s.db.Stats()
	httpStats := getHTTPStats()

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	snap := Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		DBStatus:           "ok",
		HTTPActiveRequests: httpStats.Active,
		HTTPTotalRequests:  httpStats.Total,
		HTTPClientErrors:   httpStats.ClientErrors,
		HTTPServerErrors:   httpStats.ServerErrors,
		DBMaxOpen:          stats.MaxOpenConnections,
		DBOpenConnections:  stats.OpenConnections,
		DBInUseConnections: stats.InUse,
		DBIdleConnections:  stats.Idle,
		DBWaitCount:        stats.WaitCount,
		DBWaitDurationMS:   stats.WaitDuration.Milliseconds(),
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memory.Alloc,
		GoHeapInUseBytes:   memory.HeapInuse,
		GoGCCount:          memory.NumGC,
		Imports:            getImportStats(),
	}

	if err := s.db.PingContext(ctx); err != nil {
		snap.DBStatus = "error"
		log.Warn().Err(err).Msg("monitoring: database ping failed")
		return snap
	}

	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
		dst   *int64
	}{
		{"users", func(ctx context.Context) (int64, error) { return store.CountUsers(ctx, s.db) }, &snap.UsersTotal},
		{"artists", func(ctx context.Context) (int64, error) { return store.CountArtists(ctx, s.db) }, &snap.ArtistsTotal},
		{"songs", func(ctx context.Context) (int64, error) { return store.CountSongs(ctx, s.db) }, &snap.SongsTotal},
	}
	for _, counter := range counters {
		total, err := counter.count(ctx)
		if err != nil {
			log.Warn().Err(err).Str("table", counter.name).Msg("monitoring: count failed")
			continue
		}
		*counter.dst = total
	}

	return snap
}
