// Package monitor samples process-level metrics and serves the health route.
package monitor

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/db"
)

// Snapshot is one sample of process metrics.
type Snapshot struct {
	UptimeSeconds float64       `json:"uptimeSeconds"`
	Goroutines    int           `json:"goroutines"`
	HeapAlloc     uint64        `json:"heapAllocBytes"`
	HeapSys       uint64        `json:"heapSysBytes"`
	NumGC         uint32        `json:"numGC"`
	Pool          *db.PoolStats `json:"pool,omitempty"`
}

// Sampler produces metric snapshots for the running process.
type Sampler struct {
	start time.Time
	pool  *pgxpool.Pool
}

// New creates a Sampler. pool may be nil in tests.
func New(pool *pgxpool.Pool) *Sampler {
	return &Sampler{start: time.Now(), pool: pool}
}

// Sample collects the current metrics.
func (s *Sampler) Sample() Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	snap := Snapshot{
		UptimeSeconds: time.Since(s.start).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		HeapAlloc:     mem.HeapAlloc,
		HeapSys:       mem.HeapSys,
		NumGC:         mem.NumGC,
	}
	if s.pool != nil {
		snap.Pool = db.GetPoolStats(s.pool)
	}
	return snap
}

// HealthHandler serves the health route: 200 with a metrics snapshot when the
// database answers a ping, 503 otherwise.
func (s *Sampler) HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		snap := s.Sample()

		if s.pool != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if err := s.pool.Ping(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
					"status":  "unhealthy",
					"metrics": snap,
				})
			}
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"metrics": snap,
		})
	}
}
