// Package server exposes the planners over HTTP.
//
// The service keeps one obstacle map in memory. Maps are built with
// /buildMap, persisted to the configured JSON file on request and loaded from
// it at startup. Every planning request gets a run ID; the last run is kept
// for /render and /getTreeLines.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grid-planner/config"
	"grid-planner/grid"
	"grid-planner/obstacles"
	"grid-planner/planner"
)

// lastRun is the most recent successful /route call.
type lastRun struct {
	id          string
	start, goal grid.Cell
	outcome     *planner.Outcome
}

// Server holds the current map and the last route.
type Server struct {
	cfg *config.Config

	mu   sync.RWMutex
	omap *obstacles.Map
	grid *grid.OccupancyGrid
	last *lastRun
}

// New creates a server without a map.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{cfg: cfg}
}

// LoadMapFile installs the map stored in the configured file, if any.
func (s *Server) LoadMapFile() error {
	log.Println("Checking for existing obstacle map file...")

	m, err := obstacles.Load(s.cfg.Map.File)
	if err != nil {
		log.Println("ℹ️  No existing map found (this is normal on first run)")
		log.Println("   Call /buildMap to create a new map")
		return err
	}
	s.install(m, "file")
	log.Printf("✅ Loaded existing map from %s\n", s.cfg.Map.File)
	log.Printf("   Size: %dx%d, obstacles: %d\n", m.Rows, m.Cols, m.Len())
	return nil
}

// install replaces the current map and forgets the last route.
func (s *Server) install(m *obstacles.Map, source string) {
	g := m.Grid()
	s.mu.Lock()
	s.omap = m
	s.grid = g
	s.last = nil
	s.mu.Unlock()
	mapsBuilt.WithLabelValues(source).Inc()
}

func (s *Server) current() (*obstacles.Map, *grid.OccupancyGrid) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.omap, s.grid
}

// Handler returns the routed, CORS-enabled handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/buildMap", corsMiddleware(s.buildMapHandler))
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/compare", corsMiddleware(s.compareHandler))
	mux.HandleFunc("/getTreeLines", corsMiddleware(s.getTreeLinesHandler))
	mux.HandleFunc("/getMap", corsMiddleware(s.getMapHandler))
	mux.HandleFunc("/render", corsMiddleware(s.renderHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	log.Println("========================================")
	log.Println("🚀 Grid Path Planner Server")
	log.Println("========================================")
	_ = s.LoadMapFile()
	log.Println("")

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on %s\n", s.cfg.Server.Addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /buildMap      - Generate or upload an obstacle map")
	log.Println("  POST /route         - Plan a route with one algorithm")
	log.Println("  POST /compare       - Plan with several algorithms concurrently")
	log.Println("  GET  /getTreeLines  - Sampling tree of the last route (GeoJSON)")
	log.Println("  GET  /getMap        - Current obstacle map (GeoJSON, optional region filter)")
	log.Println("  GET  /render        - PNG of the last route")
	log.Println("  GET  /health        - Check server status")
	log.Println("  GET  /metrics       - Prometheus metrics")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
