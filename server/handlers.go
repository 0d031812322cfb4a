package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"grid-planner/grid"
	"grid-planner/obstacles"
	"grid-planner/planner"
	"grid-planner/render"
)

type BuildMapRequest struct {
	Rows       int              `json:"rows"`
	Cols       int              `json:"cols"`
	Obstacles  *int             `json:"obstacles,omitempty"` // Number of random rectangles
	Seed       *int64           `json:"seed,omitempty"`
	Start      *grid.Cell       `json:"start,omitempty"` // Keep free when generating
	Goal       *grid.Cell       `json:"goal,omitempty"`
	Rects      []obstacles.Rect `json:"rects,omitempty"` // Explicit obstacles instead of random ones
	SaveToFile bool             `json:"saveToFile"`
	Force      bool             `json:"force,omitempty"` // Set to true to replace an existing map
}

type RouteRequest struct {
	Start     grid.Cell `json:"start"`
	Goal      grid.Cell `json:"goal"`
	Algorithm string    `json:"algorithm,omitempty"`

	// Overrides of the configured tunables
	Connectivity    int      `json:"connectivity,omitempty"`
	Seed            *int64   `json:"seed,omitempty"`
	SimplifyEpsilon *float64 `json:"simplifyEpsilon,omitempty"`
}

type RouteResponse struct {
	RunID     string        `json:"runId"`
	Success   bool          `json:"success"`
	Status    grid.Status   `json:"status"`
	Message   string        `json:"message,omitempty"`
	Path      grid.Path     `json:"path"`
	Partial   grid.Path     `json:"partial,omitempty"` // Best-effort chain when no path was found
	Length    float64       `json:"length"`
	Stats     planner.Stats `json:"stats"`
	ElapsedMs float64       `json:"elapsedMs"`
	NumEdges  int           `json:"numEdges,omitempty"`
}

type CompareRequest struct {
	RouteRequest
	Algorithms []string `json:"algorithms,omitempty"`
}

type CompareResponse struct {
	RunID   string             `json:"runId"`
	Results []*planner.Outcome `json:"results"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// tunables applies request overrides on top of the configured planner section.
func (s *Server) tunables(req RouteRequest) (planner.Tunables, error) {
	t, err := planner.TunablesFrom(s.cfg.Planner)
	if err != nil {
		return t, err
	}
	if req.Connectivity != 0 {
		if t.Connectivity, err = grid.ParseConnectivity(req.Connectivity); err != nil {
			return t, err
		}
	}
	if req.Seed != nil {
		t.Seed = *req.Seed
	}
	if req.SimplifyEpsilon != nil {
		t.SimplifyEpsilon = *req.SimplifyEpsilon
	}
	return t, nil
}

// POST /buildMap - Generate or upload an obstacle map
func (s *Server) buildMapHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Build map request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	existing, _ := s.current()
	if existing != nil && !req.Force {
		log.Println("⚠️  Obstacle map already exists")
		log.Println("   To rebuild, set force:true in request or restart the server")
		log.Println("========================================")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "map already exists",
			"message": "Map is already built. Set 'force: true' to rebuild, or restart the server.",
		})
		return
	}
	if existing != nil {
		log.Println("🔄 Force rebuild requested - replacing obstacle map...")
	}

	// Set defaults
	if req.Rows == 0 {
		req.Rows = s.cfg.Map.Rows
	}
	if req.Cols == 0 {
		req.Cols = s.cfg.Map.Cols
	}
	count := s.cfg.Map.Obstacles
	if req.Obstacles != nil {
		count = *req.Obstacles
	}
	seed := s.cfg.Planner.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	if req.Rows <= 0 || req.Cols <= 0 || req.Rows*req.Cols > s.cfg.Server.MaxArea {
		log.Printf("❌ Invalid map size %dx%d\n", req.Rows, req.Cols)
		http.Error(w, fmt.Sprintf("map size must be positive and at most %d cells", s.cfg.Server.MaxArea), http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	if count < 0 || count > s.cfg.Server.MaxObstacles || len(req.Rects) > s.cfg.Server.MaxObstacles {
		log.Printf("❌ Invalid obstacle count %d (%d explicit)\n", count, len(req.Rects))
		http.Error(w, fmt.Sprintf("obstacle count must be between 0 and %d", s.cfg.Server.MaxObstacles), http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	log.Printf("   Size: %dx%d\n", req.Rows, req.Cols)

	var (
		m        *obstacles.Map
		attempts = 1
		err      error
	)
	rng := rand.New(rand.NewSource(seed))
	switch {
	case req.Rects != nil:
		log.Printf("   Explicit obstacles: %d rectangles\n", len(req.Rects))
		m, err = obstacles.NewMap(req.Rows, req.Cols, obstacles.RemoveContained(req.Rects))
	case req.Start != nil && req.Goal != nil:
		log.Printf("   Random obstacles: %d (seed %d), keeping %v and %v free\n", count, seed, *req.Start, *req.Goal)
		m, attempts, err = obstacles.GenerateValid(req.Rows, req.Cols, count, *req.Start, *req.Goal, rng, s.cfg.Map.MaxAttempts)
	default:
		log.Printf("   Random obstacles: %d (seed %d)\n", count, seed)
		m, err = obstacles.Generate(req.Rows, req.Cols, count, rng)
	}
	if err != nil {
		log.Printf("❌ Failed to build map: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	s.install(m, "build")

	// Optionally save to file
	if req.SaveToFile {
		if err := obstacles.Save(m, s.cfg.Map.File); err != nil {
			log.Printf("⚠️  Failed to save map: %v\n", err)
		}
	}

	log.Printf("✅ Map built and stored in memory (%d obstacles, %d attempts)\n", m.Len(), attempts)
	log.Println("========================================")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"rows":         m.Rows,
		"cols":         m.Cols,
		"numObstacles": m.Len(),
		"attempts":     attempts,
	})
}

// POST /route - Plan a route with one algorithm
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Route request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, g := s.current()
	if g == nil {
		log.Println("❌ Obstacle map not available")
		http.Error(w, "Map not built. Call /buildMap first", http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	if req.Algorithm == "" {
		req.Algorithm = s.cfg.Planner.Algorithm
	}
	alg, err := planner.ParseAlgorithm(req.Algorithm)
	if err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}
	t, err := s.tunables(req)
	if err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	runID := uuid.NewString()
	log.Printf("   Run:       %s\n", runID)
	log.Printf("   Algorithm: %s\n", alg)
	log.Printf("   Start: %v\n", req.Start)
	log.Printf("   Goal:  %v\n", req.Goal)

	log.Printf("🔍 Running %s...\n", alg)
	out, err := planner.Run(r.Context(), g, req.Start, req.Goal, alg, t)
	if err != nil {
		log.Printf("❌ %v\n", err)
		runsTotal.WithLabelValues(string(alg), grid.StatusOf(err).String()).Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}
	observe(out)

	s.mu.Lock()
	if s.grid == g {
		s.last = &lastRun{id: runID, start: req.Start, goal: req.Goal, outcome: out}
	}
	s.mu.Unlock()

	response := RouteResponse{
		RunID:     runID,
		Success:   out.Found(),
		Status:    out.Status,
		Path:      out.Path,
		Partial:   out.Partial,
		Length:    out.Length,
		Stats:     out.Stats,
		ElapsedMs: float64(out.Elapsed.Microseconds()) / 1000,
		NumEdges:  len(out.Edges),
	}
	if response.Path == nil {
		response.Path = grid.Path{}
	}

	if !out.Found() {
		log.Printf("❌ No path found (%s)\n", out.Status)
		response.Message = fmt.Sprintf("No path found: %s", out.Status)
		if len(out.Partial) > 0 {
			response.Message += fmt.Sprintf("; partial route of %d waypoints", len(out.Partial))
		}
	} else {
		path := out.Path
		log.Printf("✅ Path found with %d waypoints in %.2f ms\n", len(path), response.ElapsedMs)
		log.Printf("   Length: %.2f cells\n", out.Length)
		log.Println("   Path preview (first/last 3 waypoints):")
		for i := 0; i < len(path) && i < 3; i++ {
			log.Printf("      %d: %v\n", i, path[i])
		}
		if len(path) > 6 {
			log.Printf("      ... (%d intermediate waypoints)\n", len(path)-6)
			for i := len(path) - 3; i < len(path); i++ {
				log.Printf("      %d: %v\n", i, path[i])
			}
		}
	}

	writeJSON(w, http.StatusOK, response)
	log.Println("========================================")
}

// POST /compare - Plan with several algorithms concurrently
func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("⚖️  Compare request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, g := s.current()
	if g == nil {
		log.Println("❌ Obstacle map not available")
		http.Error(w, "Map not built. Call /buildMap first", http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	var algs []planner.Algorithm
	for _, name := range req.Algorithms {
		alg, err := planner.ParseAlgorithm(name)
		if err != nil {
			log.Printf("❌ %v\n", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Println("========================================")
			return
		}
		algs = append(algs, alg)
	}
	t, err := s.tunables(req.RouteRequest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	runID := uuid.NewString()
	log.Printf("   Run: %s, start %v, goal %v\n", runID, req.Start, req.Goal)

	outs, err := planner.Compare(r.Context(), g, req.Start, req.Goal, algs, t)
	if err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("========================================")
		return
	}
	for _, out := range outs {
		observe(out)
		log.Printf("   %-10s %-18s %4d waypoints  length %.2f  %v\n",
			out.Algorithm, out.Status, len(out.Path), out.Length, out.Elapsed)
	}

	writeJSON(w, http.StatusOK, CompareResponse{RunID: runID, Results: outs})
	log.Println("========================================")
}

// GET /getTreeLines - Sampling tree of the last route as GeoJSON
func (s *Server) getTreeLinesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📊 Get tree lines request received")

	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil || last.outcome.Tree == nil {
		log.Println("❌ No sampling tree available")
		http.Error(w, "No sampling tree. Call /route with rrt or rrt-star first", http.StatusNotFound)
		log.Println("========================================")
		return
	}

	fc := last.outcome.Tree.FeatureCollection()
	fc.ExtraMembers = map[string]interface{}{
		"runId":    last.id,
		"numNodes": last.outcome.Tree.Len(),
		"numEdges": len(last.outcome.Edges),
	}

	log.Printf("   Returning %d line segments from run %s\n", len(last.outcome.Edges), last.id)
	log.Println("========================================")

	writeJSON(w, http.StatusOK, fc)
}

// GET /getMap - Current obstacle map as GeoJSON; ?minRow=&minCol=&maxRow=&maxCol= restricts it to a cell range
func (s *Server) getMapHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	m, _ := s.current()
	if m == nil {
		http.Error(w, "Map not built. Call /buildMap first", http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	if q.Get("minRow") == "" && q.Get("minCol") == "" && q.Get("maxRow") == "" && q.Get("maxCol") == "" {
		writeJSON(w, http.StatusOK, m.FeatureCollection())
		return
	}

	// Region query; missing bounds default to the map edges
	bounds := [4]int{0, 0, m.Rows - 1, m.Cols - 1}
	for i, key := range []string{"minRow", "minCol", "maxRow", "maxCol"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s must be an integer", key), http.StatusBadRequest)
			return
		}
		bounds[i] = n
	}
	writeJSON(w, http.StatusOK, m.RegionFeatureCollection(bounds[0], bounds[1], bounds[2], bounds[3]))
}

// GET /render - PNG of the last route; ?scale= overrides pixels per cell
func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	g, last := s.grid, s.last
	s.mu.RUnlock()

	if last == nil {
		http.Error(w, "No route computed yet. Call /route first", http.StatusNotFound)
		return
	}

	scale := s.cfg.Server.RenderScale
	if q := r.URL.Query().Get("scale"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 || n > 50 {
			http.Error(w, "scale must be an integer between 1 and 50", http.StatusBadRequest)
			return
		}
		scale = n
	}
	if scale == 0 {
		scale = render.DefaultScale(g.Rows, g.Cols)
	}
	if pixels := int64(g.Rows*scale) * int64(g.Cols*scale); pixels > int64(s.cfg.Server.MaxRenderPixels) {
		http.Error(w, fmt.Sprintf("%dx%d cells at scale %d exceed %d pixels",
			g.Rows, g.Cols, scale, s.cfg.Server.MaxRenderPixels), http.StatusBadRequest)
		return
	}

	scene := render.Scene{
		Grid:   g,
		Labels: last.outcome.Labels,
		Edges:  last.outcome.Edges,
		Path:   last.outcome.Path,
		Start:  last.start,
		Goal:   last.goal,
		Scale:  scale,
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.EncodePNG(w, scene); err != nil {
		log.Printf("⚠️  Failed to render run %s: %v\n", last.id, err)
	}
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	m := s.omap
	last := s.last
	s.mu.RUnlock()

	status := "ready"
	body := map[string]interface{}{"hasMap": m != nil}
	if m == nil {
		status = "waiting for map"
	} else {
		body["rows"] = m.Rows
		body["cols"] = m.Cols
		body["numObstacles"] = m.Len()
	}
	if last != nil {
		body["lastRunId"] = last.id
	}
	body["status"] = status

	writeJSON(w, http.StatusOK, body)
}
