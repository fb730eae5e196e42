package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Parameter limits shared by the render, image and inspect endpoints
const (
	MinImageSize    = 8
	MaxImageSize    = 2000
	MaxSamples      = 10000
	MaxPasses       = 1000
	MaxDepthLimit   = 500
	DefaultTileSize = 64
)

// Server handles web requests for the path tracer
type Server struct {
	addr string
	mux  *http.ServeMux
}

// NewServer creates a new web server listening on addr
func NewServer(addr string) *Server {
	s := &Server{addr: addr, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/image", s.handleImage)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)

	return s
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}

// SceneRequest holds the parameters every scene-based endpoint accepts
type SceneRequest struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	MaxSamples int   `json:"maxSamples"` // Maximum samples per pixel
	MaxPasses  int   `json:"maxPasses"`  // Maximum number of passes
	MaxDepth   int   `json:"maxDepth"`   // Maximum ray bounce depth
	Seed       int64 `json:"seed"`       // Base seed for the tile streams
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

func statsFromRender(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MaxSamples:     stats.MaxSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneName
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	cam := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"camera": map[string]interface{}{
			"origin":         [3]float64{cam.Origin.X, cam.Origin.Y, cam.Origin.Z},
			"viewportWidth":  cam.ViewportWidth,
			"viewportHeight": cam.ViewportHeight,
			"depth":          cam.Depth,
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":     map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"maxSamples": map[string]int{"min": 1, "max": MaxSamples},
			"maxPasses":  map[string]int{"min": 1, "max": MaxPasses},
			"maxDepth":   map[string]int{"min": 1, "max": MaxDepthLimit},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams fills the scene name and image size, defaulting
// to the scene's own size
func (s *Server) parseCommonSceneParams(r *http.Request) (SceneRequest, *scene.Scene, error) {
	req := SceneRequest{Scene: r.URL.Query().Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return req, nil, err
	}

	query := r.URL.Query()
	if req.Width, err = parseIntParam(query, "width", sceneObj.SamplingConfig.Width, MinImageSize, MaxImageSize); err != nil {
		return req, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.SamplingConfig.Height, MinImageSize, MaxImageSize); err != nil {
		return req, nil, err
	}
	return req, sceneObj, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	common, sceneObj, err := s.parseCommonSceneParams(r)
	if err != nil {
		return nil, nil, err
	}

	req := &RenderRequest{SceneRequest: common}
	query := r.URL.Query()
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", sceneObj.SamplingConfig.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 7, 1, MaxPasses); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", sceneObj.SamplingConfig.MaxDepth, 1, MaxDepthLimit); err != nil {
		return nil, nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 42); err != nil {
		return nil, nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
