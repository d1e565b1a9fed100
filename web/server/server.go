package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sun-wendy/6.4400-graphics/pkg/output"
	"github.com/sun-wendy/6.4400-graphics/pkg/scene"
)

// Request limits
const (
	minSize         = 16
	maxSize         = 2000
	maxBouncesLimit = 16
	maxSupersample  = 4
	DefaultTileSize = 32
	defaultSceneID  = "point-light-plane"
)

// Server serves the ray tracer and particle simulator over HTTP
type Server struct {
	port      int
	scenesDir string
	sink      output.Sink // Optional: where renders requested with save=true go
}

// NewServer creates a web server listing JSON scenes from scenesDir. sink may be nil.
func NewServer(port int, scenesDir string, sink output.Sink) *Server {
	return &Server{port: port, scenesDir: scenesDir, sink: sink}
}

// RenderRequest holds the scene selection and per-request overrides
type RenderRequest struct {
	Scene       string `json:"scene"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MaxBounces  int    `json:"maxBounces"`
	Supersample int    `json:"supersample"`
	Shadows     bool   `json:"shadows"`
	Save        bool   `json:"save"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	return mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns a scene's defaults and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = defaultSceneID
	}

	sceneObj, err := s.loadScene(sceneID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	settings := sceneObj.Settings
	camera := sceneObj.Camera
	response := map[string]interface{}{
		"scene": sceneID,
		"name":  sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":       settings.Width,
			"height":      settings.Height,
			"maxBounces":  settings.MaxBounces,
			"shadows":     settings.Shadows,
			"supersample": settings.Supersample,
			"gamma":       settings.Gamma,
			"background":  [3]float64{settings.Background.X, settings.Background.Y, settings.Background.Z},
		},
		"camera": map[string]interface{}{
			"position": [3]float64{camera.Position.X, camera.Position.Y, camera.Position.Z},
			"lookAt":   [3]float64{camera.LookAt.X, camera.LookAt.Y, camera.LookAt.Z},
			"fov":      camera.FOV,
		},
		"primitiveCount": sceneObj.GetPrimitiveCount(),
		"limits": map[string]interface{}{
			"width":       map[string]int{"min": minSize, "max": maxSize},
			"height":      map[string]int{"min": minSize, "max": maxSize},
			"maxBounces":  map[string]int{"min": 0, "max": maxBouncesLimit},
			"supersample": map[string]int{"min": 1, "max": maxSupersample},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams reads the scene id and overrides shared by render and inspect.
// Unset parameters keep the scene's own settings.
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultSceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", -1, 0, maxBouncesLimit); err != nil {
		return err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", 0, 1, maxSupersample); err != nil {
		return err
	}
	if req.Shadows, err = parseBoolParam(query, "shadows", false); err != nil {
		return err
	}
	return nil
}

// createScene loads the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		sceneObj.Settings.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Settings.Height = req.Height
	}
	if req.MaxBounces >= 0 {
		sceneObj.Settings.MaxBounces = req.MaxBounces
	}
	if req.Supersample > 0 {
		sceneObj.Settings.Supersample = req.Supersample
	}
	if req.Shadows {
		sceneObj.Settings.Shadows = true
	}
	return sceneObj, nil
}

func (s *Server) loadScene(id string) (*scene.Scene, error) {
	return scene.Load(scene.ResolveID(id, s.scenesDir))
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
