package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dconn.dev/overworld/internal/config"
	"dconn.dev/overworld/internal/middleware"
	"dconn.dev/overworld/internal/services"
)

// SetupRoutes builds the world from configuration and returns the router
func SetupRoutes(cfg *config.Config) (http.Handler, error) {
	worldService, err := services.NewWorldService(cfg.WorldSettings())
	if err != nil {
		return nil, err
	}
	return NewRouter(worldService, cfg.World.MaxSpawnSearch), nil
}

// NewRouter configures all routes over an existing world
func NewRouter(ws *services.WorldService, maxSpawnSearch int) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	// Initialize services
	mapService := services.NewMapService(ws, maxSpawnSearch)
	biomeService := services.NewBiomeService(ws.Rules(), ws.Palette())

	// Initialize handlers
	worldHandler := NewWorldHandler(ws)
	viewportHandler := NewViewportHandler(mapService)
	biomeHandler := NewBiomeHandler(biomeService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/world", worldHandler.GetWorld)
		r.Get("/chunks/{x}/{y}", worldHandler.GetChunk)
		r.Get("/tiles/{x}/{y}", worldHandler.GetTile)

		r.Get("/viewport", viewportHandler.GetViewport)
		r.Get("/spawn", viewportHandler.GetSpawn)

		r.Get("/biomes", biomeHandler.ListBiomes)
		r.Get("/biomes/{name}", biomeHandler.GetBiome)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// coordParams parses the {x} and {y} URL params
func coordParams(r *http.Request) (int, int, string) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		return 0, 0, "Invalid x coordinate"
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		return 0, 0, "Invalid y coordinate"
	}
	return x, y, ""
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) (int, bool) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, true
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, false
	}
	return intVal, true
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
