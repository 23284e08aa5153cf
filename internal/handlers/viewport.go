package handlers

import (
	"net/http"

	"dconn.dev/overworld/internal/models"
	"dconn.dev/overworld/internal/services"
)

// ViewportHandler handles area queries
type ViewportHandler struct {
	mapService *services.MapService
}

// NewViewportHandler creates a new ViewportHandler
func NewViewportHandler(ms *services.MapService) *ViewportHandler {
	return &ViewportHandler{mapService: ms}
}

// GetViewport handles GET /api/viewport?x=&y=&width=&height=
func (h *ViewportHandler) GetViewport(w http.ResponseWriter, r *http.Request) {
	x, okX := parseIntParam(r, "x", 0)
	y, okY := parseIntParam(r, "y", 0)
	if !okX || !okY {
		respondError(w, http.StatusBadRequest, "Invalid viewport position")
		return
	}

	// Parse viewport dimensions from query params
	width, _ := parseIntParam(r, "width", 40)
	height, _ := parseIntParam(r, "height", 20)

	// Clamp to reasonable values
	width = clamp(width, 10, 200)
	height = clamp(height, 10, 100)

	viewport, err := h.mapService.GetViewport(models.Position{X: x, Y: y}, width, height)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, viewport)
}

// GetSpawn handles GET /api/spawn
func (h *ViewportHandler) GetSpawn(w http.ResponseWriter, r *http.Request) {
	spawn, err := h.mapService.FindSpawn()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, spawn)
}
