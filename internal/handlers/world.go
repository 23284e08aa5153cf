package handlers

import (
	"net/http"

	"dconn.dev/overworld/internal/services"
)

// WorldHandler handles world, chunk and tile endpoints
type WorldHandler struct {
	worldService *services.WorldService
}

// NewWorldHandler creates a new WorldHandler
func NewWorldHandler(ws *services.WorldService) *WorldHandler {
	return &WorldHandler{worldService: ws}
}

// GetWorld handles GET /api/world - returns the world summary
func (h *WorldHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	world := h.worldService.GetWorldResponse()
	respondJSON(w, http.StatusOK, world)
}

// GetChunk handles GET /api/chunks/{x}/{y} - returns a specific chunk
func (h *WorldHandler) GetChunk(w http.ResponseWriter, r *http.Request) {
	x, y, msg := coordParams(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	chunk, err := h.worldService.GetChunkResponse(x, y)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, chunk)
}

// GetTile handles GET /api/tiles/{x}/{y} - returns the tile at world coordinates
func (h *WorldHandler) GetTile(w http.ResponseWriter, r *http.Request) {
	x, y, msg := coordParams(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	tile, err := h.worldService.GetTileResponse(x, y)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tile)
}
