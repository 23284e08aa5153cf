package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dconn.dev/overworld/internal/services"
)

// BiomeHandler handles biome table endpoints
type BiomeHandler struct {
	biomeService *services.BiomeService
}

// NewBiomeHandler creates a new BiomeHandler
func NewBiomeHandler(bs *services.BiomeService) *BiomeHandler {
	return &BiomeHandler{biomeService: bs}
}

// ListBiomes handles GET /api/biomes
func (h *BiomeHandler) ListBiomes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.biomeService.GetAll())
}

// GetBiome handles GET /api/biomes/{name}
func (h *BiomeHandler) GetBiome(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	biome, err := h.biomeService.GetByName(name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Biome not found")
		return
	}

	respondJSON(w, http.StatusOK, biome)
}
