package main

import (
	"log"
	"net/http"
	"time"

	"dconn.dev/overworld/internal/config"
	"dconn.dev/overworld/internal/handlers"
)

func main() {
	cfg := config.Load()

	router, err := handlers.SetupRoutes(cfg)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Serving world (seed %d) on %s", cfg.Seed, cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
