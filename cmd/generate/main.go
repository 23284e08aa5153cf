package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"dconn.dev/overworld/internal/config"
	"dconn.dev/overworld/internal/services"
)

// Manifest describes a pre-generated region
type Manifest struct {
	Seed      int64    `json:"seed"`
	ChunkSize int      `json:"chunk_size"`
	Chunks    []string `json:"chunks"` // "x,y" keys
}

func usage() {
	fmt.Println("Usage: generate <output-dir>")
	fmt.Println("       generate <output-dir> <center-x> <center-y> <radius>  (square of chunks around a center)")
	os.Exit(1)
}

func main() {
	if len(os.Args) != 2 && len(os.Args) != 5 {
		usage()
	}

	outputDir := os.Args[1]
	centerX, centerY, radius := 0, 0, 1
	if len(os.Args) == 5 {
		var err error
		args := make([]int, 3)
		for i, s := range os.Args[2:] {
			if args[i], err = strconv.Atoi(s); err != nil {
				fmt.Fprintf(os.Stderr, "Invalid number %q\n", s)
				usage()
			}
		}
		centerX, centerY, radius = args[0], args[1], args[2]
		if radius < 0 {
			fmt.Fprintln(os.Stderr, "Radius must not be negative")
			os.Exit(1)
		}
	}

	cfg := config.Load()
	world, err := services.NewWorldService(cfg.WorldSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create world: %v\n", err)
		os.Exit(1)
	}

	// Ensure output directory exists
	chunksDir := filepath.Join(outputDir, "chunks")
	if err := os.MkdirAll(chunksDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	manifest := Manifest{Seed: world.Seed(), ChunkSize: world.ChunkSize()}
	failed := 0

	for cy := centerY - radius; cy <= centerY+radius; cy++ {
		for cx := centerX - radius; cx <= centerX+radius; cx++ {
			fmt.Printf("Generating chunk (%d, %d)...\n", cx, cy)

			chunk, err := world.GetChunkResponse(cx, cy)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
				failed++
				continue
			}

			filename := fmt.Sprintf("%d_%d.json", cx, cy)
			if err := writeJSON(filepath.Join(chunksDir, filename), chunk); err != nil {
				fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
				failed++
				continue
			}

			manifest.Chunks = append(manifest.Chunks, fmt.Sprintf("%d,%d", cx, cy))
			fmt.Printf("  Created %s\n", filename)
		}
	}

	if err := writeJSON(filepath.Join(outputDir, "world.json"), manifest); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if failed > 0 {
		fmt.Printf("Done with %d failed chunks\n", failed)
		os.Exit(1)
	}
	fmt.Println("Done!")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
