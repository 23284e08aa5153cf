package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"dconn.dev/overworld/internal/fonts"
	"dconn.dev/overworld/internal/generation"
	"dconn.dev/overworld/internal/services"
)

// MaxRandomSeed is the upper bound of a self-selected seed
const MaxRandomSeed = 1_000_000

// Config holds all application configuration
type Config struct {
	ServerAddr string
	DataPath   string
	Seed       int64
	World      *WorldConfig
	Rules      *generation.RuleTable
	Glyphs     generation.GlyphResolver
}

// WorldConfig mirrors data/world.json. Missing keys keep their defaults.
type WorldConfig struct {
	Seed           *int64                   `json:"seed"`
	ChunkSize      int                      `json:"chunk_size"`
	CacheSize      int                      `json:"cache_size"`
	Workers        int                      `json:"workers"` // 0 means one per CPU
	ColorJitter    int                      `json:"color_jitter"`
	MaxSpawnSearch int                      `json:"max_spawn_search"`
	Terrain        generation.TerrainConfig `json:"terrain"`
	Thresholds     generation.Thresholds    `json:"thresholds"`
}

// DefaultWorldConfig returns the settings used when world.json is silent
func DefaultWorldConfig() *WorldConfig {
	return &WorldConfig{
		ChunkSize:      generation.DefaultChunkSize,
		CacheSize:      services.DefaultCacheSize,
		ColorJitter:    10,
		MaxSpawnSearch: services.DefaultSpawnSearch,
		Terrain:        generation.DefaultTerrainConfig(),
		Thresholds:     generation.DefaultThresholds(),
	}
}

// Load reads and parses all configuration files
func Load() *Config {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "data"
	}

	cfg, err := LoadFrom(dataPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	return cfg
}

// LoadFrom reads the configuration files under dataPath
func LoadFrom(dataPath string) (*Config, error) {
	world, err := loadWorld(filepath.Join(dataPath, "world.json"))
	if err != nil {
		return nil, err
	}

	rules, err := loadBiomes(filepath.Join(dataPath, "biomes.json"))
	if err != nil {
		return nil, err
	}

	glyphs, err := loadFontSupport(filepath.Join(dataPath, "font_support.json"))
	if err != nil {
		return nil, err
	}

	seed, err := resolveSeed(world.Seed)
	if err != nil {
		return nil, err
	}

	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	return &Config{
		ServerAddr: serverAddr,
		DataPath:   dataPath,
		Seed:       seed,
		World:      world,
		Rules:      rules,
		Glyphs:     glyphs,
	}, nil
}

// WorldSettings returns the immutable settings the world is built from
func (c *Config) WorldSettings() services.WorldSettings {
	return services.WorldSettings{
		Generator: generation.GeneratorConfig{
			Seed:        c.Seed,
			ChunkSize:   c.World.ChunkSize,
			ColorJitter: c.World.ColorJitter,
			Terrain:     c.World.Terrain,
			Thresholds:  c.World.Thresholds,
		},
		Rules:     c.Rules,
		Glyphs:    c.Glyphs,
		CacheSize: c.World.CacheSize,
		Workers:   c.World.Workers,
	}
}

// loadWorld reads world.json over the defaults
func loadWorld(path string) (*WorldConfig, error) {
	world := DefaultWorldConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world.json: %w", err)
	}
	if err := json.Unmarshal(data, world); err != nil {
		return nil, fmt.Errorf("%w: failed to parse world.json: %v", generation.ErrConfiguration, err)
	}

	return world, nil
}

// resolveSeed prefers WORLD_SEED, then the file, then picks one at random
func resolveSeed(fileSeed *int64) (int64, error) {
	if env := os.Getenv("WORLD_SEED"); env != "" {
		seed, err := strconv.ParseInt(env, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: WORLD_SEED %q is not an integer", generation.ErrConfiguration, env)
		}
		return seed, nil
	}
	if fileSeed != nil {
		return *fileSeed, nil
	}

	seed := rand.Int64N(MaxRandomSeed + 1)
	log.Printf("No seed configured, using random seed %d", seed)
	return seed, nil
}

// biomeEntry is one value of the biomes.json object
type biomeEntry struct {
	Elevation   []float64 `json:"elevation"`
	Temperature []float64 `json:"temperature"`
	Humidity    []float64 `json:"humidity"`
	Chars       []string  `json:"chars"`
	Colors      [][]int   `json:"colors"`
}

// loadBiomes reads biomes.json. Rule order is the key order of the file.
func loadBiomes(path string) (*generation.RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read biomes.json: %w", err)
	}
	defer f.Close()

	var rules []generation.BiomeRule
	err = decodeOrdered(f, func(name string, dec *json.Decoder) error {
		var entry biomeEntry
		if err := dec.Decode(&entry); err != nil {
			return err
		}
		rule, err := entry.rule(name)
		if err != nil {
			return fmt.Errorf("biome %q: %v", name, err)
		}
		rules = append(rules, rule)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse biomes.json: %v", generation.ErrConfiguration, err)
	}

	return generation.NewRuleTable(rules)
}

func (e biomeEntry) rule(name string) (generation.BiomeRule, error) {
	rule := generation.BiomeRule{ID: name, Chars: e.Chars}

	var err error
	if e.Elevation != nil {
		elev, err := toRange("elevation", e.Elevation)
		if err != nil {
			return rule, err
		}
		rule.Elevation = &elev
	}
	if rule.Temperature, err = toRange("temperature", e.Temperature); err != nil {
		return rule, err
	}
	if rule.Humidity, err = toRange("humidity", e.Humidity); err != nil {
		return rule, err
	}

	for _, c := range e.Colors {
		if len(c) != 3 {
			return rule, fmt.Errorf("color %v must have 3 channels", c)
		}
		for _, v := range c {
			if v < 0 || v > 255 {
				return rule, fmt.Errorf("color %v channel out of range", c)
			}
		}
		rule.Colors = append(rule.Colors, generation.RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])})
	}

	return rule, nil
}

func toRange(field string, v []float64) (generation.Range, error) {
	if len(v) != 2 {
		return generation.Range{}, fmt.Errorf("%s must be [min, max]", field)
	}
	return generation.Range{Min: v[0], Max: v[1]}, nil
}

// loadFontSupport reads font_support.json when present, otherwise falls
// back to the coverage of the bundled Go fonts.
func loadFontSupport(path string) (generation.GlyphResolver, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fonts.NewGoFontTable()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read font_support.json: %w", err)
	}
	defer f.Close()

	var faces []fonts.Face
	err = decodeOrdered(f, func(name string, dec *json.Decoder) error {
		var glyphs []string
		if err := dec.Decode(&glyphs); err != nil {
			return err
		}
		faces = append(faces, fonts.NewListFace(name, glyphs))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font_support.json: %v", generation.ErrConfiguration, err)
	}

	table, err := fonts.NewSupportTable(faces...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrConfiguration, err)
	}
	return table, nil
}

// decodeOrdered walks a top-level JSON object in key order, handing each
// value to fn. Duplicate keys are rejected.
func decodeOrdered(r io.Reader, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		if seen[key] {
			return fmt.Errorf("key %q appears twice", key)
		}
		seen[key] = true

		if err := fn(key, dec); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}
