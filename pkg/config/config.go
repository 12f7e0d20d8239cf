// Package config holds runtime settings. Values come from environment variables
// with defaults; main.go overrides them from command-line flags.
package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Renderer names accepted by Config.Renderer
const (
	RendererEbiten = "ebiten"
	RendererTUI    = "tui"
	RendererServer = "server"
)

// Config is the application configuration
type Config struct {
	Renderer string

	// LayoutPath is a facility JSON file; empty uses the embedded facility
	LayoutPath string

	// InventoryCSV seeds the inventory; InventoryDB, when set, persists it in SQLite
	InventoryCSV string
	InventoryDB  string

	Language string

	// Bindings rebinds keys, as comma-separated action=code pairs
	Bindings string

	WindowWidth  int
	WindowHeight int
	SmoothCamera bool

	Port         string
	ReadTimeout  int
	WriteTimeout int

	// PulseInterval is the marker animation frame interval outside Ebiten
	PulseInterval time.Duration
}

var (
	mu      sync.RWMutex
	current *Config
)

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Renderer:      getEnv("STOCKMAP_RENDERER", RendererEbiten),
		LayoutPath:    getEnv("STOCKMAP_LAYOUT", ""),
		InventoryCSV:  getEnv("STOCKMAP_INVENTORY", "data/inventory.csv"),
		InventoryDB:   getEnv("STOCKMAP_DB", ""),
		Language:      getEnv("STOCKMAP_LANG", "en"),
		Bindings:      getEnv("STOCKMAP_BINDINGS", ""),
		WindowWidth:   getEnvAsInt("STOCKMAP_WIDTH", 1280),
		WindowHeight:  getEnvAsInt("STOCKMAP_HEIGHT", 800),
		SmoothCamera:  getEnvAsBool("STOCKMAP_SMOOTH_CAMERA", true),
		Port:          getEnv("PORT", "3000"),
		ReadTimeout:   getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:  getEnvAsInt("WRITE_TIMEOUT", 10),
		PulseInterval: time.Duration(getEnvAsInt("STOCKMAP_PULSE_MS", 16)) * time.Millisecond,
	}
}

// Current returns the active configuration, loading it from the environment on first use
func Current() *Config {
	mu.RLock()
	c := current
	mu.RUnlock()
	if c != nil {
		return c
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = Load()
	}
	return current
}

// Set replaces the active configuration
func Set(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
