package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration shared by every command.
type Config struct {
	Window  WindowConfig
	Garden  GardenConfig
	Script  ScriptConfig
	Audio   AudioConfig
	Render  RenderConfig
	Logging LoggingConfig

	// EnvFile reports whether a .env file was loaded.
	EnvFile bool
}

// WindowConfig sizes the window, or the headless canvas for sprout-render.
type WindowConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// GardenConfig feeds sprout.Config.
type GardenConfig struct {
	MaxTrees int
	// Seed of the random source. Zero seeds from the clock.
	Seed  uint64
	Debug bool
}

// ScriptConfig points at an optional step script and its screenshot dir.
type ScriptConfig struct {
	Path          string
	ScreenshotDir string
}

// AudioConfig controls the pour and chime sounds.
type AudioConfig struct {
	Enabled bool
	Volume  float64
}

// RenderConfig holds sprout-render defaults.
type RenderConfig struct {
	Frames int
	Out    string
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and the process environment, then validates
// the result.
func Load() (*Config, error) {
	envFile := godotenv.Load() == nil

	config, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	config.EnvFile = envFile

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func load() (*Config, error) {
	var p parser
	config := &Config{
		Window: WindowConfig{
			Title:   GetEnv("SPROUT_TITLE", "sprout"),
			Width:   p.getInt("SPROUT_WIDTH", 800),
			Height:  p.getInt("SPROUT_HEIGHT", 450),
			ShowFPS: p.getBool("SPROUT_SHOW_FPS", false),
		},
		Garden: GardenConfig{
			MaxTrees: p.getInt("SPROUT_MAX_TREES", 100),
			Seed:     p.getUint("SPROUT_SEED", 0),
			Debug:    p.getBool("SPROUT_DEBUG", false),
		},
		Script: ScriptConfig{
			Path:          GetEnv("SPROUT_SCRIPT", ""),
			ScreenshotDir: GetEnv("SPROUT_SCREENSHOT_DIR", "screenshots"),
		},
		Audio: AudioConfig{
			Enabled: p.getBool("SPROUT_AUDIO", true),
			Volume:  p.getFloat("SPROUT_VOLUME", 0.5),
		},
		Render: RenderConfig{
			Frames: p.getInt("SPROUT_RENDER_FRAMES", 1800),
			Out:    GetEnv("SPROUT_RENDER_OUT", "sprout.png"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(GetEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(GetEnv("LOG_FORMAT", "text")),
		},
	}
	if p.err != nil {
		return nil, p.err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("SPROUT_WIDTH and SPROUT_HEIGHT must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Garden.MaxTrees < 1 {
		return fmt.Errorf("SPROUT_MAX_TREES must be at least 1, got %d", c.Garden.MaxTrees)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}

	if !(c.Audio.Volume >= 0 && c.Audio.Volume <= 1) {
		return fmt.Errorf("SPROUT_VOLUME must be within [0, 1], got %v", c.Audio.Volume)
	}

	if c.Render.Frames < 1 {
		return fmt.Errorf("SPROUT_RENDER_FRAMES must be at least 1, got %d", c.Render.Frames)
	}

	if c.Render.Out == "" {
		return fmt.Errorf("SPROUT_RENDER_OUT is required")
	}

	return nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// parser reads typed variables and keeps the first parse error.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s=%q: %w", key, value, err)
	}
}

func (p *parser) getInt(key string, fallback int) int {
	s := GetEnv(key, "")
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key, s, err)
		return fallback
	}
	return v
}

func (p *parser) getUint(key string, fallback uint64) uint64 {
	s := GetEnv(key, "")
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		p.fail(key, s, err)
		return fallback
	}
	return v
}

func (p *parser) getFloat(key string, fallback float64) float64 {
	s := GetEnv(key, "")
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(key, s, err)
		return fallback
	}
	return v
}

func (p *parser) getBool(key string, fallback bool) bool {
	s := GetEnv(key, "")
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(key, s, err)
		return fallback
	}
	return v
}
