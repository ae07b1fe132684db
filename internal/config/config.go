package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"orbit/internal/chat"
	"orbit/internal/gesture"
	"orbit/internal/layout"
	"orbit/internal/relevance"
	"orbit/internal/visibility"
)

const DefaultPath = "orbit.yaml"

type ProjectConfig struct {
	Project    string            `yaml:"project"`
	Version    int               `yaml:"version"`
	Knowledge  KnowledgeConfig   `yaml:"knowledge"`
	Relevance  relevance.Weights `yaml:"relevance"`
	Visibility visibility.Policy `yaml:"visibility"`
	Layout     layout.Config     `yaml:"layout"`
	Viewport   ViewportConfig    `yaml:"viewport"`
	Gesture    GestureConfig     `yaml:"gesture"`
	Chat       ChatConfig        `yaml:"chat"`
	Log        LogConfig         `yaml:"log"`
}

// KnowledgeConfig says where items come from. Source is a YAML file, a
// markdown directory, or a sqlite:// or postgres:// store; Paths are the
// markdown roots that ingest reads.
type KnowledgeConfig struct {
	Source  string   `yaml:"source"`
	Paths   []string `yaml:"paths"`
	Exclude []string `yaml:"exclude"`
}

type ViewportConfig struct {
	ZoomMin   float64 `yaml:"zoom_min"`
	ZoomMax   float64 `yaml:"zoom_max"`
	WheelStep float64 `yaml:"wheel_step"`
}

type GestureConfig struct {
	TapMaxMS     int     `yaml:"tap_max_ms"`
	TapMaxMovePX float64 `yaml:"tap_max_move_px"`
}

type ChatConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	SystemPrompt  string `yaml:"system_prompt"`
	FallbackReply string `yaml:"fallback_reply"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
)

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return ParseProjectConfig(data)
}

func ParseProjectConfig(data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Relevance == (relevance.Weights{}) {
		cfg.Relevance = relevance.DefaultWeights
	}
	if cfg.Visibility == (visibility.Policy{}) {
		cfg.Visibility = visibility.DefaultPolicy
	}

	l := &cfg.Layout
	d := layout.DefaultConfig
	setDefault(&l.TileWidth, d.TileWidth)
	setDefault(&l.TileHeight, d.TileHeight)
	setDefault(&l.TileSpacing, d.TileSpacing)
	setDefault(&l.PriorityRadius, d.PriorityRadius)
	setDefault(&l.RingSpacing, d.RingSpacing)

	g := gesture.DefaultConfig
	setDefault(&cfg.Viewport.ZoomMin, g.ZoomMin)
	setDefault(&cfg.Viewport.ZoomMax, g.ZoomMax)
	setDefault(&cfg.Viewport.WheelStep, g.WheelStep)
	if cfg.Gesture.TapMaxMS == 0 {
		cfg.Gesture.TapMaxMS = int(g.TapMaxDuration / time.Millisecond)
	}
	setDefault(&cfg.Gesture.TapMaxMovePX, g.TapMaxMove)

	if cfg.Chat.Provider == "" {
		cfg.Chat.Provider = ProviderNone
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = chat.DefaultGeminiModel
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Chat.FallbackReply == "" {
		cfg.Chat.FallbackReply = chat.DefaultFallbackReply
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	l := cfg.Layout
	if l.TileWidth <= 0 || l.TileHeight <= 0 || l.TileSpacing < 0 {
		return fmt.Errorf("layout tile sizes must be positive")
	}
	if l.PriorityRadius <= 0 || l.RingSpacing <= 0 {
		return fmt.Errorf("layout radii must be positive")
	}
	if l.TileWidth+l.TileSpacing > 2*math.Pi*l.FirstRingRadius() {
		return fmt.Errorf("layout tile width %v plus spacing %v does not fit on the first ring", l.TileWidth, l.TileSpacing)
	}
	if l.Jitter < 0 {
		return fmt.Errorf("layout jitter cannot be negative")
	}

	if cfg.Visibility.Floor < 0 || cfg.Visibility.Floor > cfg.Visibility.Ceiling {
		return fmt.Errorf("visibility floor %d must be between 0 and ceiling %d", cfg.Visibility.Floor, cfg.Visibility.Ceiling)
	}

	v := cfg.Viewport
	if v.ZoomMin <= 0 || v.ZoomMin >= v.ZoomMax {
		return fmt.Errorf("viewport zoom range [%v, %v] is invalid", v.ZoomMin, v.ZoomMax)
	}
	if v.WheelStep <= 0 {
		return fmt.Errorf("viewport wheel step must be positive")
	}
	if cfg.Gesture.TapMaxMS <= 0 || cfg.Gesture.TapMaxMovePX <= 0 {
		return fmt.Errorf("gesture tap thresholds must be positive")
	}

	switch strings.ToLower(cfg.Chat.Provider) {
	case ProviderNone, ProviderGemini:
	default:
		return fmt.Errorf("unknown chat provider: %s", cfg.Chat.Provider)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", cfg.Log.Level)
	}

	return nil
}

// GestureOptions combines the viewport and gesture sections into controller
// settings.
func (c *ProjectConfig) GestureOptions() gesture.Config {
	return gesture.Config{
		TapMaxDuration: time.Duration(c.Gesture.TapMaxMS) * time.Millisecond,
		TapMaxMove:     c.Gesture.TapMaxMovePX,
		ZoomMin:        c.Viewport.ZoomMin,
		ZoomMax:        c.Viewport.ZoomMax,
		WheelStep:      c.Viewport.WheelStep,
	}
}

// APIKey reads the chat key from the configured environment variable.
func (c ChatConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}
