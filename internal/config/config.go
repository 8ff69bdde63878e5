package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level source kinds.
const (
	SourceFile = "file"
	SourceDB   = "db"
)

// Spawn holds all configuration for one player placement run.
type Spawn struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Level selection
	LevelSource string `yaml:"level_source"` // file | db
	LevelDir    string `yaml:"level_dir"`
	Level       string `yaml:"level"`

	// Player template (prefab)
	PlayerName string `yaml:"player_name"`

	// Locator
	WallLayer   string  `yaml:"wall_layer"` // empty = the level's own wall layer
	ZPosition   float64 `yaml:"z_position"`
	ProbeRadius float64 `yaml:"probe_radius"`
	Seed        uint64  `yaml:"seed"` // 0 = random per run

	// Debug output
	Render    bool `yaml:"render"`
	DrawDebug bool `yaml:"draw_debug"`

	// Database (level_source: db)
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSpawn returns Spawn config with sensible defaults.
func DefaultSpawn() Spawn {
	return Spawn{
		LogLevel:    "info",
		LevelSource: SourceFile,
		LevelDir:    "levels",
		Level:       "arena",
		PlayerName:  "Player",
		ZPosition:   -1,
		ProbeRadius: 0.3,
		Render:      true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "floorspawn",
			Password: "floorspawn",
			DBName:   "floorspawn",
			SSLMode:  "disable",
		},
	}
}

// Validate checks values that have no safe fallback.
func (c Spawn) Validate() error {
	switch c.LevelSource {
	case SourceFile, SourceDB:
	default:
		return fmt.Errorf("unknown level_source %q (want %q or %q)", c.LevelSource, SourceFile, SourceDB)
	}
	if c.Level == "" {
		return fmt.Errorf("level is empty")
	}
	if c.PlayerName == "" {
		return fmt.Errorf("player_name is empty")
	}
	if c.ProbeRadius <= 0 {
		return fmt.Errorf("probe_radius must be positive, got %v", c.ProbeRadius)
	}
	return nil
}

// LoadSpawn loads spawn config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSpawn(path string) (Spawn, error) {
	cfg := DefaultSpawn()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
