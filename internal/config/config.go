package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Minimum map size every builder can work with
const (
	MinWidth  = 20
	MinHeight = 20
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of the level generator and its tools.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// GeneratorConfig controls map size and retry behaviour.
type GeneratorConfig struct {
	// Width and Height of every generated map in tiles.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Depth used when the caller does not ask for one.
	Depth int `yaml:"depth"`

	// MaxAttempts is how many seeds are tried before giving up on a level.
	MaxAttempts int `yaml:"max_attempts"`

	// History records a snapshot after each carving step.
	// Costs memory; only the viewer needs it.
	History bool `yaml:"history"`
}

// ArchiveConfig selects where generated levels are stored.
type ArchiveConfig struct {
	Enabled bool `yaml:"enabled"`

	// Driver is "sqlite" or "postgres"
	Driver string `yaml:"driver"`

	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`

	// Connection pool settings
	MaxOpenConns           int `yaml:"max_open_conns"`
	MaxIdleConns           int `yaml:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `yaml:"conn_max_lifetime_seconds"`
}

// ViewerConfig holds settings for the websocket level viewer.
type ViewerConfig struct {
	Address string `yaml:"address"`

	// FrameDelayMS pauses between history frames so the carving can be watched.
	FrameDelayMS int `yaml:"frame_delay_ms"`

	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`
}

// ConnectionsConfig holds connection limit settings.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent connections allowed from a single IP address.
	// 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip"`

	// MaxTotal is the maximum total concurrent connections to the viewer.
	// 0 means unlimited.
	MaxTotal int `yaml:"max_total"`

	// TrustedProxies lists proxy addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers are believed.
	// Empty means those headers are ignored.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns a Config with the standard 80x50 map and a local SQLite archive.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Width:       80,
			Height:      50,
			Depth:       1,
			MaxAttempts: 10,
		},
		Archive: ArchiveConfig{
			Driver:     "sqlite",
			SQLitePath: "data/levels.db",
			Postgres: PostgresConfig{
				Host:                   "localhost",
				Port:                   5432,
				SSLMode:                "disable",
				MaxOpenConns:           25,
				MaxIdleConns:           5,
				ConnMaxLifetimeSeconds: 300,
			},
		},
		Viewer: ViewerConfig{
			Address:      ":8080",
			FrameDelayMS: 50,
			WebSocket: WebSocketConfig{
				AllowedOrigins: []string{}, // Same-origin only by default
				MaxMessageSize: 4096,
			},
			Connections: ConnectionsConfig{
				MaxPerIP: 3,
				MaxTotal: 50,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// Validate rejects settings no builder can work with.
func (c *Config) Validate() error {
	g := c.Generator
	if g.Width < MinWidth || g.Height < MinHeight {
		return fmt.Errorf("%w: map size %dx%d is below %dx%d", ErrInvalidConfig, g.Width, g.Height, MinWidth, MinHeight)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1", ErrInvalidConfig)
	}
	switch c.Archive.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: unknown archive driver %q", ErrInvalidConfig, c.Archive.Driver)
	}
	for _, entry := range c.Viewer.Connections.TrustedProxies {
		if _, err := parseProxy(entry); err != nil {
			return fmt.Errorf("%w: trusted proxy %q: %v", ErrInvalidConfig, entry, err)
		}
	}
	return nil
}

// IsTrustedProxy reports whether ip matches one of the TrustedProxies.
func (c *ConnectionsConfig) IsTrustedProxy(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, entry := range c.TrustedProxies {
		prefix, err := parseProxy(entry)
		if err == nil && prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseProxy accepts "10.0.0.0/8" or a bare address
func parseProxy(entry string) (netip.Prefix, error) {
	if strings.Contains(entry, "/") {
		return netip.ParsePrefix(entry)
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	// If no origins configured, enforce same-origin policy
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		// Wildcard allows all origins
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	// "http://localhost:3000" -> "localhost:3000"
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
