package redline

import "fmt"

// Config holds user-facing settings for the command line tools.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Render  RenderConfig  `koanf:"render"`
	Session SessionConfig `koanf:"session"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // console or json
}

// RenderConfig configures how documents are shown.
type RenderConfig struct {
	Theme            string `koanf:"theme"`             // dark or light
	Highlight        bool   `koanf:"highlight"`         // Syntax highlight markdown output
	PreserveComments bool   `koanf:"preserve_comments"` // Keep {>>comments<<} as HTML comments in clean output
}

// SessionConfig locates review sessions on disk.
type SessionConfig struct {
	Dir string `koanf:"dir"` // Empty means the platform default
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "warn", Format: "console"},
		Render: RenderConfig{Theme: "dark", PreserveComments: true},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Render.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("render.theme: unknown theme %q", c.Render.Theme)
	}
	return nil
}
