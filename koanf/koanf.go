// Package koanf loads redline configuration from a YAML file and the
// environment.
package koanf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/redline"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "REDLINE_"

const maxConfigFileSize = 1024 * 1024 // 1MB

// DefaultPath returns ~/.config/redline/config.yaml, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "redline", "config.yaml")
}

// Load reads configuration with the following precedence (highest first):
//
//  1. Environment variables (REDLINE_LOG_LEVEL, REDLINE_RENDER_THEME, ...)
//  2. The YAML file at path; a missing file is skipped
//  3. redline.DefaultConfig
//
// Environment variables map to keys by splitting on the first underscore
// after the prefix:
//
//	REDLINE_LOG_LEVEL              -> log.level
//	REDLINE_RENDER_PRESERVE_COMMENTS -> render.preserve_comments
func Load(path string) (redline.Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return redline.Config{}, err
		}
		if content != nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return redline.Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return redline.Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := redline.DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return redline.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return redline.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readConfigFile returns nil content when path does not exist.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

// envKey maps REDLINE_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, found := strings.Cut(lower, "_")
	if !found {
		return lower
	}
	return section + "." + field
}
