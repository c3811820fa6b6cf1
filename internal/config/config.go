// ABOUTME: Settings loading with global + project config merge and CLI overrides
// ABOUTME: JSON-based configuration using encoding/json; later layers override earlier ones

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mauromedda/supportbot-go/internal/log"
)

// Output formats accepted by print mode.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatStreamJSON = "stream-json"
)

// DefaultTypingDelay is the base pause before a reply appears in the chat.
// A random jitter of up to TypingJitter is added on top.
const (
	DefaultTypingDelay = 1500 * time.Millisecond
	TypingJitter       = 1000 * time.Millisecond
)

// Settings holds the merged configuration.
type Settings struct {
	Catalog      string            `json:"catalog,omitempty"`
	CatalogDir   string            `json:"catalog_dir,omitempty"`
	Welcome      string            `json:"welcome,omitempty"`
	Seed         uint64            `json:"seed,omitempty"`
	TypingDelay  *int              `json:"typing_delay_ms,omitempty"`
	LogLevel     string            `json:"log_level,omitempty"`
	OutputFormat string            `json:"output_format,omitempty"`
	Watch        bool              `json:"watch,omitempty"`
	Transcript   string            `json:"transcript,omitempty"`
	Env          map[string]string `json:"env,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return LoadFrom(GlobalSettingsFile(), ProjectSettingsFile(projectRoot))
}

// LoadFrom merges the settings files in order; missing files are skipped.
func LoadFrom(paths ...string) (*Settings, error) {
	result := &Settings{}
	for _, p := range paths {
		s, err := loadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		log.Debug("config: loaded %s", p)
		result = merge(result, s)
	}
	ResolveEnvVars(result)
	return result, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Override applies CLI-level settings on top of s. Non-zero fields win.
func (s *Settings) Override(o *Settings) *Settings {
	return merge(s, o)
}

// merge overlays top onto base. Non-zero top values override base values.
func merge(base, top *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if top == nil {
		return base
	}

	result := *base

	if top.Catalog != "" {
		result.Catalog = top.Catalog
	}
	if top.CatalogDir != "" {
		result.CatalogDir = top.CatalogDir
	}
	if top.Welcome != "" {
		result.Welcome = top.Welcome
	}
	if top.Seed != 0 {
		result.Seed = top.Seed
	}
	if top.TypingDelay != nil {
		d := *top.TypingDelay
		result.TypingDelay = &d
	}
	if top.LogLevel != "" {
		result.LogLevel = top.LogLevel
	}
	if top.OutputFormat != "" {
		result.OutputFormat = top.OutputFormat
	}
	if top.Watch {
		result.Watch = true
	}
	if top.Transcript != "" {
		result.Transcript = top.Transcript
	}

	if len(base.Env) > 0 || len(top.Env) > 0 {
		result.Env = make(map[string]string, len(base.Env)+len(top.Env))
		for k, v := range base.Env {
			result.Env[k] = v
		}
		for k, v := range top.Env {
			result.Env[k] = v
		}
	}

	return &result
}

// Delay returns the configured base typing delay. A zero value disables the
// pause entirely.
func (s *Settings) Delay() time.Duration {
	if s.TypingDelay == nil {
		return DefaultTypingDelay
	}
	return time.Duration(*s.TypingDelay) * time.Millisecond
}

// Format returns the print-mode output format, defaulting to text.
func (s *Settings) Format() string {
	if s.OutputFormat == "" {
		return FormatText
	}
	return s.OutputFormat
}

// Validate reports settings that cannot be applied.
func (s *Settings) Validate() error {
	var errs []error
	switch s.OutputFormat {
	case "", FormatText, FormatJSON, FormatStreamJSON:
	default:
		errs = append(errs, fmt.Errorf("output_format: unknown format %q (want text, json or stream-json)", s.OutputFormat))
	}
	if s.LogLevel != "" {
		if _, ok := log.ParseLevel(s.LogLevel); !ok {
			errs = append(errs, fmt.Errorf("log_level: unknown level %q", s.LogLevel))
		}
	}
	if s.TypingDelay != nil && *s.TypingDelay < 0 {
		errs = append(errs, fmt.Errorf("typing_delay_ms: must be >= 0, got %d", *s.TypingDelay))
	}
	return errors.Join(errs...)
}
