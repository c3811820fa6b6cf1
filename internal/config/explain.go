// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by the --explain flag to show merged settings and where they came from

package config

import (
	"fmt"
	"sort"
	"strings"
)

// Explain renders a human-readable summary of the effective settings.
// Unset values show their defaults.
func Explain(s *Settings) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== Catalog ===\n")
	fmt.Fprintf(&b, "  Catalog:     %s\n", orDefault(s.Catalog, "(default)"))
	if s.CatalogDir != "" {
		fmt.Fprintf(&b, "  CatalogDir:  %s\n", s.CatalogDir)
	}
	if s.Watch {
		b.WriteString("  Watch:       true\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Chat ===\n")
	if s.Welcome != "" {
		fmt.Fprintf(&b, "  Welcome:     %s\n", s.Welcome)
	}
	if s.Seed != 0 {
		fmt.Fprintf(&b, "  Seed:        %d\n", s.Seed)
	} else {
		b.WriteString("  Seed:        (time)\n")
	}
	if d := s.Delay(); d == 0 {
		b.WriteString("  TypingDelay: off\n")
	} else {
		fmt.Fprintf(&b, "  TypingDelay: %s + up to %s\n", d, TypingJitter)
	}
	fmt.Fprintf(&b, "  Format:      %s\n", s.Format())
	if s.Transcript != "" {
		fmt.Fprintf(&b, "  Transcript:  %s\n", s.Transcript)
	}
	b.WriteString("\n")

	b.WriteString("=== Logging ===\n")
	fmt.Fprintf(&b, "  Level:       %s\n", orDefault(s.LogLevel, "info"))
	b.WriteString("\n")

	if len(s.Env) > 0 {
		b.WriteString("=== Env ===\n")
		keys := make([]string, 0, len(s.Env))
		for k := range s.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s=%s\n", k, s.Env[k])
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
