// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: ${VAR} resolves from the settings env map first, then the process environment

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the path-like string fields of
// Settings. Values in s.Env take precedence over the process environment.
func ResolveEnvVars(s *Settings) {
	lookup := func(name string) string {
		if v, ok := s.Env[name]; ok {
			return v
		}
		return os.Getenv(name)
	}
	s.Catalog = expandWith(s.Catalog, lookup)
	s.CatalogDir = expandWith(s.CatalogDir, lookup)
	s.Welcome = expandWith(s.Welcome, lookup)
	s.Transcript = expandWith(s.Transcript, lookup)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	return expandWith(s, os.Getenv)
}

func expandWith(s string, lookup func(string) string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return lookup(envVarPattern.FindStringSubmatch(match)[1])
	})
}
