// ABOUTME: Tests for config loading, merging, overrides and validation
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func writeJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{Catalog: "support", Seed: 7, LogLevel: "warn"}
	project := &Settings{Catalog: "wellbeing", TypingDelay: intPtr(0)}

	result := merge(global, project)

	want := &Settings{Catalog: "wellbeing", Seed: 7, LogLevel: "warn", TypingDelay: intPtr(0)}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	t.Parallel()

	global := &Settings{Env: map[string]string{"A": "1"}}
	project := &Settings{Env: map[string]string{"B": "2"}, TypingDelay: intPtr(10)}

	result := merge(global, project)
	result.Env["C"] = "3"
	*result.TypingDelay = 99

	if len(global.Env) != 1 || len(project.Env) != 1 {
		t.Errorf("merge mutated input env maps: %v %v", global.Env, project.Env)
	}
	if *project.TypingDelay != 10 {
		t.Errorf("merge aliased TypingDelay: %d", *project.TypingDelay)
	}
}

func TestMerge_EnvMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{Env: map[string]string{"A": "1", "B": "2"}}
	project := &Settings{Env: map[string]string{"B": "override", "C": "3"}}

	result := merge(global, project)

	want := map[string]string{"A": "1", "B": "override", "C": "3"}
	if diff := cmp.Diff(want, result.Env); diff != "" {
		t.Errorf("Env mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/settings.json")
	if !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil default settings")
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	t.Parallel()

	path := writeJSON(t, t.TempDir(), "settings.json", `{not json`)
	if _, err := loadFile(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFrom_Layers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	global := writeJSON(t, dir, "global.json", `{"catalog":"support","seed":3,"typing_delay_ms":800}`)
	project := writeJSON(t, dir, "project.json", `{"catalog":"wellbeing","output_format":"json"}`)

	s, err := LoadFrom(global, filepath.Join(dir, "missing.json"), project)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	want := &Settings{Catalog: "wellbeing", Seed: 3, TypingDelay: intPtr(800), OutputFormat: "json"}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("LoadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_ParseErrorSurfaces(t *testing.T) {
	t.Parallel()

	path := writeJSON(t, t.TempDir(), "bad.json", `{"seed":"not a number"}`)
	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("LoadFrom() error = %v; want parse error naming the file", err)
	}
}

func TestLoad_ProjectRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(ProjectDir(root), 0o700); err != nil {
		t.Fatal(err)
	}
	writeJSON(t, ProjectDir(root), "settings.json", `{"catalog_dir":"./catalogs"}`)

	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.CatalogDir != "./catalogs" {
		t.Errorf("CatalogDir = %q; want ./catalogs", s.CatalogDir)
	}
}

func TestOverride(t *testing.T) {
	t.Parallel()

	base := &Settings{Catalog: "support", TypingDelay: intPtr(500)}
	got := base.Override(&Settings{TypingDelay: intPtr(0), Watch: true})

	if got.Catalog != "support" || got.Delay() != 0 || !got.Watch {
		t.Errorf("Override() = %+v", got)
	}
	if base.Delay() != 500*time.Millisecond {
		t.Error("Override() mutated the receiver")
	}
}

func TestDelayAndFormatDefaults(t *testing.T) {
	t.Parallel()

	var s Settings
	if s.Delay() != DefaultTypingDelay {
		t.Errorf("Delay() = %v; want %v", s.Delay(), DefaultTypingDelay)
	}
	if s.Format() != FormatText {
		t.Errorf("Format() = %q; want %q", s.Format(), FormatText)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Settings
		wantErr string
	}{
		{"zero value", Settings{}, ""},
		{"json format", Settings{OutputFormat: "json", LogLevel: "debug"}, ""},
		{"stream format", Settings{OutputFormat: "stream-json"}, ""},
		{"bad format", Settings{OutputFormat: "xml"}, "output_format"},
		{"bad level", Settings{LogLevel: "loud"}, "log_level"},
		{"negative delay", Settings{TypingDelay: intPtr(-1)}, "typing_delay_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v; want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := ProjectSettingsFile("/proj"); got != filepath.Join("/proj", ".supportbot", "settings.json") {
		t.Errorf("ProjectSettingsFile() = %q", got)
	}
	dirs := CatalogDirs("/proj")
	if len(dirs) != 2 || dirs[1] != filepath.Join("/proj", ".supportbot", "catalogs") {
		t.Errorf("CatalogDirs() = %v", dirs)
	}
}
