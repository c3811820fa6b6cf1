// ABOUTME: YAML catalog file schema and parsing into a validated intent catalog
// ABOUTME: Unknown keys are rejected so typos fail at load time instead of silently matching nothing

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/supportbot-go/internal/intent"
)

// File is the on-disk shape of a catalog.
type File struct {
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description,omitempty"`
	Welcome      string         `yaml:"welcome,omitempty"`
	Notice       string         `yaml:"notice,omitempty"`
	QuickReplies []string       `yaml:"quick_replies,omitempty"`
	Categories   []CategoryFile `yaml:"categories"`
	Fallback     []string       `yaml:"fallback"`
}

// CategoryFile is one category entry in a catalog file.
type CategoryFile struct {
	ID        string   `yaml:"id"`
	Sensitive bool     `yaml:"sensitive,omitempty"`
	Patterns  []string `yaml:"patterns"`
	Responses []string `yaml:"responses"`
}

// Bundle is a loaded catalog plus the presentation data that travels with it.
type Bundle struct {
	Catalog      *intent.Catalog
	Source       string // "builtin:<name>" or a file path
	Description  string
	Welcome      string
	Notice       string // shown alongside replies from sensitive categories
	QuickReplies []string
}

// Name returns the catalog name.
func (b *Bundle) Name() string { return b.Catalog.Name() }

// Parse decodes YAML catalog data. source is used in error messages and
// recorded on the bundle; it also names the catalog when the file omits name.
func Parse(data []byte, source string) (*Bundle, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: empty catalog file", source)
		}
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return f.Build(source)
}

// Build validates the file contents and constructs the bundle.
func (f *File) Build(source string) (*Bundle, error) {
	name := f.Name
	if name == "" {
		name = source
	}

	cats := make([]intent.Category, len(f.Categories))
	for i, c := range f.Categories {
		cats[i] = intent.Category{
			ID:        c.ID,
			Patterns:  c.Patterns,
			Responses: c.Responses,
			Sensitive: c.Sensitive,
		}
	}

	c, err := intent.NewCatalog(name, cats, f.Fallback)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}

	return &Bundle{
		Catalog:      c,
		Source:       source,
		Description:  f.Description,
		Welcome:      f.Welcome,
		Notice:       f.Notice,
		QuickReplies: append([]string(nil), f.QuickReplies...),
	}, nil
}

// LoadFile reads and parses a catalog file from disk.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data, path)
}
