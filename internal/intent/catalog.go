// ABOUTME: Intent catalog types and load-time validation
// ABOUTME: A Catalog is an ordered, immutable set of categories plus a fallback response pool

package intent

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidCatalog is matched by every ConfigError via errors.Is.
var ErrInvalidCatalog = errors.New("invalid catalog")

// ConfigError describes a catalog that cannot be used. It is only ever
// produced at construction time; matching never fails.
type ConfigError struct {
	Catalog  string // catalog name
	Category string // category ID; empty for catalog-level problems
	Field    string // "id", "patterns", "responses", "fallback"
	Reason   string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("catalog")
	if e.Catalog != "" {
		fmt.Fprintf(&b, " %q", e.Catalog)
	}
	if e.Category != "" {
		fmt.Fprintf(&b, " category %q", e.Category)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Field, e.Reason)
	return b.String()
}

// Is reports whether target is ErrInvalidCatalog.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidCatalog
}

// Category is a named bucket of example phrases and candidate replies.
type Category struct {
	ID        string
	Patterns  []string
	Responses []string

	// Sensitive marks categories a host may want to treat specially (e.g.
	// crisis language). It does not influence matching.
	Sensitive bool
}

func (c Category) clone() Category {
	c.Patterns = slices.Clone(c.Patterns)
	c.Responses = slices.Clone(c.Responses)
	return c
}

// Catalog is an ordered list of categories and a fallback pool.
// Order is significant: earlier categories win exact-match and fuzzy ties.
type Catalog struct {
	name       string
	categories []Category
	fallback   []string
}

// NewCatalog validates and copies its inputs. All problems found are
// returned together, each as a *ConfigError.
func NewCatalog(name string, categories []Category, fallback []string) (*Catalog, error) {
	var errs []error
	fail := func(category, field, reason string) {
		errs = append(errs, &ConfigError{Catalog: name, Category: category, Field: field, Reason: reason})
	}

	if len(categories) == 0 {
		fail("", "categories", "no categories defined")
	}

	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		id := c.ID
		if strings.TrimSpace(id) == "" {
			id = fmt.Sprintf("#%d", i)
			fail(id, "id", "blank id")
		} else if seen[id] {
			fail(id, "id", "duplicate id")
		}
		seen[id] = true

		if len(c.Patterns) == 0 {
			fail(id, "patterns", "empty pattern list")
		}
		for j, p := range c.Patterns {
			// A blank pattern is a substring of every message.
			if strings.TrimSpace(p) == "" {
				fail(id, "patterns", fmt.Sprintf("pattern %d is blank", j))
			}
		}

		if len(c.Responses) == 0 {
			fail(id, "responses", "empty response list")
		}
		for j, r := range c.Responses {
			if strings.TrimSpace(r) == "" {
				fail(id, "responses", fmt.Sprintf("response %d is blank", j))
			}
		}
	}

	if len(fallback) == 0 {
		fail("", "fallback", "empty fallback pool")
	}
	for j, r := range fallback {
		if strings.TrimSpace(r) == "" {
			fail("", "fallback", fmt.Sprintf("response %d is blank", j))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	cats := make([]Category, len(categories))
	for i, c := range categories {
		cats[i] = c.clone()
	}
	return &Catalog{
		name:       name,
		categories: cats,
		fallback:   slices.Clone(fallback),
	}, nil
}

// MustCatalog is NewCatalog that panics on error. Intended for tests and
// package-level literals.
func MustCatalog(name string, categories []Category, fallback []string) *Catalog {
	c, err := NewCatalog(name, categories, fallback)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }

// Categories returns a copy of the categories in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.clone()
	}
	return out
}

// Category returns a copy of the category with the given ID.
func (c *Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat.clone(), true
		}
	}
	return Category{}, false
}

// Fallback returns a copy of the fallback pool.
func (c *Catalog) Fallback() []string {
	return slices.Clone(c.fallback)
}
