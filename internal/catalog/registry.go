// ABOUTME: Catalog resolution by name or path, and concurrent loading of catalog directories
// ABOUTME: Directory loads fan out with errgroup; the first invalid file aborts the load

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/supportbot-go/internal/log"
)

// IsPath reports whether ref names a file rather than a builtin catalog.
func IsPath(ref string) bool {
	return strings.ContainsRune(ref, os.PathSeparator) ||
		strings.ContainsRune(ref, '/') ||
		strings.HasSuffix(ref, ".yaml") ||
		strings.HasSuffix(ref, ".yml")
}

// Resolve loads the catalog named by ref: a builtin name, or a path to a
// YAML file. An empty ref selects DefaultName.
func Resolve(ref string) (*Bundle, error) {
	if ref == "" {
		ref = DefaultName
	}
	if IsPath(ref) {
		log.Debug("catalog: loading file %s", ref)
		return LoadFile(ref)
	}
	log.Debug("catalog: loading builtin %s", ref)
	return Builtin(ref)
}

// LoadDir loads every *.yaml and *.yml file in dir concurrently. Results are
// sorted by catalog name; duplicate names are an error.
func LoadDir(ctx context.Context, dir string) ([]*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	bundles := make([]*Bundle, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := LoadFile(p)
			if err != nil {
				return err
			}
			bundles[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Name() < bundles[j].Name() })
	for i := 1; i < len(bundles); i++ {
		if bundles[i].Name() == bundles[i-1].Name() {
			return nil, fmt.Errorf("duplicate catalog name %q in %s and %s",
				bundles[i].Name(), bundles[i-1].Source, bundles[i].Source)
		}
	}
	log.Debug("catalog: loaded %d catalogs from %s", len(bundles), dir)
	return bundles, nil
}

// Registry indexes bundles by name.
type Registry struct {
	bundles map[string]*Bundle
}

// NewRegistry returns a registry containing every builtin catalog.
func NewRegistry() (*Registry, error) {
	r := &Registry{bundles: make(map[string]*Bundle)}
	for _, name := range BuiltinNames() {
		b, err := Builtin(name)
		if err != nil {
			return nil, err
		}
		r.bundles[name] = b
	}
	return r, nil
}

// AddDir loads a directory of catalogs; entries override builtins of the
// same name.
func (r *Registry) AddDir(ctx context.Context, dir string) error {
	bundles, err := LoadDir(ctx, dir)
	if err != nil {
		return err
	}
	for _, b := range bundles {
		if _, exists := r.bundles[b.Name()]; exists {
			log.Info("catalog: %s overrides %q", b.Source, b.Name())
		}
		r.bundles[b.Name()] = b
	}
	return nil
}

// Get returns a bundle by name, or loads ref as a file path.
func (r *Registry) Get(ref string) (*Bundle, error) {
	if ref == "" {
		ref = DefaultName
	}
	if b, ok := r.bundles[ref]; ok {
		return b, nil
	}
	if IsPath(ref) {
		return LoadFile(ref)
	}
	return nil, fmt.Errorf("unknown catalog %q (have %s)", ref, strings.Join(r.Names(), ", "))
}

// Names lists registered catalog names alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bundles))
	for n := range r.bundles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
