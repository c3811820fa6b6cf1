// ABOUTME: Catalogs compiled into the binary via go:embed
// ABOUTME: "support" is the storefront assistant; "wellbeing" is the mental-health assistant

package catalog

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed catalogs/*.yaml
var builtinFS embed.FS

// DefaultName is the catalog used when none is configured.
const DefaultName = "wellbeing"

// BuiltinNames lists the embedded catalogs in alphabetical order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("catalogs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads an embedded catalog by name.
func Builtin(name string) (*Bundle, error) {
	data, err := builtinFS.ReadFile(path.Join("catalogs", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown builtin catalog %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data, "builtin:"+name)
}
