package ability

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry holds all loaded ability definitions indexed by ID. It is read-only
// after load and safe for concurrent lookups.
type Registry struct {
	abilities map[string]*Definition
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal index is initialised.
func NewRegistry() *Registry {
	return &Registry{abilities: make(map[string]*Definition)}
}

// Register adds d to the registry.
//
// Precondition: d must not be nil and must have passed Validate.
// Postcondition: Get(d.ID) returns d; returns error if d.ID already registered.
func (r *Registry) Register(d *Definition) error {
	if _, exists := r.abilities[d.ID]; exists {
		return fmt.Errorf("ability: Registry.Register: ability ID %q already registered", d.ID)
	}
	r.abilities[d.ID] = d
	return nil
}

// Get returns the Definition for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.abilities[id]
	return d, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.abilities[id]
	return ok
}

// Len returns the number of registered abilities.
func (r *Registry) Len() int {
	return len(r.abilities)
}

// All returns every registered Definition sorted by ID.
//
// Postcondition: len(result) == Len(); result is sorted ascending by ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.abilities))
	for _, d := range r.abilities {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindByElement returns all abilities of the given element, sorted by ID.
func (r *Registry) FindByElement(elem string) []*Definition {
	var out []*Definition
	for _, d := range r.abilities {
		if d.Element == elem {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadRegistry reads all *.yaml files in dir into a new Registry. Malformed or
// invalid files are skipped with a warning; the registry stays usable with
// whatever parsed successfully. Only an unreadable directory is a hard error.
//
// Precondition: dir must be a readable directory; logger must be non-nil.
// Postcondition: Returns a Registry holding every valid definition in dir.
func LoadRegistry(dir string, logger *zap.Logger) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading abilities dir %q: %w", dir, err)
	}

	r := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable ability file",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		d, err := ParseDefinition(data)
		if err != nil {
			logger.Warn("skipping malformed ability definition",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if err := r.Register(d); err != nil {
			logger.Warn("skipping duplicate ability definition",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
	return r, nil
}
