package shortpath

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gobwas/glob"
)

// Registry maps shortcut names to absolute paths. It performs no validation, callers are
// responsible for only storing paths which exist. The zero value is not usable, see NewRegistry.
type Registry struct {
	paths map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{paths: make(map[string]string)}
}

// Has returns true iff a shortcut with this name is registered. It doesn't touch the filesystem.
func (r *Registry) Has(name string) bool {
	_, ok := r.paths[name]
	return ok
}

// Get returns the path registered under name, if any.
func (r *Registry) Get(name string) (string, bool) {
	fpath, ok := r.paths[name]
	return fpath, ok
}

// Set registers a shortcut, replacing any existing one with the same name.
func (r *Registry) Set(name, fpath string) {
	r.paths[name] = fpath
}

// Remove deletes a shortcut. Removing a missing shortcut is a no-op.
func (r *Registry) Remove(name string) {
	delete(r.paths, name)
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	return len(r.paths)
}

// Names returns the sorted names of registered shortcuts matching at least one of the glob
// patterns. All names are returned when no pattern is given.
func (r *Registry) Names(patterns ...string) ([]string, error) {
	pred, err := newNamePredicate(patterns)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range slices.Sorted(maps.Keys(r.paths)) {
		if pred.accept(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

type namePredicate []glob.Glob

func newNamePredicate(pats []string) (namePredicate, error) {
	var globs []glob.Glob
	for _, pat := range pats {
		compiled, err := glob.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pat, err)
		}
		globs = append(globs, compiled)
	}
	return namePredicate(globs), nil
}

func (p namePredicate) accept(name string) bool {
	if len(p) == 0 {
		return true
	}
	for _, g := range p {
		if g.Match(name) {
			return true
		}
	}
	return false
}
