// Package shortpath resolves logical path references into absolute filesystem paths.
//
// A Resolver is anchored to a root directory, either provided explicitly or discovered by walking
// up from the working directory. Paths can then be referred to relative to this root, or through
// named shortcuts:
//
//	r, err := shortpath.New(shortpath.WithRoot("/srv/app"))
//	r.Register("tests/spec", "spec")
//	r.Resolve("spec/path_test.go") // "/srv/app/tests/spec/path_test.go"
//
// Resolvers are not safe for concurrent mutation. Callers sharing one across goroutines must
// serialize calls to Register and Remove with any other call.
package shortpath

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mtth/shortpath/internal/except"
)

var (
	// ErrNotDirectory is returned by Sub when the path doesn't point to a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrInvalidName is returned when registering a shortcut with an empty name.
	ErrInvalidName = errors.New("invalid shortcut name")
)

// Resolver resolves paths relative to a root directory and a table of shortcuts.
type Resolver struct {
	root      string
	delimiter rune
	mode      Mode
	locator   Locator
	shortcuts *Registry

	// Shortcuts to register during construction.
	initial map[string]string
}

// New creates a new resolver. The root directory is the one passed via WithRoot when it is an
// existing directory, otherwise it is discovered using the resolver's Locator. Root discovery never
// fails, the only possible errors come from shortcuts passed via WithShortcuts.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		delimiter: defaultDelimiter(),
		locator:   defaultLocator,
		shortcuts: NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.root = r.chooseRoot(r.root)

	initial := r.initial
	r.initial = nil
	var merr *multierror.Error
	for _, name := range slices.Sorted(maps.Keys(initial)) {
		if _, err := r.Register(initial[name], name); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) chooseRoot(dir string) string {
	if dir != "" {
		if isDir(dir) {
			return absolute(dir)
		}
		slog.Debug("Root is not a directory, locating one.", except.LogDataAttrs(slog.String("root", dir)))
	}
	located := absolute(r.locator.Locate())
	slog.Debug("Located root directory.", except.LogDataAttrs(slog.String("root", located)))
	return located
}

// Root returns the resolver's absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Delimiter returns the character used to split caller-supplied paths.
func (r *Resolver) Delimiter() rune {
	return r.delimiter
}

// Resolve returns the absolute path matching the input, which may be a registered shortcut, an
// existing path (absolute or relative to the root), or a path relative to a registered shortcut.
// An empty input returns the root directory. If nothing matches, the returned error is a
// *NotFoundError holding the input.
func (r *Resolver) Resolve(fpath string) (string, error) {
	if fpath == "" {
		return r.root, nil
	}
	p := r.normalize(fpath)
	if stored, ok := r.shortcuts.Get(p); ok {
		return stored, nil
	}
	if valid, ok := r.validExisting(p); ok {
		return valid, nil
	}
	if composed, ok := r.compose(p); ok {
		return composed, nil
	}
	return "", notFound(fpath)
}

// Register validates a path and stores it under the shortcut name. If name is empty, the path
// itself is used as name. Only paths which exist (absolutely or relative to the root) can be
// registered, paths relative to other shortcuts are rejected. The resolver is returned to allow
// chaining calls.
func (r *Resolver) Register(fpath, name string) (*Resolver, error) {
	p := r.normalize(fpath)
	key := p
	if name != "" {
		key = r.normalize(name)
	}
	if key == "" {
		return r, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	valid, ok := r.validExisting(p)
	if !ok {
		return r, notFound(p)
	}
	r.shortcuts.Set(key, valid)
	slog.Debug("Registered shortcut.", except.LogDataAttrs(slog.String("name", key), slog.String("path", valid)))
	return r, nil
}

// Real is similar to Resolve but returns the canonical path, with symlinks and relative elements
// resolved. This requires the target to exist at call time: a path registered earlier may have
// been deleted since, in which case the *NotFoundError is marked as stale.
func (r *Resolver) Real(fpath string) (string, error) {
	resolved, err := r.Resolve(fpath)
	if err != nil {
		return "", err
	}
	return canonicalize(fpath, resolved)
}

// Has returns true iff the shortcut is registered. It doesn't check the filesystem.
func (r *Resolver) Has(name string) bool {
	return r.shortcuts.Has(r.normalize(name))
}

// Exists returns true if the path exists, either absolutely or relative to the root. Shortcuts are
// not consulted.
func (r *Resolver) Exists(fpath string) bool {
	_, ok := r.validExisting(r.normalize(fpath))
	return ok
}

// Remove unregisters a shortcut. It is a no-op if the shortcut doesn't exist.
func (r *Resolver) Remove(name string) *Resolver {
	r.shortcuts.Remove(r.normalize(name))
	return r
}

// Shortcuts returns the sorted names of registered shortcuts matching any of the glob patterns, or
// all names if no pattern is given.
func (r *Resolver) Shortcuts(patterns ...string) ([]string, error) {
	return r.shortcuts.Names(patterns...)
}

// Mode returns the resolver's current accessor mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// DefaultToReal returns true iff accessors return canonical paths.
func (r *Resolver) DefaultToReal() bool {
	return r.mode == ModeReal
}

// SetDefaultToReal sets whether accessors return canonical paths.
func (r *Resolver) SetDefaultToReal(enabled bool) *Resolver {
	r.mode = modeFor(enabled)
	return r
}

// ToggleDefaultToReal inverts the accessor mode.
func (r *Resolver) ToggleDefaultToReal() *Resolver {
	return r.SetDefaultToReal(!r.DefaultToReal())
}

// Sub returns a new resolver rooted at the canonical path of the input, which must be a
// directory. The new resolver shares this resolver's delimiter, mode and locator but none of its
// shortcuts.
func (r *Resolver) Sub(fpath string) (*Resolver, error) {
	dir, err := r.Real(fpath)
	if err != nil {
		return nil, err
	}
	if !isDir(dir) {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return New(WithRoot(dir), WithDelimiter(r.delimiter), WithMode(r.mode), WithLocator(r.locator))
}

// normalize replaces the delimiter with the platform's separator.
func (r *Resolver) normalize(s string) string {
	if r.delimiter == filepath.Separator {
		return s
	}
	return strings.ReplaceAll(s, string(r.delimiter), string(filepath.Separator))
}

// validExisting returns the candidate if it exists, otherwise the candidate joined to the root if
// that exists. Relative candidates found from the working directory are made absolute.
func (r *Resolver) validExisting(candidate string) (string, bool) {
	if pathExists(candidate) {
		return absolute(candidate), true
	}
	if rooted := filepath.Join(r.root, candidate); pathExists(rooted) {
		return rooted, true
	}
	return "", false
}

// compose resolves a path relative to a shortcut. Segments are accumulated from the left and the
// first (shortest) registered prefix is used, even if the remainder doesn't exist under it. Stored
// paths are absolute so the composed path is never looked up under the root.
func (r *Resolver) compose(p string) (string, bool) {
	sep := string(filepath.Separator)
	if !strings.Contains(p, sep) {
		return "", false
	}
	segments := strings.Split(p, sep)
	var key string
	for i, segment := range segments {
		if i > 0 {
			key += sep
		}
		key += segment
		stored, ok := r.shortcuts.Get(key)
		if !ok {
			continue
		}
		composed := filepath.Join(stored, strings.Join(segments[i+1:], sep))
		if !pathExists(composed) {
			return "", false
		}
		return composed, true
	}
	return "", false
}

func canonicalize(requested, resolved string) (string, error) {
	fpath, err := filepath.Abs(resolved)
	if err == nil {
		fpath, err = filepath.EvalSymlinks(fpath)
	}
	if err != nil {
		return "", &NotFoundError{Path: requested, Stale: true, Cause: err}
	}
	return fpath, nil
}

func absolute(fpath string) string {
	if filepath.IsAbs(fpath) {
		return fpath
	}
	abs, err := filepath.Abs(fpath)
	if err != nil {
		slog.Warn("Unable to make path absolute.", except.LogErrAttr(err), except.LogDataAttrs(slog.String("path", fpath)))
		return fpath
	}
	return abs
}

func pathExists(fpath string) bool {
	_, err := os.Stat(fpath)
	return err == nil
}

func isDir(fpath string) bool {
	info, err := os.Stat(fpath)
	return err == nil && info.IsDir()
}
