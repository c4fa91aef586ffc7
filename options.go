package shortpath

import (
	"path/filepath"

	"github.com/mtth/shortpath/internal/locate"
)

// Option configures a Resolver, see New.
type Option func(*Resolver)

// WithRoot sets the root directory. It is ignored (and the Locator consulted instead) if dir is not
// an existing directory.
func WithRoot(dir string) Option {
	return func(r *Resolver) {
		r.root = dir
	}
}

// WithDelimiter sets the character callers use to separate path segments. It defaults to the
// platform's separator.
func WithDelimiter(delim rune) Option {
	return func(r *Resolver) {
		r.delimiter = delim
	}
}

// WithMode sets the mode used by accessors.
func WithMode(mode Mode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithDefaultToReal is a convenience alternative to WithMode.
func WithDefaultToReal(enabled bool) Option {
	return WithMode(modeFor(enabled))
}

// WithLocator sets the strategy used to discover the root directory when none (or an invalid one)
// was provided. A nil locator is ignored.
func WithLocator(loc Locator) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.locator = loc
		}
	}
}

// WithShortcuts registers the shortcuts, keyed by name, when the resolver is created. Paths are
// validated exactly as by Register.
func WithShortcuts(shortcuts map[string]string) Option {
	return func(r *Resolver) {
		r.initial = shortcuts
	}
}

// Locator discovers a root directory. Implementations must always return a directory.
type Locator interface {
	Locate() string
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() string

// Locate implements Locator.
func (f LocatorFunc) Locate() string { return f() }

// LocateFrom returns a Locator which walks upward from dir, looking for a directory which contains
// both go.mod and go.sum. If none is found, the filesystem root is used.
func LocateFrom(dir string) Locator {
	return LocatorFunc(func() string { return locate.Find(dir) })
}

// defaultLocator starts from the working directory.
var defaultLocator Locator = LocatorFunc(locate.FromWorkingDir)

func modeFor(enabled bool) Mode {
	if enabled {
		return ModeReal
	}
	return ModeResolve
}

func defaultDelimiter() rune {
	return filepath.Separator
}
