package shortpath

import (
	"log/slog"

	"github.com/mtth/shortpath/internal/except"
)

// Get resolves the path using the resolver's mode: Resolve under ModeResolve, Real under ModeReal.
// An empty name returns the root directory.
func (r *Resolver) Get(name string) (string, error) {
	if r.mode == ModeReal {
		return r.Real(name)
	}
	return r.Resolve(name)
}

// MustGet is similar to Get but panics on error. It is intended for paths known to exist, for
// example when wiring an application together at startup.
func (r *Resolver) MustGet(name string) string {
	fpath, err := r.Get(name)
	except.Require(err)
	return fpath
}

// Set registers the path under the shortcut name. It is equivalent to Register(fpath, name).
func (r *Resolver) Set(name, fpath string) error {
	_, err := r.Register(fpath, name)
	return err
}

// String returns the root directory, canonicalized under ModeReal. If canonicalization fails, the
// root directory is returned as is.
func (r *Resolver) String() string {
	if r.mode != ModeReal {
		return r.root
	}
	fpath, err := r.Real("")
	if err != nil {
		slog.Warn("Unable to canonicalize root directory.", except.LogErrAttr(err))
		return r.root
	}
	return fpath
}
