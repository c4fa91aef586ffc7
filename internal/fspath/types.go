// Package fspath names the path representations used across the module.
package fspath

import (
	"path/filepath"
	"strings"

	"github.com/mtth/shortpath/internal/except"
)

// Local is a machine-dependent path representation. It is the format expected by functions in the
// path/filepath module.
type Local = string

// POSIX is a forward-slash delimited path representation. It is the format expected by functions in
// the path module and by io/fs implementations.
type POSIX = string

// Unabs converts a local path into the root-relative form expected by an fs.FS rooted at the
// filesystem root (see os.DirFS("/")).
func Unabs(fpath Local) POSIX {
	absPath, err := filepath.Abs(fpath)
	except.Must(err == nil, "can't make path %v absolute: %v", fpath, err)
	rel := filepath.ToSlash(strings.TrimPrefix(absPath, string(filepath.Separator)))
	if rel == "" {
		return "."
	}
	return rel
}

// IsRoot returns true iff the directory is its own parent.
func IsRoot(dpath Local) bool {
	return filepath.Dir(dpath) == dpath
}
