// Package locate discovers project roots by walking up the filesystem.
package locate

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mtth/shortpath/internal/except"
	"github.com/mtth/shortpath/internal/fspath"
)

const (
	// ManifestName is the dependency manifest marking a project root.
	ManifestName = "go.mod"

	// BootstrapName is the dependency bootstrap file marking a project root. It must sit next to the
	// manifest.
	BootstrapName = "go.sum"
)

// fileSystem is swapped out for testing.
var fileSystem fs.FS = os.DirFS("/")

// Find walks upward from start and returns the first directory containing both marker files. If no
// such directory exists, the filesystem root is returned. Find never fails.
func Find(start fspath.Local) fspath.Local {
	dir, err := filepath.Abs(start)
	if err != nil {
		slog.Warn("Unable to make start directory absolute.", except.LogErrAttr(err))
		dir = filepath.Clean(start)
	}
	slog.Debug("Locating project root...", except.LogDataAttrs(slog.String("start", dir)))

	for {
		if isProjectRoot(dir) {
			slog.Debug("Located project root.", except.LogDataAttrs(slog.String("root", dir)))
			return dir
		}
		if fspath.IsRoot(dir) {
			slog.Debug("No project root found, using filesystem root.", except.LogDataAttrs(slog.String("root", dir)))
			return dir
		}
		dir = filepath.Dir(dir)
	}
}

// FromWorkingDir runs Find from the process' current directory, or from the filesystem root when it
// is unavailable.
func FromWorkingDir() fspath.Local {
	wd, err := getwd()
	if err != nil {
		slog.Warn("Working directory unavailable.", except.LogErrAttr(err))
		wd = string(filepath.Separator)
	}
	return Find(wd)
}

var getwd = os.Getwd

// isProjectRoot returns whether both markers are present in the directory. Either marker may be a
// file or a directory, only presence matters.
func isProjectRoot(dpath fspath.Local) bool {
	return exists(filepath.Join(dpath, ManifestName)) && exists(filepath.Join(dpath, BootstrapName))
}

func exists(fpath fspath.Local) bool {
	_, err := fs.Stat(fileSystem, fspath.Unabs(fpath))
	return err == nil
}
