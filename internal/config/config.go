// Package config loads resolver settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/mtth/shortpath"
	"github.com/mtth/shortpath/internal/except"
	"github.com/mtth/shortpath/internal/fspath"
	"gopkg.in/yaml.v3"
)

// Config holds resolver settings. All fields are optional.
type Config struct {
	// Root directory. Relative values are interpreted from the configuration file's folder.
	Root fspath.Local `yaml:"root" toml:"root"`
	// Single character delimiter.
	Delimiter string `yaml:"delimiter" toml:"delimiter"`
	// Accessor mode, see shortpath.Mode.
	Mode string `yaml:"mode" toml:"mode"`
	// Shortcut paths, keyed by name.
	Shortcuts map[string]string `yaml:"shortcuts" toml:"shortcuts"`

	dir fspath.Local
}

var (
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// defaultNames are the file names looked up, in order, when reading a configuration from a folder.
var defaultNames = []string{".shortpath.yaml", ".shortpath.yml", ".shortpath.toml"}

// xdgName is the path of the user-level configuration, relative to XDG configuration folders.
const xdgName = "shortpath/config.yaml"

// Find reads the configuration from a folder, falling back to the user's XDG configuration.
func Find(dpath fspath.Local) (*Config, error) {
	cfg, err := Read(dpath)
	if err == nil || !errors.Is(err, ErrMissingConfig) {
		return cfg, err
	}
	fp, xdgErr := xdg.SearchConfigFile(xdgName)
	if xdgErr != nil {
		slog.Debug("No XDG configuration found.", except.LogErrAttr(xdgErr))
		return nil, err
	}
	return Read(fp)
}

// Read reads the configuration at the given path. If the path is a folder, the first existing file
// in defaultNames is used.
func Read(fp fspath.Local) (*Config, error) {
	info, err := os.Stat(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}
	if info.IsDir() {
		found, ok := findDefault(fp)
		if !ok {
			return nil, fmt.Errorf("%w: no configuration file in %s", ErrMissingConfig, fp)
		}
		fp = found
	}

	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}
	var cfg Config
	switch filepath.Ext(fp) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}
	cfg.dir = filepath.Dir(abs)
	slog.Debug("Read configuration.", except.LogDataAttrs(slog.String("path", abs)))
	return &cfg, nil
}

func findDefault(dpath fspath.Local) (fspath.Local, bool) {
	for _, name := range defaultNames {
		fp := filepath.Join(dpath, name)
		if info, err := os.Stat(fp); err == nil && !info.IsDir() {
			return fp, true
		}
	}
	return "", false
}

func (c *Config) validate() error {
	if n := utf8.RuneCountInString(c.Delimiter); n > 1 {
		return fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	}
	if c.Mode != "" {
		if _, err := shortpath.ModeString(c.Mode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Options converts the configuration into resolver options.
func (c *Config) Options() ([]shortpath.Option, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	var opts []shortpath.Option
	if root := c.Root; root != "" {
		if !filepath.IsAbs(root) && c.dir != "" {
			root = filepath.Join(c.dir, root)
		}
		opts = append(opts, shortpath.WithRoot(root))
	}
	if c.Delimiter != "" {
		delim, _ := utf8.DecodeRuneInString(c.Delimiter)
		opts = append(opts, shortpath.WithDelimiter(delim))
	}
	if c.Mode != "" {
		mode, err := shortpath.ModeString(c.Mode)
		except.Require(err)
		opts = append(opts, shortpath.WithMode(mode))
	}
	if len(c.Shortcuts) > 0 {
		opts = append(opts, shortpath.WithShortcuts(c.Shortcuts))
	}
	return opts, nil
}

// NewResolver creates a resolver from the configuration. Additional options are applied after the
// configuration's, overriding them.
func (c *Config) NewResolver(extra ...shortpath.Option) (*shortpath.Resolver, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return shortpath.New(append(opts, extra...)...)
}
