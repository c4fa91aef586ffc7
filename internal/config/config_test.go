package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mtth/shortpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	for _, tc := range []struct {
		path string
		want *Config
	}{
		{
			path: "testdata",
			want: &Config{
				Root:      "project",
				Delimiter: "|",
				Mode:      "real",
				Shortcuts: map[string]string{"spec": "tests|spec", "readme": "README.md"},
			},
		},
		{
			path: "testdata/.shortpath.yaml",
			want: &Config{
				Root:      "project",
				Delimiter: "|",
				Mode:      "real",
				Shortcuts: map[string]string{"spec": "tests|spec", "readme": "README.md"},
			},
		},
		{
			path: "testdata/toml",
			want: &Config{
				Root:      "../project",
				Mode:      "resolve",
				Shortcuts: map[string]string{"tests": "tests"},
			},
		},
	} {
		t.Run(tc.path, func(t *testing.T) {
			got, err := Read(tc.path)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tc.want, got, cmpopts.IgnoreUnexported(Config{})))
		})
	}

	for _, tc := range []string{
		"testdata/invalid",
		"testdata/delimiter.yaml",
		"testdata/mode.yml",
	} {
		t.Run(tc, func(t *testing.T) {
			got, err := Read(tc)
			assert.Nil(t, got)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	for key, tc := range map[string]string{
		"path":   "./non/existent/path",
		"folder": "testdata/project",
	} {
		t.Run(fmt.Sprintf("missing %s", key), func(t *testing.T) {
			got, err := Read(tc)
			assert.Nil(t, got)
			require.ErrorIs(t, err, ErrMissingConfig)
		})
	}
}

func TestFind(t *testing.T) {
	t.Cleanup(xdg.Reload)

	t.Run("local", func(t *testing.T) {
		got, err := Find("testdata/toml")
		require.NoError(t, err)
		assert.Equal(t, "resolve", got.Mode)
	})

	t.Run("xdg fallback", func(t *testing.T) {
		home := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, "shortpath"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(home, "shortpath", "config.yaml"), []byte("mode: real\n"), 0644))
		t.Setenv("XDG_CONFIG_HOME", home)
		xdg.Reload()

		got, err := Find(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "real", got.Mode)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
		xdg.Reload()

		got, err := Find(t.TempDir())
		assert.Nil(t, got)
		require.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("invalid local", func(t *testing.T) {
		_, err := Find("testdata/invalid")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_NewResolver(t *testing.T) {
	project, err := filepath.Abs("testdata/project")
	require.NoError(t, err)
	realProject, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Read("testdata")
		require.NoError(t, err)
		r, err := cfg.NewResolver()
		require.NoError(t, err)

		assert.Equal(t, project, r.Root())
		assert.Equal(t, '|', r.Delimiter())
		assert.Equal(t, shortpath.ModeReal, r.Mode())
		got, err := r.Get("spec|PathSpec.ext")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(realProject, "tests", "spec", "PathSpec.ext"), got)
		assert.True(t, r.Has("readme"))
	})

	t.Run("relative parent root", func(t *testing.T) {
		cfg, err := Read("testdata/toml")
		require.NoError(t, err)
		r, err := cfg.NewResolver()
		require.NoError(t, err)
		assert.Equal(t, project, r.Root())
		assert.True(t, r.Has("tests"))
	})

	t.Run("override", func(t *testing.T) {
		cfg, err := Read("testdata/toml")
		require.NoError(t, err)
		r, err := cfg.NewResolver(shortpath.WithMode(shortpath.ModeReal))
		require.NoError(t, err)
		assert.True(t, r.DefaultToReal())
	})

	t.Run("invalid shortcut", func(t *testing.T) {
		cfg := &Config{Root: project, Shortcuts: map[string]string{"x": "missing"}}
		_, err := cfg.NewResolver()
		require.ErrorIs(t, err, shortpath.ErrNotFound)
	})

	t.Run("invalid delimiter", func(t *testing.T) {
		cfg := &Config{Delimiter: "||"}
		_, err := cfg.Options()
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
