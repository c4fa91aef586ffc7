package except

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMust(t *testing.T) {
	t.Run("no-op", func(t *testing.T) {
		Must(true, "ok")
	})

	t.Run("panic", func(t *testing.T) {
		require.PanicsWithValue(t, "bad value 3", func() {
			Must(false, "bad value %d", 3)
		})
	})
}

func TestRequire(t *testing.T) {
	require.NotPanics(t, func() { Require(nil) })
	require.Panics(t, func() { Require(errors.New("boom")) })
}

func TestLogErrAttr(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		attr := LogErrAttr(nil)
		assert.Equal(t, "err", attr.Key)
		assert.Equal(t, slog.KindGroup, attr.Value.Kind())
		assert.Empty(t, attr.Value.Group())
	})

	t.Run("error", func(t *testing.T) {
		attr := LogErrAttr(errors.New("boom"))
		assert.Equal(t, "err", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})
}

func TestLogDataAttrs(t *testing.T) {
	attr := LogDataAttrs(slog.String("name", "docs"), slog.Int("count", 2))
	assert.Equal(t, "data", attr.Key)
	group := attr.Value.Group()
	require.Len(t, group, 2)
	assert.Equal(t, "docs", group[0].Value.String())
	assert.Equal(t, int64(2), group[1].Value.Int64())
}
