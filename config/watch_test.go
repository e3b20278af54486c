package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func waitUpdate(t *testing.T, w *Watcher) (RenderConfig, bool) {
	t.Helper()
	select {
	case r := <-w.Updates:
		return r, true
	case <-time.After(2 * time.Second):
		return RenderConfig{}, false
	}
}

func TestWatcherReloadsRender(t *testing.T) {
	defer verifyNoLeaks(t)

	path := writeConfig(t, "render:\n  circle_color: purple\n")
	w, err := Watch(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("render:\n  circle_color: \"#00ff00\"\n  circle_radius: 4\n"), 0o644))

	r, ok := waitUpdate(t, w)
	require.True(t, ok, "no update received")
	assert.Equal(t, "#00ff00", r.CircleColor)
	assert.Equal(t, float32(4), r.CircleRadius)
	assert.Equal(t, "#282828", r.BackgroundColor)

	require.NoError(t, w.Close())
	_, open := <-w.Updates
	assert.False(t, open)
}

func TestWatcherSkipsInvalidEdits(t *testing.T) {
	defer verifyNoLeaks(t)

	path := writeConfig(t, "render:\n  circle_color: purple\n")
	w, err := Watch(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("render:\n  circle_color: nope\n"), 0o644))
	_, ok := waitUpdate(t, w)
	assert.False(t, ok, "invalid edit must not be published")

	require.NoError(t, os.WriteFile(path, []byte("render:\n  circle_color: red\n"), 0o644))
	r, ok := waitUpdate(t, w)
	require.True(t, ok)
	assert.Equal(t, "red", r.CircleColor)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch("/does/not/exist/circles.yaml", nil)
	assert.Error(t, err)
}
