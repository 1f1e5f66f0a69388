package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcore/terminal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptionsFull(t *testing.T) {
	path := writeConfig(t, `
tick_interval_ms = 100
escape_timeout_ms = 25
mouse = true
bracketed_paste = true
alt_screen = false
kitty_keyboard = true
color_mode = "truecolor"
log_path = "/tmp/engine.log"
`)

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, opts.TickInterval)
	assert.Equal(t, 25*time.Millisecond, opts.EscapeTimeout)
	assert.True(t, opts.Mouse)
	assert.True(t, opts.BracketedPaste)
	assert.False(t, opts.AltScreen)
	assert.True(t, opts.KittyKeyboard)
	assert.Equal(t, terminal.ColorModeTrueColor, opts.ColorMode)
	assert.True(t, opts.ForceColorMode)
	assert.Equal(t, "/tmp/engine.log", opts.LogPath)
}

func TestLoadOptionsAbsentKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `mouse = true`)

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	defaults := DefaultOptions()
	assert.True(t, opts.Mouse)
	assert.Equal(t, defaults.EscapeTimeout, opts.EscapeTimeout)
	assert.Equal(t, defaults.AltScreen, opts.AltScreen)
	assert.Equal(t, defaults.TickInterval, opts.TickInterval)
	assert.False(t, opts.ForceColorMode)
}

func TestLoadOptionsColorMode256(t *testing.T) {
	path := writeConfig(t, `color_mode = "256"`)

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, terminal.ColorMode256, opts.ColorMode)
	assert.True(t, opts.ForceColorMode)
}

func TestLoadOptionsRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `mousse = true`)

	_, err := LoadOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mousse")
}

func TestLoadOptionsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"NegativeTick", `tick_interval_ms = -5`},
		{"ZeroEscapeTimeout", `escape_timeout_ms = 0`},
		{"BadColorMode", `color_mode = "16million"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadOptions(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
