package app

import (
	"time"

	"github.com/lixenwraith/termcore/terminal"
)

// Options is the closed runtime configuration surface, consumed once
// at construction. No terminal I/O happens until Run.
type Options struct {
	// TickInterval synthesizes a Tick event whenever it elapses with
	// no input; zero disables ticks
	TickInterval time.Duration

	// EscapeTimeout bounds how long a lone ESC byte is held before it
	// is released as an Escape keypress rather than the start of an
	// escape sequence
	EscapeTimeout time.Duration

	Mouse          bool
	BracketedPaste bool
	AltScreen      bool
	KittyKeyboard  bool

	// ColorMode overrides environment detection when ForceColorMode
	// is set
	ColorMode      terminal.ColorMode
	ForceColorMode bool

	// LogPath enables debug logging to the given file; stdout belongs
	// to the terminal, so logging is off by default
	LogPath string
}

// DefaultOptions returns the conservative defaults: alternate screen
// on, everything else off, 50ms escape disambiguation.
func DefaultOptions() Options {
	return Options{
		EscapeTimeout: 50 * time.Millisecond,
		AltScreen:     true,
	}
}
