package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore the terminal to a sane state.
// Call this from panic recovery when the normal cleanup path cannot
// run; it is idempotent and ignores errors.
func EmergencyReset(w io.Writer) {
	// Disable mouse tracking
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	// Disable bracketed paste and kitty keyboard reporting
	w.Write(csiPasteOff)
	w.Write(csiKittyPop)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort reset
	resetTerminalMode()
}
