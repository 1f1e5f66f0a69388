package terminal

import (
	"bufio"
	"io"
)

// Writer turns ordered cell updates into minimal terminal output. It
// tracks the physical cursor position and the last emitted SGR state so
// that adjacent updates on one row need no repositioning and style
// sequences are emitted only on change.
//
// Zero-value colors render as the terminal's default foreground and
// background rather than explicit black.
type Writer struct {
	w         *bufio.Writer
	colorMode ColorMode

	cursorX     int
	cursorY     int
	cursorValid bool

	lastStyle  Style
	styleValid bool
}

// NewWriter creates a writer emitting to out with the given color mode
func NewWriter(out io.Writer, colorMode ColorMode) *Writer {
	return &Writer{
		w:         bufio.NewWriterSize(out, 65536),
		colorMode: colorMode,
	}
}

// Apply emits the given updates, ordered by row then column, and
// flushes. Continuation cells (Width 0) are skipped; the wide glyph
// written at the preceding column already painted them.
func (o *Writer) Apply(updates []CellUpdate) error {
	w := o.w
	for _, u := range updates {
		c := u.Cell
		if c.Width == 0 {
			continue
		}

		if !o.cursorValid || u.X != o.cursorX || u.Y != o.cursorY {
			// Non-destructive movement: forward within the row,
			// absolute positioning otherwise
			if o.cursorValid && u.Y == o.cursorY && u.X > o.cursorX {
				writeCursorForward(w, u.X-o.cursorX)
			} else {
				writeCursorPos(w, u.X, u.Y)
			}
			o.cursorX = u.X
			o.cursorY = u.Y
			o.cursorValid = true
		}

		o.writeStyle(c.Style())

		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			w.WriteByte(byte(r))
		} else {
			w.WriteRune(r)
		}
		o.cursorX += int(c.Width)
	}

	w.Write(csiSGR0)
	o.styleValid = false
	return w.Flush()
}

// writeStyle emits a single combined SGR sequence when style changes
func (o *Writer) writeStyle(s Style) {
	if o.styleValid && s == o.lastStyle {
		return
	}
	w := o.w

	w.Write(csiPrefix)
	w.WriteByte('0') // Reset, then rebuild
	if s.Attrs&AttrBold != 0 {
		w.Write([]byte(";1"))
	}
	if s.Attrs&AttrDim != 0 {
		w.Write([]byte(";2"))
	}
	if s.Attrs&AttrItalic != 0 {
		w.Write([]byte(";3"))
	}
	if s.Attrs&AttrUnderline != 0 {
		w.Write([]byte(";4"))
	}
	if s.Attrs&AttrBlink != 0 {
		w.Write([]byte(";5"))
	}
	if s.Attrs&AttrReverse != 0 {
		w.Write([]byte(";7"))
	}
	o.writeColor(s.Fg, true)
	o.writeColor(s.Bg, false)
	w.WriteByte('m')

	o.lastStyle = s
	o.styleValid = true
}

// writeColor writes one color parameter group (no CSI prefix, no 'm')
func (o *Writer) writeColor(c RGB, fg bool) {
	w := o.w
	w.WriteByte(';')

	if c == (RGB{}) {
		// Terminal default
		if fg {
			w.Write([]byte("39"))
		} else {
			w.Write([]byte("49"))
		}
		return
	}

	if o.colorMode == ColorModeTrueColor {
		if fg {
			w.Write([]byte("38;2;"))
		} else {
			w.Write([]byte("48;2;"))
		}
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		return
	}

	if fg {
		w.Write([]byte("38;5;"))
	} else {
		w.Write([]byte("48;5;"))
	}
	writeInt(w, int(RGBTo256(c)))
}

// Invalidate marks cursor and style state unknown, forcing the next
// Apply to reposition and restyle from scratch. Called after anything
// else wrote to the terminal.
func (o *Writer) Invalidate() {
	o.cursorValid = false
	o.styleValid = false
}

// Clear erases the screen with default attributes and homes the cursor
func (o *Writer) Clear() error {
	o.w.Write(csiSGR0)
	o.w.Write(csiClear)
	o.Invalidate()
	return o.w.Flush()
}

// Terminal feature toggles, written immediately. The runtime enables
// these on startup and must disable them in reverse order on exit.

func (o *Writer) EnterAltScreen() error  { return o.emit(csiAltScreenEnter) }
func (o *Writer) ExitAltScreen() error   { return o.emit(csiAltScreenExit) }
func (o *Writer) HideCursor() error      { return o.emit(csiCursorHide) }
func (o *Writer) ShowCursor() error      { return o.emit(csiCursorShow) }
func (o *Writer) DisableAutoWrap() error { return o.emit(csiAutoWrapOff) }
func (o *Writer) EnableAutoWrap() error  { return o.emit(csiAutoWrapOn) }

// EnableMouse turns on SGR-encoded click, drag and motion reporting
func (o *Writer) EnableMouse() error {
	o.w.Write(csiMouseSGROn)
	o.w.Write(csiMouseClickOn)
	o.w.Write(csiMouseDragOn)
	o.w.Write(csiMouseMotionOn)
	return o.w.Flush()
}

// DisableMouse turns off mouse reporting in reverse enable order
func (o *Writer) DisableMouse() error {
	o.w.Write(csiMouseMotionOff)
	o.w.Write(csiMouseDragOff)
	o.w.Write(csiMouseClickOff)
	o.w.Write(csiMouseSGROff)
	return o.w.Flush()
}

func (o *Writer) EnableBracketedPaste() error  { return o.emit(csiPasteOn) }
func (o *Writer) DisableBracketedPaste() error { return o.emit(csiPasteOff) }
func (o *Writer) PushKittyKeyboard() error     { return o.emit(csiKittyPush) }
func (o *Writer) PopKittyKeyboard() error      { return o.emit(csiKittyPop) }

func (o *Writer) emit(seq []byte) error {
	o.w.Write(seq)
	return o.w.Flush()
}
