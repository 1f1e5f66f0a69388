// Interactive decoder check: shows every event the engine produces,
// with mouse reporting, bracketed paste and the kitty keyboard protocol
// enabled. Useful for verifying what a given terminal actually sends.
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/render"
	"github.com/lixenwraith/termcore/terminal"
)

const historySize = 64

type viewer struct {
	history []string
}

func (v *viewer) Update(ev terminal.Event) app.Action {
	if ev.Type == terminal.EventKey && ev.Key == terminal.KeyCtrlC {
		return app.Quit()
	}
	v.history = append(v.history, describe(ev))
	if len(v.history) > historySize {
		v.history = v.history[len(v.history)-historySize:]
	}
	return app.None()
}

func (v *viewer) View(buf *render.Buffer) {
	bold := terminal.Style{Attrs: terminal.AttrBold}
	buf.WriteString(0, 0, "input-test: press keys, click, paste; ctrl+c exits", bold)

	rows := buf.Height() - 2
	start := 0
	if len(v.history) > rows {
		start = len(v.history) - rows
	}
	for i, line := range v.history[start:] {
		buf.WriteString(0, 2+i, line, terminal.Style{})
	}
}

func describe(ev terminal.Event) string {
	switch ev.Type {
	case terminal.EventKey:
		name := terminal.KeyName(ev.Key)
		if ev.Key == terminal.KeyRune {
			name = fmt.Sprintf("rune %q", ev.Rune)
		}
		return fmt.Sprintf("key  %-16s mod=%03b action=%s", name, ev.Modifiers, ev.Action)
	case terminal.EventMouse:
		return fmt.Sprintf("mouse %s %s at (%d,%d) mod=%03b",
			ev.MouseBtn, ev.MouseAction, ev.MouseX, ev.MouseY, ev.Modifiers)
	case terminal.EventResize:
		return fmt.Sprintf("resize %dx%d", ev.Width, ev.Height)
	case terminal.EventTick:
		return "tick"
	default:
		return fmt.Sprintf("event type=%d", ev.Type)
	}
}

func main() {
	opts := app.DefaultOptions()
	opts.Mouse = true
	opts.BracketedPaste = true
	opts.KittyKeyboard = true

	rt := app.New(&viewer{}, opts)
	if err := rt.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
