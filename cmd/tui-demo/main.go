// Demonstrates the full engine surface: constraint layout, styled cell
// writes, wide glyphs, tick-driven animation and the runtime loop.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/layout"
	"github.com/lixenwraith/termcore/render"
	"github.com/lixenwraith/termcore/terminal"
)

var (
	fgColor     = terminal.RGB{R: 200, G: 200, B: 200}
	borderColor = terminal.RGB{R: 80, G: 100, B: 140}
	accentColor = terminal.RGB{R: 100, G: 200, B: 220}
	goodColor   = terminal.RGB{R: 80, G: 200, B: 80}
	dimColor    = terminal.RGB{R: 100, G: 100, B: 100}
	headerBg    = terminal.RGB{R: 40, G: 50, B: 70}
)

type demo struct {
	frame  int
	cursor int
	items  []string
}

func newDemo() *demo {
	d := &demo{}
	for i := 0; i < 25; i++ {
		d.items = append(d.items, fmt.Sprintf("entry %02d", i))
	}
	return d
}

func (d *demo) Update(ev terminal.Event) app.Action {
	switch ev.Type {
	case terminal.EventKey:
		switch {
		case ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyEscape:
			return app.Quit()
		case ev.Key == terminal.KeyRune && ev.Rune == 'q':
			return app.Quit()
		case ev.Key == terminal.KeyDown || (ev.Key == terminal.KeyRune && ev.Rune == 'j'):
			if d.cursor < len(d.items)-1 {
				d.cursor++
			}
		case ev.Key == terminal.KeyUp || (ev.Key == terminal.KeyRune && ev.Rune == 'k'):
			if d.cursor > 0 {
				d.cursor--
			}
		}
	case terminal.EventTick:
		d.frame++
	}
	return app.None()
}

func (d *demo) View(buf *render.Buffer) {
	rows := layout.Split(buf.Bounds(), layout.Vertical, []layout.Constraint{
		layout.Length(1),
		layout.Flex(1),
		layout.Length(1),
	}, layout.AlignLegacy)

	d.header(buf, rows[0])
	d.body(buf, rows[1])
	d.footer(buf, rows[2])
}

func (d *demo) header(buf *render.Buffer, area render.Rect) {
	style := terminal.Style{Fg: accentColor, Bg: headerBg, Attrs: terminal.AttrBold}
	buf.Fill(area, terminal.Cell{Rune: ' ', Bg: headerBg, Width: 1})
	buf.WriteString(area.X+1, area.Y, "termcore 世界 demo", style)
}

func (d *demo) body(buf *render.Buffer, area render.Rect) {
	cols := layout.Split(area, layout.Horizontal, []layout.Constraint{
		layout.Length(20),
		layout.Flex(1),
	}, layout.AlignLegacy)

	d.list(buf, cols[0])
	d.gauge(buf, cols[1].Inset(1))
}

func (d *demo) list(buf *render.Buffer, area render.Rect) {
	for i, item := range d.items {
		y := area.Y + i
		if y >= area.Bottom() {
			break
		}
		style := terminal.Style{Fg: fgColor}
		prefix := "  "
		if i == d.cursor {
			style = terminal.Style{Fg: accentColor, Attrs: terminal.AttrReverse}
			prefix = "> "
		}
		buf.WriteString(area.X, y, prefix+item, style)
	}
}

func (d *demo) gauge(buf *render.Buffer, area render.Rect) {
	if area.Empty() {
		return
	}
	pct := d.frame % 101
	filled := area.Width * pct / 100

	buf.Fill(render.NewRect(area.X, area.Y, filled, 1),
		terminal.Cell{Rune: '█', Fg: goodColor, Width: 1})
	buf.Fill(render.NewRect(area.X+filled, area.Y, area.Width-filled, 1),
		terminal.Cell{Rune: '░', Fg: dimColor, Width: 1})

	buf.WriteString(area.X, area.Y+2, fmt.Sprintf("%3d%%", pct),
		terminal.Style{Fg: borderColor})
}

func (d *demo) footer(buf *render.Buffer, area render.Rect) {
	buf.WriteString(area.X+1, area.Y, "j/k move  q quit", terminal.Style{Fg: dimColor})
}

func main() {
	opts := app.DefaultOptions()
	opts.TickInterval = 33 * time.Millisecond

	if path := os.Getenv("TERMCORE_CONFIG"); path != "" {
		loaded, err := app.LoadOptions(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts = loaded
	}

	rt := app.New(newDemo(), opts)
	if err := rt.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
