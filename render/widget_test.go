package render

import (
	"testing"

	"github.com/lixenwraith/termcore/terminal"
)

type borderWidget struct {
	style terminal.Style
}

func (w borderWidget) Render(area Rect, buf *Buffer) {
	for x := area.X; x < area.Right(); x++ {
		buf.Set(x, area.Y, terminal.Cell{Rune: '-', Width: 1}.WithStyle(w.style))
		buf.Set(x, area.Bottom()-1, terminal.Cell{Rune: '-', Width: 1}.WithStyle(w.style))
	}
	for y := area.Y; y < area.Bottom(); y++ {
		buf.Set(area.X, y, terminal.Cell{Rune: '|', Width: 1}.WithStyle(w.style))
		buf.Set(area.Right()-1, y, terminal.Cell{Rune: '|', Width: 1}.WithStyle(w.style))
	}
}

func TestWidgetRendersIntoRegion(t *testing.T) {
	buf := NewBuffer(10, 6)
	var w Widget = borderWidget{}
	w.Render(NewRect(1, 1, 8, 4), buf)

	if c := buf.Get(1, 1); c.Rune != '|' {
		t.Errorf("Expected border corner, got %+v", c)
	}
	if c := buf.Get(4, 1); c.Rune != '-' {
		t.Errorf("Expected top border, got %+v", c)
	}
	if c := buf.Get(5, 3); !c.Equal(terminal.DefaultCell) {
		t.Errorf("Interior must stay untouched, got %+v", c)
	}
	if c := buf.Get(0, 0); !c.Equal(terminal.DefaultCell) {
		t.Errorf("Cells outside the region must stay untouched, got %+v", c)
	}
}

func TestWidgetFunc(t *testing.T) {
	buf := NewBuffer(5, 2)
	called := false
	w := WidgetFunc(func(area Rect, b *Buffer) {
		called = true
		b.WriteString(area.X, area.Y, "fn", terminal.Style{})
	})
	w.Render(NewRect(1, 0, 4, 1), buf)

	if !called {
		t.Fatal("WidgetFunc not invoked")
	}
	if c := buf.Get(1, 0); c.Rune != 'f' {
		t.Errorf("Expected f at (1,0), got %+v", c)
	}
}

func TestWidgetClipsOutsideBuffer(t *testing.T) {
	buf := NewBuffer(4, 4)
	var w Widget = borderWidget{}
	// Region partly past the buffer; writes clip silently
	w.Render(NewRect(2, 2, 10, 10), buf)

	if c := buf.Get(2, 2); c.Rune != '|' {
		t.Errorf("Expected border at (2,2), got %+v", c)
	}
}
