package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termcore/terminal"
)

// Buffer is a width×height grid of cells, row-major. The runtime loop
// keeps two: the one being written this frame and the one the terminal
// currently displays. Widgets only ever see the write primitives.
//
// All writes clip silently against the buffer bounds; widgets routinely
// compute regions that spill past the visible area and that is not an
// error.
type Buffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewBuffer creates a buffer filled with default cells
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{
		cells:  make([]terminal.Cell, width*height),
		width:  width,
		height: height,
	}
	b.Reset()
	return b
}

// Width returns the buffer width in cells
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer's full area as a rect at the origin
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Resize reallocates the grid for the new dimensions and resets every
// cell; reuses the existing allocation when capacity allows
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Reset()
}

// Reset fills the buffer with default cells using exponential copy
func (b *Buffer) Reset() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = terminal.DefaultCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Get returns the cell at (x, y), or the default cell out of bounds
func (b *Buffer) Get(x, y int) terminal.Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return terminal.DefaultCell
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell, silently clipped out of bounds. A width-2 cell
// shadows the cell to its right; writing into either half of an
// existing wide glyph first blanks the other half so no torn glyph is
// left on screen.
func (b *Buffer) Set(x, y int, c terminal.Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	if c.Width == 0 {
		c.Width = 1
	}
	if c.Width == 2 && x+1 >= b.width {
		// Wide glyph would clip at the right edge; blank instead
		c = terminal.DefaultCell.WithStyle(c.Style())
	}

	b.clearWide(x, y)
	idx := y*b.width + x
	b.cells[idx] = c
	if c.Width == 2 {
		b.clearWide(x+1, y)
		cont := terminal.Cell{Rune: 0, Width: 0}
		cont = cont.WithStyle(c.Style())
		b.cells[idx+1] = cont
	}
}

// clearWide repairs a wide glyph that the write at (x, y) is about to
// tear, replacing both halves with styled blanks.
func (b *Buffer) clearWide(x, y int) {
	idx := y*b.width + x
	c := b.cells[idx]
	switch c.Width {
	case 2:
		// Overwriting the left half; blank the shadowed right half
		if x+1 < b.width {
			right := &b.cells[idx+1]
			if right.Width == 0 {
				*right = terminal.DefaultCell.WithStyle(right.Style())
			}
		}
	case 0:
		// Overwriting the right half; blank the wide rune on the left
		if x > 0 {
			left := &b.cells[idx-1]
			if left.Width == 2 {
				*left = terminal.DefaultCell.WithStyle(left.Style())
			}
		}
	}
}

// WriteString writes text starting at (x, y), honoring each rune's
// display width, and stops at the right edge without wrapping. Returns
// the column after the last cell written.
func (b *Buffer) WriteString(x, y int, text string, style terminal.Style) int {
	if y < 0 || y >= b.height {
		return x
	}
	for _, r := range text {
		if x >= b.width {
			break
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// Combining marks and other zero-width runes cannot live
			// in a single-rune cell model; skipped
			continue
		}
		if w == 2 && x+1 >= b.width {
			// A wide glyph must not be clipped in half at the edge
			b.Set(x, y, terminal.Cell{Rune: ' ', Width: 1}.WithStyle(style))
			break
		}
		b.Set(x, y, terminal.Cell{Rune: r, Width: uint8(w)}.WithStyle(style))
		x += w
	}
	return x
}

// Fill sets every cell inside rect (intersected with the buffer) to c
func (b *Buffer) Fill(rect Rect, c terminal.Cell) {
	area := rect.Intersect(b.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			b.Set(x, y, c)
		}
	}
}

// SetStyle restyles every cell inside rect, preserving content
func (b *Buffer) SetStyle(rect Rect, style terminal.Style) {
	area := rect.Intersect(b.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		row := y * b.width
		for x := area.X; x < area.Right(); x++ {
			c := &b.cells[row+x]
			*c = c.WithStyle(style)
		}
	}
}

// Diff scans both grids in row-major order and returns one CellUpdate
// for every position whose cell differs, ordered by row then column.
// Applying the updates to prev yields exactly b. Buffers of unequal
// dimensions produce a full repaint of b.
func (b *Buffer) Diff(prev *Buffer) []terminal.CellUpdate {
	if prev == nil || prev.width != b.width || prev.height != b.height {
		updates := make([]terminal.CellUpdate, 0, len(b.cells))
		for y := 0; y < b.height; y++ {
			row := y * b.width
			for x := 0; x < b.width; x++ {
				updates = append(updates, terminal.CellUpdate{X: x, Y: y, Cell: b.cells[row+x]})
			}
		}
		return updates
	}

	var updates []terminal.CellUpdate
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			if !b.cells[row+x].Equal(prev.cells[row+x]) {
				updates = append(updates, terminal.CellUpdate{X: x, Y: y, Cell: b.cells[row+x]})
			}
		}
	}
	return updates
}

// Apply writes a set of updates into the buffer, used to mirror an
// emitted diff into the previous-frame grid
func (b *Buffer) Apply(updates []terminal.CellUpdate) {
	for _, u := range updates {
		if u.X < 0 || u.X >= b.width || u.Y < 0 || u.Y >= b.height {
			continue
		}
		b.cells[u.Y*b.width+u.X] = u.Cell
	}
}

// CopyFrom makes b an exact copy of src, resizing as needed
func (b *Buffer) CopyFrom(src *Buffer) {
	if b.width != src.width || b.height != src.height {
		b.Resize(src.width, src.height)
	}
	copy(b.cells, src.cells)
}
