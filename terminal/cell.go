package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Style groups the visual attributes of a cell
type Style struct {
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Cell represents a single terminal cell.
// Width is the display width of Rune: 1 for ordinary characters, 2 for
// wide (east-asian) glyphs, 0 for the shadowed continuation cell that
// sits under the right half of a wide glyph.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
	Width uint8
}

// DefaultCell is what every buffer position holds before being written:
// a plain space with no attributes.
var DefaultCell = Cell{Rune: ' ', Width: 1}

// Style returns the cell's visual attributes without its content.
func (c Cell) Style() Style {
	return Style{Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs}
}

// WithStyle returns a copy of the cell carrying the given style.
func (c Cell) WithStyle(s Style) Cell {
	c.Fg = s.Fg
	c.Bg = s.Bg
	c.Attrs = s.Attrs
	return c
}

// Equal compares two cells for equality (standalone for inlining)
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Attrs == other.Attrs &&
		c.Width == other.Width &&
		c.Fg == other.Fg &&
		c.Bg == other.Bg
}

// CellUpdate is one record of a buffer diff: the cell now at (X, Y).
// A diff pass yields these ordered by row then column so the output
// writer can skip cursor repositioning for adjacent changes.
type CellUpdate struct {
	X, Y int
	Cell Cell
}
