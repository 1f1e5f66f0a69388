package render

// Widget is anything that can draw itself into a region of a buffer.
// The buffer's write primitives are the entire surface widgets see; the
// diff engine and the runtime loop stay hidden behind it.
type Widget interface {
	Render(area Rect, buf *Buffer)
}

// WidgetFunc adapts a plain function to the Widget interface
type WidgetFunc func(area Rect, buf *Buffer)

// Render implements Widget
func (f WidgetFunc) Render(area Rect, buf *Buffer) {
	f(area, buf)
}
