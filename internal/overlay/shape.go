package overlay

import (
	"image/color"

	"zoombox/internal/geo"
)

// RectangleSource supplies a shape's rectangle. The renderer polls CurrentValue once per
// rendered frame; writers own the underlying value.
type RectangleSource interface {
	CurrentValue() geo.Rectangle
}

// SourceFunc adapts a function to RectangleSource.
type SourceFunc func() geo.Rectangle

// CurrentValue calls f.
func (f SourceFunc) CurrentValue() geo.Rectangle {
	return f()
}

// Static is a frozen rectangle.
type Static geo.Rectangle

// CurrentValue returns the frozen rectangle.
func (s Static) CurrentValue() geo.Rectangle {
	return geo.Rectangle(s)
}

// IsLive reports whether src is anything other than a Static value (or nil).
func IsLive(src RectangleSource) bool {
	if src == nil {
		return false
	}
	_, static := src.(Static)
	return !static
}

// Shape is a persistent translucent rectangle draped on the globe. It is added to a
// Collection once and then mutated in place: Show toggles drawing, Source swaps between
// a live provider and a frozen value.
type Shape struct {
	Show   bool
	Source RectangleSource
	Color  color.RGBA
}

// Rectangle returns the current rectangle and whether the shape should be drawn.
// A shape without a source, or with a degenerate rectangle, is not drawn.
func (s *Shape) Rectangle() (geo.Rectangle, bool) {
	if !s.Show || s.Source == nil {
		return geo.Rectangle{}, false
	}
	r := s.Source.CurrentValue()
	if r.IsDegenerate() {
		return r, false
	}
	return r, true
}
