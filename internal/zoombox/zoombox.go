// Package zoombox implements modifier-drag rectangle selection on a 3D globe. While the
// modifier is held, a left-drag paints a translucent lon/lat rectangle over the globe;
// on release the camera flies to frame it and the rectangle fades once the flight lands.
//
// The tool owns camera input for the duration of a drag: default navigation is switched
// off on press and always switched back on at release, on destroy, or on any internal
// failure.
package zoombox

import (
	"time"

	"zoombox/internal/flight"
	"zoombox/internal/geo"
	"zoombox/internal/input"
	"zoombox/internal/overlay"
)

// Viewer is what the selection tool needs from the host's 3D viewer. All methods are
// called from the viewer's frame loop.
type Viewer interface {
	// NewInputHandler returns a fresh subscriber attached to the viewer's canvas.
	NewInputHandler() input.Subscriber
	// Unproject casts a ray through the pixel and returns where it meets the globe surface.
	// ok is false when the ray misses.
	Unproject(p input.Position) (c geo.Cartographic, ok bool)
	// SetNavigationEnabled switches the default camera controller on or off.
	SetNavigationEnabled(enabled bool)
	// RequestRender marks the scene dirty so the next frame redraws it.
	RequestRender()
	// Shapes is the viewer's persistent overlay collection.
	Shapes() *overlay.Collection
	// FlyTo animates the camera to frame rect over d and calls complete when it lands.
	FlyTo(rect geo.Rectangle, d time.Duration, complete func()) flight.Canceler
}

// Handle is a running selection tool. It holds all selection state; create it with Start.
type Handle struct {
	viewer Viewer
	opts   options
	input  input.Subscriber
	shape  *overlay.Shape
	live   overlay.RectangleSource

	dragging       bool
	anchorSet      bool
	anchor         geo.Cartographic
	rectangle      geo.Rectangle
	overlayVisible bool

	flight     flight.Canceler
	generation uint64
	destroyed  bool
}

// Start attaches the selection tool to v. With a nil viewer it returns an inert handle
// whose Destroy does nothing.
func Start(v Viewer, opts ...Option) *Handle {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	h := &Handle{opts: o}
	if v == nil {
		o.log.Warn("zoombox: no viewer, selection disabled")
		return h
	}
	h.viewer = v
	h.live = overlay.SourceFunc(func() geo.Rectangle { return h.rectangle })
	h.shape = &overlay.Shape{Show: false, Source: h.live, Color: o.color}
	if shapes := v.Shapes(); shapes != nil {
		shapes.Add(h.shape)
	}

	h.input = v.NewInputHandler()
	if h.input == nil {
		o.log.Warn("zoombox: viewer returned no input handler, selection disabled")
		return h
	}
	m := o.modifier
	h.input.SetInputAction(input.LeftDown, m, h.guard(h.begin))
	h.input.SetInputAction(input.MouseMove, m, h.guard(h.track))
	h.input.SetInputAction(input.LeftUp, m, h.guard(h.release))
	// Modifier let go before the button.
	h.input.SetInputAction(input.LeftUp, input.None, h.guard(h.release))
	h.input.SetInputAction(input.LeftClick, input.None, h.guard(h.click))

	o.log.Info("zoombox: started", "modifier", m.String(), "duration", o.duration)
	return h
}

// Destroy detaches every input subscription and removes the overlay from the viewer.
// If a drag is in progress default navigation is restored. An in-flight zoom is left
// to land but its completion no longer touches the removed overlay.
// Safe to call more than once and on a nil or inert handle.
func (h *Handle) Destroy() {
	if h == nil || h.destroyed {
		return
	}
	h.destroyed = true
	if h.viewer == nil {
		return
	}
	if h.dragging {
		h.viewer.SetNavigationEnabled(true)
		h.dragging = false
		h.anchorSet = false
	}
	if h.input != nil {
		h.input.Destroy()
		h.input = nil
	}
	if shapes := h.viewer.Shapes(); shapes != nil && shapes.Contains(h.shape) {
		shapes.Remove(h.shape)
	}
	h.flight = nil
	h.viewer.RequestRender()
	h.opts.log.Info("zoombox: destroyed")
}

// guard wraps a handler so a panic inside it resets the tool to idle instead of
// unwinding into the host's frame loop.
func (h *Handle) guard(fn input.Handler) input.Handler {
	return func(e input.Event) {
		defer func() {
			if r := recover(); r != nil {
				h.opts.log.Error("zoombox: handler failed, resetting", "panic", r)
				h.reset()
			}
		}()
		if h.destroyed {
			return
		}
		fn(e)
	}
}

// reset returns to idle: flags cleared, overlay hidden, navigation on.
func (h *Handle) reset() {
	h.dragging = false
	h.anchorSet = false
	h.setVisible(false)
	h.viewer.SetNavigationEnabled(true)
	h.viewer.RequestRender()
}

// begin handles a modifier-qualified press.
func (h *Handle) begin(e input.Event) {
	h.generation++
	if h.flight != nil {
		// A new drag overrides the zoom still flying from the previous one.
		h.flight.Cancel()
		h.flight = nil
		h.opts.recorder.FlightCancelled()
		h.opts.log.Debug("zoombox: cancelled previous zoom")
	}

	h.dragging = true
	h.anchorSet = false
	h.rectangle = geo.Rectangle{}
	h.setVisible(false)

	h.viewer.SetNavigationEnabled(false)
	h.shape.Source = h.live
	h.viewer.RequestRender()

	h.opts.recorder.DragStarted()
	h.opts.log.Debug("zoombox: drag started", "x", e.Position.X, "y", e.Position.Y)
}

// track handles a modifier-qualified move. The first surface hit becomes the anchor;
// later hits grow the rectangle. Misses leave everything as it was.
func (h *Handle) track(e input.Event) {
	if !h.dragging {
		return
	}
	c, ok := h.viewer.Unproject(e.EndPosition)
	if !ok {
		h.opts.recorder.UnprojectMissed()
		return
	}
	if !h.anchorSet {
		h.anchor = c
		h.anchorSet = true
		h.opts.log.Debug("zoombox: anchor set", "anchor", c.String())
		return
	}

	h.rectangle = geo.RectangleFromPoints(h.anchor, c)
	h.setVisible(true)
	h.viewer.RequestRender()
}

// release handles both the qualified and the unqualified release.
func (h *Handle) release(input.Event) {
	if !h.dragging {
		return
	}
	h.finalize()
}

func (h *Handle) finalize() {
	h.viewer.SetNavigationEnabled(true)

	rect := h.rectangle
	h.shape.Source = overlay.Static(rect)

	if h.anchorSet && !rect.IsDegenerate() {
		gen := h.generation
		landed := false
		c := h.viewer.FlyTo(rect, h.opts.duration, func() {
			landed = true
			if h.destroyed || gen != h.generation {
				return
			}
			h.flight = nil
			h.setVisible(false)
			h.viewer.RequestRender()
		})
		if !landed {
			h.flight = c
		}
		h.opts.recorder.SelectionCompleted(rect)
		h.opts.log.Info("zoombox: zooming to selection", "rectangle", rect.String())
	} else {
		h.setVisible(false)
		h.opts.recorder.SelectionDegenerate()
		h.opts.log.Debug("zoombox: empty selection, no zoom")
	}
	h.viewer.RequestRender()

	h.dragging = false
	h.anchorSet = false
}

// click handles a plain click: hide the overlay and clear drag state.
func (h *Handle) click(input.Event) {
	wasDragging := h.dragging
	h.dragging = false
	h.anchorSet = false
	h.setVisible(false)
	if wasDragging {
		// Release should have finalized already; never leave navigation off.
		h.viewer.SetNavigationEnabled(true)
	}
	h.viewer.RequestRender()
}

func (h *Handle) setVisible(v bool) {
	h.overlayVisible = v
	h.shape.Show = v
}
