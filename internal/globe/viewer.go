// Package globe is the raylib-backed 3D viewer: a WGS84 globe with a graticule, an orbit
// camera, per-frame input sampling and overlay shapes. It satisfies zoombox.Viewer.
package globe

import (
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"zoombox/internal/config"
	"zoombox/internal/flight"
	"zoombox/internal/geo"
	"zoombox/internal/input"
	"zoombox/internal/overlay"
	"zoombox/internal/zoombox"
)

var _ zoombox.Viewer = (*Viewer)(nil)

// Viewer holds the camera, the input pipeline and the overlay collection. Update and Draw
// are called from the frame loop; everything else is called from input handlers running
// inside Update.
type Viewer struct {
	Camera rl.Camera3D

	ellipsoid geo.Ellipsoid
	nav       *Navigation
	hub       *input.Hub
	tracker   *input.Tracker
	shapes    *overlay.Collection
	cache     *shapeCache
	graticule []graticuleLine
	flight    *flight.Flight
	dirty     bool
	log       *slog.Logger
}

// New returns a viewer whose camera starts as described by cfg.
func New(cfg config.CameraConfig, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	e := geo.WGS84
	radius := float32(e.Radii.X / metersPerUnit)
	nav := NewNavigation(radius, float32(cfg.Longitude), float32(cfg.Latitude), float32(cfg.Height/metersPerUnit))
	v := &Viewer{
		ellipsoid: e,
		nav:       nav,
		hub:       input.NewHub(),
		shapes:    overlay.NewCollection(),
		cache:     newShapeCache(),
		graticule: buildGraticule(e),
		dirty:     true,
		log:       log,
	}
	v.tracker = input.NewTracker(v.hub)
	v.Camera.Fovy = float32(cfg.FovY)
	v.Camera.Projection = rl.CameraPerspective
	v.nav.Apply(&v.Camera)
	return v
}

// NewInputHandler returns a dispatcher fed by this viewer's pointer.
func (v *Viewer) NewInputHandler() input.Subscriber {
	return v.hub.NewDispatcher()
}

// Unproject casts a ray from the camera through p and intersects it with the ellipsoid.
func (v *Viewer) Unproject(p input.Position) (geo.Cartographic, bool) {
	ray := rl.GetScreenToWorldRay(rl.NewVector2(p.X, p.Y), v.Camera)
	return v.ellipsoid.Pick(fromScene(ray.Position), fromSceneDir(ray.Direction))
}

// SetNavigationEnabled switches the orbit camera on or off.
func (v *Viewer) SetNavigationEnabled(enabled bool) {
	if v.nav.Enabled != enabled {
		v.log.Debug("globe: navigation", "enabled", enabled)
	}
	v.nav.Enabled = enabled
}

// NavigationEnabled reports whether the orbit camera responds to input.
func (v *Viewer) NavigationEnabled() bool {
	return v.nav.Enabled
}

// RequestRender marks the overlay dirty; shapes are re-polled on the next Draw.
func (v *Viewer) RequestRender() {
	v.dirty = true
}

// Shapes is the overlay collection drawn every frame.
func (v *Viewer) Shapes() *overlay.Collection {
	return v.shapes
}

// FlyTo starts a camera flight that frames rect. A flight already in the air is cancelled.
// complete runs from Update on the frame the camera arrives.
func (v *Viewer) FlyTo(rect geo.Rectangle, d time.Duration, complete func()) flight.Canceler {
	if v.flight != nil && !v.flight.Done() {
		v.flight.Cancel()
	}
	fovY := float64(v.Camera.Fovy) * math.Pi / 180
	from := fromScene(v.Camera.Position)
	to := flight.Destination(v.ellipsoid, rect, fovY)
	v.flight = flight.New(from, to, d, complete)
	v.log.Debug("globe: flying", "rectangle", rect.String(), "duration", d)
	return v.flight
}

// CameraPosition is where the camera is, as longitude, latitude and height above the ellipsoid.
func (v *Viewer) CameraPosition() geo.Cartographic {
	return v.ellipsoid.ToCartographic(fromScene(v.Camera.Position))
}

// Update samples input, then moves the camera: the flight when one is in the air,
// otherwise the orbit navigation.
func (v *Viewer) Update() {
	mouse := rl.GetMousePosition()
	v.tracker.Sample(input.State{
		Position: input.Position{X: mouse.X, Y: mouse.Y},
		LeftDown: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Shift:    rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Ctrl:     rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl),
		Alt:      rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),
	})

	if v.flight != nil {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		pos, done := v.flight.Step(dt)
		v.pointCamera(toScene(pos))
		if done {
			v.flight = nil
			v.nav.Sync(v.Camera.Position)
		}
		return
	}
	v.nav.Update(&v.Camera)
}

// pointCamera places the camera at pos looking at the globe center with north up.
func (v *Viewer) pointCamera(pos rl.Vector3) {
	v.Camera.Position = pos
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	d := rl.Vector3Length(pos)
	if d > 0 && math.Abs(float64(pos.Y/d)) > 0.999 {
		// Looking down a pole: Y-up is degenerate, keep the prime meridian at the bottom.
		v.Camera.Up = rl.NewVector3(-1, 0, 0)
		if pos.Y < 0 {
			v.Camera.Up = rl.NewVector3(1, 0, 0)
		}
	}
}

// Draw renders the globe, graticule and overlay shapes. Call between BeginDrawing and
// EndDrawing, before any 2D HUD.
func (v *Viewer) Draw() {
	if v.dirty {
		if n := v.cache.refresh(v.ellipsoid, v.shapes); n > 0 {
			v.log.Debug("globe: re-tessellated shapes", "count", n)
		}
		v.dirty = false
	}
	rl.BeginMode3D(v.Camera)
	drawGlobe(v.ellipsoid)
	drawGraticule(v.graticule)
	v.cache.draw()
	rl.EndMode3D()
}
