package flight

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"zoombox/internal/geo"
)

// arcFactor lifts the camera mid-flight in proportion to the angle travelled, so long
// flights pull back before descending instead of skimming the surface.
const arcFactor = 0.25

// Canceler stops an in-flight animation. Cancel after completion is a no-op.
type Canceler interface {
	Cancel()
}

// Flight animates a camera position between two ECEF points over a fixed duration.
// Direction is interpolated along the great circle and distance from the center linearly,
// both with smoothstep easing. Step is driven by the frame loop.
type Flight struct {
	from, to   r3.Vec
	axis       r3.Vec
	angle      float64
	fromRadius float64
	toRadius   float64
	duration   time.Duration
	elapsed    time.Duration
	position   r3.Vec
	complete   func()
	done       bool
	cancelled  bool
}

// New returns a flight from one camera position to another. complete, if non-nil, runs
// exactly once on the Step that reaches the destination. It never runs after Cancel.
func New(from, to r3.Vec, d time.Duration, complete func()) *Flight {
	f := &Flight{
		from:       from,
		to:         to,
		fromRadius: r3.Norm(from),
		toRadius:   r3.Norm(to),
		duration:   d,
		position:   from,
		complete:   complete,
	}
	if f.fromRadius > 0 && f.toRadius > 0 {
		a, b := r3.Unit(from), r3.Unit(to)
		f.angle = math.Acos(clamp(r3.Dot(a, b), -1, 1))
		f.axis = r3.Cross(a, b)
		if r3.Norm(f.axis) < 1e-12 {
			// Same or opposite direction: any perpendicular axis works.
			f.axis = r3.Cross(a, r3.Vec{Z: 1})
			if r3.Norm(f.axis) < 1e-12 {
				f.axis = r3.Cross(a, r3.Vec{X: 1})
			}
		}
		f.axis = r3.Unit(f.axis)
	}
	return f
}

// Step advances the flight by dt and returns the new camera position. done is true once
// the destination is reached or the flight was cancelled.
func (f *Flight) Step(dt time.Duration) (r3.Vec, bool) {
	if f.done || f.cancelled {
		return f.position, true
	}
	f.elapsed += dt
	t := 1.0
	if f.duration > 0 && f.elapsed < f.duration {
		t = float64(f.elapsed) / float64(f.duration)
	}
	f.position = f.at(t)
	if t >= 1 {
		f.done = true
		if f.complete != nil {
			f.complete()
		}
	}
	return f.position, f.done
}

// at returns the position at normalized time t in [0, 1].
func (f *Flight) at(t float64) r3.Vec {
	if t >= 1 {
		return f.to
	}
	s := t * t * (3 - 2*t)
	if f.fromRadius == 0 || f.toRadius == 0 {
		return r3.Add(f.from, r3.Scale(s, r3.Sub(f.to, f.from)))
	}
	dir := r3.Rotate(r3.Unit(f.from), s*f.angle, f.axis)
	radius := f.fromRadius + s*(f.toRadius-f.fromRadius)
	radius += arcFactor * f.angle * geo.WGS84EquatorialRadius * math.Sin(math.Pi*s)
	return r3.Scale(radius, dir)
}

// Cancel stops the flight where it is. The completion callback will not run.
func (f *Flight) Cancel() {
	if f.done {
		return
	}
	f.cancelled = true
}

// Position is the camera position after the last Step.
func (f *Flight) Position() r3.Vec {
	return f.position
}

// Done reports whether the flight reached its destination or was cancelled.
func (f *Flight) Done() bool {
	return f.done || f.cancelled
}

// Cancelled reports whether Cancel stopped the flight before it completed.
func (f *Flight) Cancelled() bool {
	return f.cancelled
}

// Destination returns the ECEF camera position that frames rect when looking straight down
// at its center with vertical field of view fovY (radians). The larger of the north-south
// and east-west ground extents is fitted to the view.
func Destination(e geo.Ellipsoid, rect geo.Rectangle, fovY float64) r3.Vec {
	center := rect.Center()
	radius := e.Radii.X
	northSouth := rect.Height() * radius
	eastWest := rect.Width() * radius * math.Cos(center.Latitude)
	half := math.Max(northSouth, eastWest) / 2
	height := half / math.Tan(fovY/2)

	surface := e.ToECEF(center)
	return r3.Add(surface, r3.Scale(height, e.GeodeticNormal(center)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
