package globe

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	orbitSensitivity = 0.005
	zoomStep         = 0.1
	maxPitch         = 1.55
	// minAltitude and maxAltitude bound the orbit, in scene units above the equatorial radius.
	minAltitude = 0.02
	maxAltitude = 2000
)

// Navigation is the default orbit camera: left-drag rotates the globe under the pointer,
// the wheel moves toward or away from the surface. It always looks at the globe center.
type Navigation struct {
	Enabled bool

	radius   float32
	yaw      float32 // longitude of the camera, radians
	pitch    float32 // geocentric latitude of the camera, radians
	distance float32 // from the globe center, scene units
}

// NewNavigation returns an enabled orbit over a globe of the given radius (scene units),
// placed above lonDeg/latDeg at altitude (scene units).
func NewNavigation(radius, lonDeg, latDeg, altitude float32) *Navigation {
	n := &Navigation{
		Enabled:  true,
		radius:   radius,
		yaw:      lonDeg * math32.Pi / 180,
		pitch:    latDeg * math32.Pi / 180,
		distance: radius + altitude,
	}
	n.clamp()
	return n
}

// Update applies this frame's mouse input and writes the resulting pose into cam.
// A disabled navigation leaves cam untouched.
func (n *Navigation) Update(cam *rl.Camera3D) {
	if !n.Enabled {
		return
	}
	// Slow down near the surface so a drag covers roughly the same ground.
	scale := (n.distance - n.radius) / n.radius
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			n.yaw -= delta.X * orbitSensitivity * scale
			n.pitch += delta.Y * orbitSensitivity * scale
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		alt := (n.distance - n.radius) * (1 - wheel*zoomStep)
		n.distance = n.radius + alt
	}
	n.clamp()
	n.Apply(cam)
}

// Apply writes the orbit pose into cam.
func (n *Navigation) Apply(cam *rl.Camera3D) {
	cp := math32.Cos(n.pitch)
	cam.Position = rl.NewVector3(
		n.distance*cp*math32.Cos(n.yaw),
		n.distance*math32.Sin(n.pitch),
		-n.distance*cp*math32.Sin(n.yaw),
	)
	cam.Target = rl.NewVector3(0, 0, 0)
	cam.Up = rl.NewVector3(0, 1, 0)
}

// Sync adopts a camera position set elsewhere (e.g. by a flight) so orbiting continues
// from there.
func (n *Navigation) Sync(pos rl.Vector3) {
	d := math32.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if d == 0 {
		return
	}
	n.distance = d
	n.pitch = math32.Asin(pos.Y / d)
	n.yaw = math32.Atan2(-pos.Z, pos.X)
	n.clamp()
}

// Altitude is the camera's distance above the equatorial radius, in scene units.
func (n *Navigation) Altitude() float32 {
	return n.distance - n.radius
}

func (n *Navigation) clamp() {
	if n.pitch > maxPitch {
		n.pitch = maxPitch
	}
	if n.pitch < -maxPitch {
		n.pitch = -maxPitch
	}
	n.yaw = math32.Mod(n.yaw, 2*math32.Pi)
	alt := n.distance - n.radius
	if alt < minAltitude {
		n.distance = n.radius + minAltitude
	}
	if alt > maxAltitude {
		n.distance = n.radius + maxAltitude
	}
}
