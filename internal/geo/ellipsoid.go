package geo

import (
	"math"

	"github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"
	"gonum.org/v1/gonum/spatial/r3"
)

// WGS84 semi-axes in meters.
const (
	WGS84EquatorialRadius = 6378137.0
	WGS84PolarRadius      = 6356752.3142451793
)

// Ellipsoid is an oblate reference ellipsoid centered at the ECEF origin.
// Positions in ECEF are r3.Vec in meters (X toward lon 0, Z toward the north pole).
type Ellipsoid struct {
	Radii   r3.Vec
	geodesy ellipsoid.Ellipsoid
}

// WGS84 is the reference surface used by the globe and the selection tool.
var WGS84 = NewEllipsoid("WGS84", WGS84EquatorialRadius, WGS84PolarRadius)

// NewEllipsoid returns the named ellipsoid with the given semi-axes. name must be one the
// geodesy package knows (e.g. "WGS84", "GRS80"); the radii drive ray intersection only.
func NewEllipsoid(name string, equatorial, polar float64) Ellipsoid {
	return Ellipsoid{
		Radii: r3.Vec{X: equatorial, Y: equatorial, Z: polar},
		geodesy: ellipsoid.Init(name, ellipsoid.Radians, ellipsoid.Meter,
			ellipsoid.LongitudeIsSymmetric, ellipsoid.BearingIsSymmetric),
	}
}

// ToECEF converts a geodetic position to earth-centered, earth-fixed meters.
func (e Ellipsoid) ToECEF(c Cartographic) r3.Vec {
	x, y, z := e.geodesy.ToECEF(c.Latitude, c.Longitude, c.Height)
	return r3.Vec{X: x, Y: y, Z: z}
}

// ToCartographic converts an ECEF position to geodetic longitude/latitude/height.
func (e Ellipsoid) ToCartographic(p r3.Vec) Cartographic {
	lat, lon, h := e.geodesy.ToLLA(p.X, p.Y, p.Z)
	return Cartographic{Longitude: lon, Latitude: lat, Height: h}
}

// GeodeticNormal is the unit surface normal at c.
func (e Ellipsoid) GeodeticNormal(c Cartographic) r3.Vec {
	cosLat := math.Cos(c.Latitude)
	return r3.Vec{
		X: cosLat * math.Cos(c.Longitude),
		Y: cosLat * math.Sin(c.Longitude),
		Z: math.Sin(c.Latitude),
	}
}

// IntersectRay returns the nearest point in front of origin where the ray along dir meets
// the ellipsoid surface. ok is false when the ray misses or the surface is behind the origin.
// dir need not be normalized.
func (e Ellipsoid) IntersectRay(origin, dir r3.Vec) (hit r3.Vec, ok bool) {
	// Scale space so the ellipsoid becomes the unit sphere.
	o := r3.Vec{X: origin.X / e.Radii.X, Y: origin.Y / e.Radii.Y, Z: origin.Z / e.Radii.Z}
	d := r3.Vec{X: dir.X / e.Radii.X, Y: dir.Y / e.Radii.Y, Z: dir.Z / e.Radii.Z}

	a := r3.Dot(d, d)
	if a == 0 {
		return r3.Vec{}, false
	}
	b := 2 * r3.Dot(o, d)
	c := r3.Dot(o, o) - 1
	disc := b*b - 4*a*c
	if disc < 0 {
		return r3.Vec{}, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t1 < 0 {
		return r3.Vec{}, false
	}
	t := t0
	if t < 0 {
		// Origin is inside the ellipsoid.
		t = t1
	}
	return r3.Add(origin, r3.Scale(t, dir)), true
}

// Pick intersects the ray with the surface and returns the hit as a Cartographic with zero height.
func (e Ellipsoid) Pick(origin, dir r3.Vec) (Cartographic, bool) {
	p, ok := e.IntersectRay(origin, dir)
	if !ok {
		return Cartographic{}, false
	}
	c := e.ToCartographic(p)
	c.Height = 0
	return c, true
}
