package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRectangleFromPoints(t *testing.T) {
	a := Cartographic{Longitude: 0.3, Latitude: -0.1}
	b := Cartographic{Longitude: -0.1, Latitude: 0.2}

	for _, r := range []Rectangle{RectangleFromPoints(a, b), RectangleFromPoints(b, a)} {
		assert.Equal(t, -0.1, r.West)
		assert.Equal(t, -0.1, r.South)
		assert.Equal(t, 0.3, r.East)
		assert.Equal(t, 0.2, r.North)
		assert.False(t, r.IsDegenerate())
	}
}

func TestRectangleDegenerate(t *testing.T) {
	p := Cartographic{Longitude: 0.1, Latitude: 0.2}
	assert.True(t, RectangleFromPoints(p, p).IsDegenerate())

	sameLon := RectangleFromPoints(p, Cartographic{Longitude: 0.1, Latitude: 0.5})
	assert.True(t, sameLon.IsDegenerate())

	assert.True(t, Rectangle{}.IsDegenerate())
}

func TestRectangleHelpers(t *testing.T) {
	r := Rectangle{West: -0.2, South: 0.1, East: 0.4, North: 0.3}
	assert.InDelta(t, 0.6, r.Width(), 1e-12)
	assert.InDelta(t, 0.2, r.Height(), 1e-12)

	c := r.Center()
	assert.InDelta(t, 0.1, c.Longitude, 1e-12)
	assert.InDelta(t, 0.2, c.Latitude, 1e-12)
	assert.True(t, r.Contains(c))
	assert.False(t, r.Contains(Cartographic{Longitude: 0.5, Latitude: 0.2}))

	corners := r.Corners()
	assert.Equal(t, Cartographic{Longitude: -0.2, Latitude: 0.1}, corners[0])
	assert.Equal(t, Cartographic{Longitude: -0.2, Latitude: 0.3}, corners[3])
}

func TestRectangleAntimeridianIsWide(t *testing.T) {
	// Known limitation: the box is the min/max of longitudes, not the short way across ±180°.
	r := RectangleFromPoints(FromDegrees(179, 0), FromDegrees(-179, 1))
	assert.InDelta(t, toRadians(358), r.Width(), 1e-9)
}

func TestIntersectRayHitsFromOutside(t *testing.T) {
	origin := r3.Vec{X: 3 * WGS84EquatorialRadius}
	hit, ok := WGS84.IntersectRay(origin, r3.Vec{X: -1})
	require.True(t, ok)
	assert.InDelta(t, WGS84EquatorialRadius, hit.X, 1e-6)
	assert.InDelta(t, 0, hit.Y, 1e-6)
	assert.InDelta(t, 0, hit.Z, 1e-6)
}

func TestIntersectRayPolar(t *testing.T) {
	origin := r3.Vec{Z: 2 * WGS84PolarRadius}
	hit, ok := WGS84.IntersectRay(origin, r3.Vec{Z: -5})
	require.True(t, ok)
	assert.InDelta(t, WGS84PolarRadius, hit.Z, 1e-6)
}

func TestIntersectRayMisses(t *testing.T) {
	origin := r3.Vec{X: 3 * WGS84EquatorialRadius}

	// Pointing away from the globe.
	_, ok := WGS84.IntersectRay(origin, r3.Vec{X: 1})
	assert.False(t, ok)

	// Passing beside the globe into open space.
	_, ok = WGS84.IntersectRay(origin, r3.Vec{Y: 1})
	assert.False(t, ok)

	// Zero direction.
	_, ok = WGS84.IntersectRay(origin, r3.Vec{})
	assert.False(t, ok)
}

func TestIntersectRayFromInside(t *testing.T) {
	hit, ok := WGS84.IntersectRay(r3.Vec{}, r3.Vec{Y: 1})
	require.True(t, ok)
	assert.InDelta(t, WGS84EquatorialRadius, hit.Y, 1e-6)
}

func TestECEFRoundTrip(t *testing.T) {
	for _, c := range []Cartographic{
		{Longitude: 0, Latitude: 0},
		{Longitude: 0.3, Latitude: 0.2},
		{Longitude: -2.5, Latitude: -1.1},
		{Longitude: 1.2, Latitude: 0.7, Height: 1500},
	} {
		p := WGS84.ToECEF(c)
		back := WGS84.ToCartographic(p)
		assert.InDelta(t, c.Longitude, back.Longitude, 1e-6, "lon for %v", c)
		assert.InDelta(t, c.Latitude, back.Latitude, 1e-6, "lat for %v", c)
		assert.InDelta(t, c.Height, back.Height, 1.0, "height for %v", c)
	}
}

func TestPickReturnsSurfacePoint(t *testing.T) {
	want := Cartographic{Longitude: 0.4, Latitude: 0.25}
	n := WGS84.GeodeticNormal(want)
	origin := r3.Add(WGS84.ToECEF(want), r3.Scale(1e6, n))

	got, ok := WGS84.Pick(origin, r3.Scale(-1, n))
	require.True(t, ok)
	assert.InDelta(t, want.Longitude, got.Longitude, 1e-6)
	assert.InDelta(t, want.Latitude, got.Latitude, 1e-6)
	assert.Zero(t, got.Height)
}

func TestGeodeticNormalIsUnit(t *testing.T) {
	n := WGS84.GeodeticNormal(Cartographic{Longitude: 1, Latitude: -0.5})
	assert.InDelta(t, 1, r3.Norm(n), 1e-12)
	assert.InDelta(t, math.Sin(-0.5), n.Z, 1e-12)
}

func TestFromDegrees(t *testing.T) {
	c := FromDegrees(180, -90)
	assert.InDelta(t, math.Pi, c.Longitude, 1e-12)
	assert.InDelta(t, -math.Pi/2, c.Latitude, 1e-12)
	assert.Equal(t, "(180.0000°, -90.0000°)", c.String())
}
