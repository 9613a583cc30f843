package geo

import (
	"fmt"
	"math"
)

// Cartographic is a position on (or above) the reference ellipsoid.
// Longitude and Latitude are in radians; Height is meters above the surface.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// FromDegrees returns a surface Cartographic for lon/lat given in degrees.
func FromDegrees(lonDeg, latDeg float64) Cartographic {
	return Cartographic{Longitude: toRadians(lonDeg), Latitude: toRadians(latDeg)}
}

// String formats the position in degrees, e.g. "(-2.9350°, 43.2630°)".
func (c Cartographic) String() string {
	return fmt.Sprintf("(%.4f°, %.4f°)", toDegrees(c.Longitude), toDegrees(c.Latitude))
}

// Rectangle is an axis-aligned box in longitude/latitude space, in radians.
// A finalized rectangle has West <= East and South <= North. It may be degenerate
// (zero width or height) when both corners share a longitude or latitude.
type Rectangle struct {
	West  float64
	South float64
	East  float64
	North float64
}

// RectangleFromPoints returns the bounding box of two surface points.
// No antimeridian handling: a box spanning ±180° longitude comes out as the wide way round.
func RectangleFromPoints(a, b Cartographic) Rectangle {
	return Rectangle{
		West:  math.Min(a.Longitude, b.Longitude),
		South: math.Min(a.Latitude, b.Latitude),
		East:  math.Max(a.Longitude, b.Longitude),
		North: math.Max(a.Latitude, b.Latitude),
	}
}

// RectangleFromDegrees builds a rectangle from edges given in degrees.
func RectangleFromDegrees(west, south, east, north float64) Rectangle {
	return Rectangle{
		West:  toRadians(west),
		South: toRadians(south),
		East:  toRadians(east),
		North: toRadians(north),
	}
}

// IsDegenerate reports whether the rectangle has zero width or zero height.
func (r Rectangle) IsDegenerate() bool {
	return r.West == r.East || r.South == r.North
}

// Width is the longitude span in radians.
func (r Rectangle) Width() float64 {
	return r.East - r.West
}

// Height is the latitude span in radians.
func (r Rectangle) Height() float64 {
	return r.North - r.South
}

// Center returns the midpoint of the rectangle on the surface.
func (r Rectangle) Center() Cartographic {
	return Cartographic{
		Longitude: (r.West + r.East) / 2,
		Latitude:  (r.South + r.North) / 2,
	}
}

// Contains reports whether c lies inside or on the edge of the rectangle.
func (r Rectangle) Contains(c Cartographic) bool {
	return c.Longitude >= r.West && c.Longitude <= r.East &&
		c.Latitude >= r.South && c.Latitude <= r.North
}

// Corners returns the four corners counter-clockwise starting at south-west.
func (r Rectangle) Corners() [4]Cartographic {
	return [4]Cartographic{
		{Longitude: r.West, Latitude: r.South},
		{Longitude: r.East, Latitude: r.South},
		{Longitude: r.East, Latitude: r.North},
		{Longitude: r.West, Latitude: r.North},
	}
}

// String formats the rectangle in degrees for logs.
func (r Rectangle) String() string {
	return fmt.Sprintf("[W %.4f° S %.4f° E %.4f° N %.4f°]",
		toDegrees(r.West), toDegrees(r.South), toDegrees(r.East), toDegrees(r.North))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
