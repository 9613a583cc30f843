package globe

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"zoombox/internal/geo"
	"zoombox/internal/overlay"
)

// metersPerUnit keeps the globe inside raylib's default clip range (0.01..1000 units):
// the near plane sits at 1 km and the whole Earth fits with room to spare.
const metersPerUnit = 100_000

const (
	globeRings       = 64
	globeSlices      = 128
	graticuleStepDeg = 15
	graticuleSegs    = 96
	graticuleAlpha   = 90
	// patchSteps is the per-side tessellation of a selection patch.
	patchSteps = 16
	// patchLift raises patches above the globe's facets, in meters.
	patchLift   = 500
	outlineLift = 600
)

var (
	oceanColor     = rl.NewColor(18, 52, 96, 255)
	graticuleColor = rl.NewColor(200, 220, 255, graticuleAlpha)
	equatorColor   = rl.NewColor(255, 210, 120, 160)
)

// toScene maps ECEF meters into raylib's Y-up space: scene (x, y, z) = (X, Z, -Y).
func toScene(p r3.Vec) rl.Vector3 {
	return rl.NewVector3(
		float32(p.X/metersPerUnit),
		float32(p.Z/metersPerUnit),
		float32(-p.Y/metersPerUnit),
	)
}

// fromScene is the inverse of toScene.
func fromScene(v rl.Vector3) r3.Vec {
	return r3.Vec{
		X: float64(v.X) * metersPerUnit,
		Y: -float64(v.Z) * metersPerUnit,
		Z: float64(v.Y) * metersPerUnit,
	}
}

// fromSceneDir maps a direction without scaling.
func fromSceneDir(v rl.Vector3) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: -float64(v.Z), Z: float64(v.Y)}
}

// patch is the cached tessellation of one shape.
type patch struct {
	rect    geo.Rectangle
	color   color.RGBA
	tris    []rl.Vector3
	outline []rl.Vector3
}

// tessellate drapes rect over the ellipsoid as a grid of triangles plus a closed outline.
func tessellate(e geo.Ellipsoid, rect geo.Rectangle, c color.RGBA) patch {
	p := patch{rect: rect, color: c}
	at := func(i, j int, lift float64) rl.Vector3 {
		lon := rect.West + rect.Width()*float64(i)/patchSteps
		lat := rect.South + rect.Height()*float64(j)/patchSteps
		return toScene(e.ToECEF(geo.Cartographic{Longitude: lon, Latitude: lat, Height: lift}))
	}

	p.tris = make([]rl.Vector3, 0, patchSteps*patchSteps*6)
	for i := 0; i < patchSteps; i++ {
		for j := 0; j < patchSteps; j++ {
			sw, se := at(i, j, patchLift), at(i+1, j, patchLift)
			ne, nw := at(i+1, j+1, patchLift), at(i, j+1, patchLift)
			p.tris = append(p.tris, sw, se, ne, sw, ne, nw)
		}
	}

	p.outline = make([]rl.Vector3, 0, 4*patchSteps+1)
	for i := 0; i < patchSteps; i++ {
		p.outline = append(p.outline, at(i, 0, outlineLift))
	}
	for j := 0; j < patchSteps; j++ {
		p.outline = append(p.outline, at(patchSteps, j, outlineLift))
	}
	for i := patchSteps; i > 0; i-- {
		p.outline = append(p.outline, at(i, patchSteps, outlineLift))
	}
	for j := patchSteps; j > 0; j-- {
		p.outline = append(p.outline, at(0, j, outlineLift))
	}
	p.outline = append(p.outline, p.outline[0])
	return p
}

// draw renders the patch translucent from either side, with an opaque outline.
func (p *patch) draw() {
	rl.DisableBackfaceCulling()
	rl.DisableDepthMask()
	for i := 0; i+2 < len(p.tris); i += 3 {
		rl.DrawTriangle3D(p.tris[i], p.tris[i+1], p.tris[i+2], p.color)
	}
	rl.EnableDepthMask()
	rl.EnableBackfaceCulling()

	edge := p.color
	edge.A = 255
	for i := 0; i+1 < len(p.outline); i++ {
		rl.DrawLine3D(p.outline[i], p.outline[i+1], edge)
	}
}

// drawGlobe draws the ellipsoid as a sphere squashed along the polar (scene Y) axis.
func drawGlobe(e geo.Ellipsoid) {
	radius := float32(e.Radii.X / metersPerUnit)
	rl.PushMatrix()
	rl.Scalef(1, float32(e.Radii.Z/e.Radii.X), 1)
	rl.DrawSphereEx(rl.NewVector3(0, 0, 0), radius, globeRings, globeSlices, oceanColor)
	rl.PopMatrix()
}

// graticuleLine is one precomputed segment of the lon/lat grid.
type graticuleLine struct {
	start, end rl.Vector3
	color      color.RGBA
}

// buildGraticule computes meridians and parallels every graticuleStepDeg on the surface.
func buildGraticule(e geo.Ellipsoid) []graticuleLine {
	var lines []graticuleLine
	point := func(lonDeg, latDeg float64) rl.Vector3 {
		return toScene(e.ToECEF(geo.FromDegrees(lonDeg, latDeg)))
	}
	for lon := -180; lon < 180; lon += graticuleStepDeg {
		for k := 0; k < graticuleSegs/2; k++ {
			a := -90 + 180*float64(k)/(graticuleSegs/2)
			b := -90 + 180*float64(k+1)/(graticuleSegs/2)
			lines = append(lines, graticuleLine{point(float64(lon), a), point(float64(lon), b), graticuleColor})
		}
	}
	for lat := -90 + graticuleStepDeg; lat < 90; lat += graticuleStepDeg {
		c := graticuleColor
		if lat == 0 {
			c = equatorColor
		}
		for k := 0; k < graticuleSegs; k++ {
			a := -180 + 360*float64(k)/graticuleSegs
			b := -180 + 360*float64(k+1)/graticuleSegs
			lines = append(lines, graticuleLine{point(a, float64(lat)), point(b, float64(lat)), c})
		}
	}
	return lines
}

func drawGraticule(lines []graticuleLine) {
	for i := range lines {
		rl.DrawLine3D(lines[i].start, lines[i].end, lines[i].color)
	}
}

// shapeCache keeps one tessellated patch per visible shape, rebuilt only when the shape's
// rectangle or color changed since the last rebuild.
type shapeCache struct {
	patches map[*overlay.Shape]patch
}

func newShapeCache() *shapeCache {
	return &shapeCache{patches: make(map[*overlay.Shape]patch)}
}

// refresh polls every shape of c and updates the cache. Returns how many patches were rebuilt.
func (sc *shapeCache) refresh(e geo.Ellipsoid, c *overlay.Collection) int {
	rebuilt := 0
	seen := make(map[*overlay.Shape]bool, len(sc.patches))
	c.Each(func(s *overlay.Shape) {
		rect, ok := s.Rectangle()
		if !ok {
			return
		}
		seen[s] = true
		if old, cached := sc.patches[s]; cached && old.rect == rect && old.color == s.Color {
			return
		}
		sc.patches[s] = tessellate(e, rect, s.Color)
		rebuilt++
	})
	for s := range sc.patches {
		if !seen[s] {
			delete(sc.patches, s)
		}
	}
	return rebuilt
}

func (sc *shapeCache) draw() {
	for _, p := range sc.patches {
		p.draw()
	}
}
