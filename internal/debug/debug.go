package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"zoombox/internal/geo"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	logSize    = 16
	logLines   = 8
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// HUD draws debugging overlays on top of the globe. All overlays are off by default.
type HUD struct {
	ShowFPS    bool
	ShowCamera bool
	ShowLog    bool

	// Camera reports the current camera position; required for ShowCamera.
	Camera func() geo.Cartographic
	// Tail returns the most recent log lines; required for ShowLog.
	Tail func(n int) []string

	frameCount     uint32
	lastFpsText    string
	lastCameraText string
}

// New returns a HUD with all overlays hidden.
func New() *HUD {
	return &HUD{}
}

// Draw renders any enabled overlays. Call after the 3D scene in the draw loop.
// FPS and camera are drawn top-right in green, recent log lines bottom-left.
func (d *HUD) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}

	if d.ShowCamera && d.Camera != nil {
		if update || d.lastCameraText == "" {
			c := d.Camera()
			d.lastCameraText = fmt.Sprintf("%s  %.1f km", c.String(), c.Height/1000)
		}
		drawRight(d.lastCameraText, screenW, y)
	}

	if d.ShowLog && d.Tail != nil {
		lines := d.Tail(logLines)
		ly := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*(logSize+2)
		for _, line := range lines {
			rl.DrawText(line, padding, ly, logSize, rl.LightGray)
			ly += logSize + 2
		}
	}
}

func drawRight(text string, screenW, y int32) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
