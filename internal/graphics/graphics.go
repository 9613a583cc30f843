package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"zoombox/internal/config"
)

var background = rl.NewColor(6, 8, 16, 255)

// Run opens the window described by cfg and drives the frame loop until the window is closed.
// Each frame it calls update (input, camera), then clears the screen and calls draw.
// Everything runs on this one goroutine; raylib must not be called from anywhere else.
func Run(cfg config.WindowConfig, update, draw func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := int32(cfg.Width), int32(cfg.Height)
	if cfg.Fullscreen {
		flags |= uint32(rl.FlagFullscreenMode)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, cfg.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.TargetFPS))

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
