package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoombox/internal/input"
)

// chdir moves into a fresh directory so no stray zoombox.yaml or .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, input.Alt, cfg.Modifier())
	assert.Equal(t, color.RGBA{B: 255, A: 128}, cfg.OverlayColor())
	assert.Equal(t, 500*time.Millisecond, cfg.Selection.FlyDuration)
}

func TestLoad_SearchesConfigDir(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	yml := "selection:\n  modifier: shift\n  fly_duration: 2s\nwindow:\n  width: 640\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "zoombox.yaml"), []byte(yml), 0644))

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, input.Shift, cfg.Modifier())
	assert.Equal(t, 2*time.Second, cfg.Selection.FlyDuration)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := chdir(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))
	t.Setenv("ZOOMBOX_LOG_LEVEL", "debug")
	t.Setenv("ZOOMBOX_SELECTION_MODIFIER", "ctrl")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, input.Ctrl, cfg.Modifier())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ZOOMBOX_METRICS_ADDR=:9191\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ZOOMBOX_METRICS_ADDR") })

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.Metrics.Addr)
}

func TestLoad_FlagsWinWhenSet(t *testing.T) {
	chdir(t)
	t.Setenv("ZOOMBOX_LOG_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--modifier", "shift", "--metrics-addr", ":9090"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, input.Shift, cfg.Modifier())
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	// unset flag does not shadow the environment
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidReportsEveryProblem(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "bad.yaml")
	yml := "selection:\n  modifier: meta\n  color: blue\nwindow:\n  width: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection.modifier")
	assert.Contains(t, err.Error(), "selection.color")
	assert.Contains(t, err.Error(), "window size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"default", func(*Config) {}, ""},
		{"none modifier", func(c *Config) { c.Selection.Modifier = "none" }, "must name a key"},
		{"negative duration", func(c *Config) { c.Selection.FlyDuration = -time.Second }, "fly_duration"},
		{"zero fov", func(c *Config) { c.Camera.FovY = 0 }, "camera.fovy"},
		{"latitude", func(c *Config) { c.Camera.Latitude = 91 }, "camera.latitude"},
		{"height", func(c *Config) { c.Camera.Height = 0 }, "camera.height"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"fps", func(c *Config) { c.Window.TargetFPS = -1 }, "target_fps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, A: 255}, c)

	c, err = ParseColor("00ff0040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 64}, c)

	_, err = ParseColor("#123")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "nested", "zoombox.yaml")

	cfg := Default()
	cfg.Selection.Modifier = "ctrl"
	cfg.Selection.FlyDuration = 1500 * time.Millisecond
	cfg.Debug.ShowFPS = true
	require.NoError(t, Save(cfg, path))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)
}
