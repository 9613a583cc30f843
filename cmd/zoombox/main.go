package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"zoombox/internal/config"
	"zoombox/internal/debug"
	"zoombox/internal/globe"
	"zoombox/internal/graphics"
	"zoombox/internal/logger"
	"zoombox/internal/metrics"
	"zoombox/internal/zoombox"
)

func main() {
	fs := pflag.NewFlagSet("zoombox", pflag.ExitOnError)
	config.RegisterFlags(fs)
	writeConfig := fs.String("write-config", "", "write the effective config to this path and exit")
	_ = fs.Parse(os.Args[1:])

	path, _ := fs.GetString("config")
	cfg, err := config.Load(path, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *writeConfig != "" {
		if err := config.Save(*cfg, *writeConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	lines := logger.NewAt(cfg.Log.File)
	lines.Log("zoombox session started")
	log := logger.Setup(cfg.Log.Level, cfg.Log.Format, lines)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.ListenAndServe(ctx, cfg.Metrics.Addr, prometheus.DefaultGatherer, log); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	viewer := globe.New(cfg.Camera, log)
	tool := zoombox.Start(viewer,
		zoombox.WithModifier(cfg.Modifier()),
		zoombox.WithDuration(cfg.Selection.FlyDuration),
		zoombox.WithColor(cfg.OverlayColor()),
		zoombox.WithLogger(log),
		zoombox.WithRecorder(rec),
	)
	defer tool.Destroy()

	hud := debug.New()
	hud.ShowFPS = cfg.Debug.ShowFPS
	hud.ShowCamera = cfg.Debug.ShowCamera
	hud.ShowLog = cfg.Debug.ShowLog
	hud.Camera = viewer.CameraPosition
	hud.Tail = lines.Tail

	draw := func() {
		viewer.Draw()
		hud.Draw()
	}
	log.Info("zoombox: window opening", "modifier", cfg.Selection.Modifier, "metrics", cfg.Metrics.Addr)
	graphics.Run(cfg.Window, viewer.Update, draw)
}
