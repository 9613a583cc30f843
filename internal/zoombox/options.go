package zoombox

import (
	"image/color"
	"io"
	"log/slog"
	"time"

	"zoombox/internal/geo"
	"zoombox/internal/input"
)

const (
	// DefaultDuration is how long the camera takes to fly to a completed selection.
	DefaultDuration = 500 * time.Millisecond
	// DefaultModifier is the key that must be held for a drag to select.
	DefaultModifier = input.Alt
)

// DefaultColor is translucent blue.
var DefaultColor = color.RGBA{R: 0, G: 0, B: 255, A: 128}

// Recorder observes selection outcomes. metrics.Recorder implements it.
type Recorder interface {
	DragStarted()
	UnprojectMissed()
	SelectionCompleted(r geo.Rectangle)
	SelectionDegenerate()
	FlightCancelled()
}

type nopRecorder struct{}

func (nopRecorder) DragStarted() {}
func (nopRecorder) UnprojectMissed() {}
func (nopRecorder) SelectionCompleted(geo.Rectangle) {}
func (nopRecorder) SelectionDegenerate() {}
func (nopRecorder) FlightCancelled() {}

type options struct {
	modifier input.Modifier
	duration time.Duration
	color    color.RGBA
	log      *slog.Logger
	recorder Recorder
}

func defaultOptions() options {
	return options{
		modifier: DefaultModifier,
		duration: DefaultDuration,
		color:    DefaultColor,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
	}
}

// Option configures Start.
type Option func(*options)

// WithModifier sets the key that qualifies press, move and release. input.None is ignored
// because unqualified events belong to default navigation.
func WithModifier(m input.Modifier) Option {
	return func(o *options) {
		if m != input.None {
			o.modifier = m
		}
	}
}

// WithDuration sets the fly-to duration. Negative values are treated as zero.
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		o.duration = max(d, 0)
	}
}

// WithColor sets the overlay fill color.
func WithColor(c color.RGBA) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithLogger sets the logger. nil keeps the default, which discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRecorder sets the outcome observer. nil keeps the no-op default.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}
