package metrics

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zoombox/internal/geo"
)

const namespace = "zoombox"

// Recorder counts selection outcomes. It satisfies zoombox.Recorder.
type Recorder struct {
	DragsStarted      prometheus.Counter
	UnprojectMisses   prometheus.Counter
	Selections        *prometheus.CounterVec
	FlightsCancelled  prometheus.Counter
	SelectionAreaDeg2 prometheus.Histogram
}

// New registers the selection metrics on reg. Pass prometheus.DefaultRegisterer for the
// process-wide registry or a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		DragsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selection",
			Name:      "drags_started_total",
			Help:      "Modifier-drags started on the globe",
		}),
		UnprojectMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selection",
			Name:      "unproject_misses_total",
			Help:      "Pointer moves during a drag whose ray missed the globe",
		}),
		Selections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selection",
			Name:      "finished_total",
			Help:      "Finished drags by outcome (zoom or degenerate)",
		}, []string{"outcome"}),
		FlightsCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "camera",
			Name:      "flights_cancelled_total",
			Help:      "Zoom flights overridden by a new drag before landing",
		}),
		SelectionAreaDeg2: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "selection",
			Name:      "area_square_degrees",
			Help:      "Lon/lat area of zoomed selections in square degrees",
			Buckets:   prometheus.ExponentialBuckets(0.01, 10, 7),
		}),
	}
}

func (r *Recorder) DragStarted()     { r.DragsStarted.Inc() }
func (r *Recorder) UnprojectMissed() { r.UnprojectMisses.Inc() }
func (r *Recorder) FlightCancelled() { r.FlightsCancelled.Inc() }

func (r *Recorder) SelectionCompleted(rect geo.Rectangle) {
	r.Selections.WithLabelValues("zoom").Inc()
	const rad2deg = 180 / math.Pi
	r.SelectionAreaDeg2.Observe(rect.Width() * rad2deg * rect.Height() * rad2deg)
}

func (r *Recorder) SelectionDegenerate() {
	r.Selections.WithLabelValues("degenerate").Inc()
}

// ListenAndServe listens on addr and serves g at /metrics until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, g prometheus.Gatherer, log *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "metrics: listen %s", addr)
	}
	return Serve(ctx, ln, g, log)
}

// Serve exposes g on ln at /metrics until ctx is cancelled. It returns once the server
// has shut down and its goroutine has exited.
func Serve(ctx context.Context, ln net.Listener, g prometheus.Gatherer, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	log.Info("metrics: listening", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-errc
		return errors.Wrap(err, "metrics: shutdown")
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "metrics: serve")
	}
}
