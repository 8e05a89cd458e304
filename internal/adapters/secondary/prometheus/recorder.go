package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "image_ingest"

// Recorder exports ingest, render and HTTP metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	Uploads         *prometheus.CounterVec
	FilesIngested   *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	ArtifactDeletes *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload requests by outcome",
		}, []string{"outcome"}),
		FilesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files carried by upload requests, by request outcome",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent resizing and encoding one rendition",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tier"}),
		ArtifactDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_deletes_total",
			Help:      "Artifact removals during image deletion, by outcome",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status_code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(r.Uploads, r.FilesIngested, r.RenderDuration, r.ArtifactDeletes, r.HTTPRequests, r.HTTPDuration)
	return r
}

func (r *Recorder) ObserveUpload(outcome string, files int) {
	r.Uploads.WithLabelValues(outcome).Inc()
	r.FilesIngested.WithLabelValues(outcome).Add(float64(files))
}

func (r *Recorder) ObserveRender(tier string, d time.Duration) {
	r.RenderDuration.WithLabelValues(tier).Observe(d.Seconds())
}

func (r *Recorder) ObserveArtifactDelete(outcome string) {
	r.ArtifactDeletes.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
