// Package metrics provides Prometheus metrics for the decode cache and
// directory scans.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"imgview/internal/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestsTotal  prometheus.Counter
	decodesTotal   *prometheus.CounterVec
	decodeDuration prometheus.Histogram
	getsTotal      *prometheus.CounterVec
	evictionsTotal prometheus.Counter
	discardedTotal prometheus.Counter
	cacheEntries   prometheus.Gauge
	scansTotal     *prometheus.CounterVec
	scanDuration   prometheus.Histogram
	listingEntries prometheus.Gauge
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns metrics registered with the global Prometheus registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})
	return defaultMetrics
}

// NewRegistry returns metrics bound to a fresh registry. Tests use it so
// counters start from zero.
func NewRegistry() *Metrics {
	reg := prometheus.NewRegistry()
	return New(reg, reg)
}

// New creates and registers the collectors with reg.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,

		requestsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "imgview_cache_requests_total",
			Help: "Decode requests that started a new decode",
		}),
		decodesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "imgview_cache_decodes_total",
			Help: "Finished decodes by result",
		}, []string{"result"}),
		decodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgview_cache_decode_duration_seconds",
			Help:    "Time spent decoding one image",
			Buckets: prometheus.DefBuckets,
		}),
		getsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "imgview_cache_gets_total",
			Help: "Cache reads by whether the bitmap was already decoded",
		}, []string{"result"}),
		evictionsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "imgview_cache_evictions_total",
			Help: "Entries dropped by RetainOnly or Clear",
		}),
		discardedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "imgview_cache_discarded_decodes_total",
			Help: "Decodes that finished after their entry was evicted",
		}),
		cacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "imgview_cache_entries",
			Help: "Entries currently held by the decode cache",
		}),
		scansTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "imgview_scans_total",
			Help: "Directory scans by result",
		}, []string{"result"}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgview_scan_duration_seconds",
			Help:    "Time spent listing one directory",
			Buckets: prometheus.DefBuckets,
		}),
		listingEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "imgview_listing_entries",
			Help: "Images in the active directory",
		}),
	}
}

// RecordRequest counts a request that launched a decode.
func (m *Metrics) RecordRequest() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// RecordDecode records a finished decode.
func (m *Metrics) RecordDecode(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.decodesTotal.WithLabelValues(result(success)).Inc()
	m.decodeDuration.Observe(duration.Seconds())
}

// RecordGet records a cache read. ready tells whether the caller had to wait.
func (m *Metrics) RecordGet(ready bool) {
	if m == nil {
		return
	}
	label := "wait"
	if ready {
		label = "hit"
	}
	m.getsTotal.WithLabelValues(label).Inc()
}

// RecordEvictions adds n evicted entries.
func (m *Metrics) RecordEvictions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictionsTotal.Add(float64(n))
}

// RecordDiscarded counts a decode whose result was thrown away.
func (m *Metrics) RecordDiscarded() {
	if m == nil {
		return
	}
	m.discardedTotal.Inc()
}

// SetCacheEntries sets the cache size gauge.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}

// RecordScan records a directory scan and the number of images found.
func (m *Metrics) RecordScan(success bool, images int, duration time.Duration) {
	if m == nil {
		return
	}
	m.scansTotal.WithLabelValues(result(success)).Inc()
	m.scanDuration.Observe(duration.Seconds())
	if success {
		m.listingEntries.Set(float64(images))
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.LogWithFields(log.F("addr", addr)).Info("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
