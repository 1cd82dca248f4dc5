package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"swtd/internal/services"
	"swtd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncTicks(channel string)
	AddSweepDeleted(days, weeks int)
	SetWatcherRunning(running bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	ticksTotal          *prometheus.CounterVec
	sweepDeleted        *prometheus.CounterVec
	watcherRunning      prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncTicks(channel string) {
	m.ticksTotal.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) AddSweepDeleted(days, weeks int) {
	m.sweepDeleted.WithLabelValues("day").Add(float64(days))
	m.sweepDeleted.WithLabelValues("week").Add(float64(weeks))
}

func (m *MetricsProvider) SetWatcherRunning(running bool) {
	if running {
		m.watcherRunning.Set(1)
	} else {
		m.watcherRunning.Set(0)
	}
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.TrackerServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swtd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swtd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "swtd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "swtd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "swtd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		ticksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swtd_ticks_total",
			Help: "Total number of accumulated watch-time ticks",
		}, []string{"channel"}),

		sweepDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swtd_sweep_deleted_buckets_total",
			Help: "Total number of buckets removed by retention sweeps",
		}, []string{"kind"}),

		watcherRunning: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "swtd_watcher_running",
			Help: "Whether the channel watcher poll loop is running",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "swtd_buckets_total",
		Help: "Current number of stored buckets, all-time totals included",
	}, func() float64 {
		return float64(service.BucketCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "swtd_channels_total",
		Help: "Total number of tracked channels",
	}, func() float64 {
		return float64(len(service.GetChannels()))
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncTicks(_ string)                                {}
func (n *noopMetrics) AddSweepDeleted(_, _ int)                         {}
func (n *noopMetrics) SetWatcherRunning(_ bool)                         {}
