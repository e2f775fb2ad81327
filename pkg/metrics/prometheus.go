package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	seriesLoads   *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	rebuilds      *prometheus.CounterVec
	datasetRows   *prometheus.GaugeVec
	errorsTotal   *prometheus.CounterVec
	loadLatency   *prometheus.HistogramVec
	recomputeTime *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		seriesLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pktvisor_series_loads_total",
				Help: "Series reads that went to the backing source",
			},
			[]string{"symbol"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pktvisor_series_cache_hits_total",
				Help: "Series reads served from the session cache",
			},
			[]string{"symbol"},
		),
		rebuilds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pktvisor_dataset_rebuilds_total",
				Help: "Pair dataset rebuilds triggered by symbol changes",
			},
			[]string{"pair"},
		),
		datasetRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pktvisor_dataset_rows",
				Help: "Row count of the most recently built dataset per pair",
			},
			[]string{"pair"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pktvisor_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		loadLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pktvisor_series_load_seconds",
				Help:    "Duration of backing-source series loads",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
		recomputeTime: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pktvisor_recompute_seconds",
				Help:    "Duration of pipeline recomputes",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSeriesLoad records a source read and its duration.
func (r *Recorder) RecordSeriesLoad(symbol string, seconds float64) {
	r.seriesLoads.WithLabelValues(symbol).Inc()
	r.loadLatency.WithLabelValues(symbol).Observe(seconds)
}

// RecordCacheHit records a series read answered from cache.
func (r *Recorder) RecordCacheHit(symbol string) {
	r.cacheHits.WithLabelValues(symbol).Inc()
}

// RecordRebuild records a dataset rebuild for a pair.
func (r *Recorder) RecordRebuild(sym1, sym2 string, rows int, seconds float64) {
	pair := sym1 + "/" + sym2
	r.rebuilds.WithLabelValues(pair).Inc()
	r.datasetRows.WithLabelValues(pair).Set(float64(rows))
	r.recomputeTime.WithLabelValues("rebuild").Observe(seconds)
}

// RecordSummarize records a statistics recompute.
func (r *Recorder) RecordSummarize(rows int, seconds float64) {
	r.recomputeTime.WithLabelValues("summarize").Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
