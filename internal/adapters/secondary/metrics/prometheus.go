package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "news_search"

// Prometheus records service metrics on its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetRows     prometheus.Gauge
	datasetLoads    *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	exportedRows    *prometheus.CounterVec
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the currently loaded dataset.",
		}),
		datasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading the dataset.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		exportedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_rows_total",
			Help:      "Rows written by exports, by format.",
		}, []string{"format"}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.requests, p.requestDuration, p.datasetRows,
		p.datasetLoads, p.loadDuration, p.exportedRows,
	)
	return p
}

func (p *Prometheus) ObserveLoad(success bool, rows int, duration time.Duration) {
	p.loadDuration.Observe(duration.Seconds())
	if !success {
		p.datasetLoads.WithLabelValues("failure").Inc()
		return
	}
	p.datasetLoads.WithLabelValues("success").Inc()
	p.datasetRows.Set(float64(rows))
}

func (p *Prometheus) ObserveExport(format string, rows int) {
	p.exportedRows.WithLabelValues(format).Add(float64(rows))
}

// ObserveRequest records one completed HTTP request.
func (p *Prometheus) ObserveRequest(route, method string, status int, duration time.Duration) {
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
