package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// Evaluations counts cost-function invocations by strategy.
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hubopt_evaluations_total", Help: "Cost function evaluations."},
		[]string{"strategy"},
	)
	// ClimbIterations records hill-climb rounds per scenario.
	ClimbIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubopt_climb_iterations",
			Help:    "Hill climb rounds per scenario.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"strategy"},
	)
	// ScenarioDuration records wall time of a scenario in seconds.
	ScenarioDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "hubopt_scenario_duration_seconds", Help: "Scenario duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"strategy"},
	)
	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hubopt_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// ResultCache counts cache lookups by result (hit, miss, error).
	ResultCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hubopt_result_cache_total", Help: "Result cache lookups."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(ClimbIterations)
		Registry.MustRegister(ScenarioDuration)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(ResultCache)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func ObserveScenario(strategy string, evaluations int64, iterations int, dur time.Duration) {
	Evaluations.WithLabelValues(strategy).Add(float64(evaluations))
	ClimbIterations.WithLabelValues(strategy).Observe(float64(iterations))
	ScenarioDuration.WithLabelValues(strategy).Observe(dur.Seconds())
}

// Handler exposes Registry for scraping.
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
