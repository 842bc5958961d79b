package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	registerOnce            sync.Once
	serverOnce              sync.Once
	metricsRouter           *chi.Mux
	chainClientLatency      *prometheus.HistogramVec
	pollerDurationHistogram *prometheus.HistogramVec
	persistOutcomeCounter   *prometheus.CounterVec
	aprPercentageGauge      prometheus.Gauge
	totalStakedGauge        prometheus.Gauge
	validatorCountGauge     prometheus.Gauge
)

// Init registers the collectors and starts the metrics server. Used by the
// daemon; one-shot runs call RegisterCollectors and skip the server.
func Init(metricsAddr string) {
	serverOnce.Do(func() {
		RegisterCollectors()
		initMetricsRouter(metricsAddr)
	})
}

// RegisterCollectors registers the Prometheus collectors without starting the
// metrics server.
func RegisterCollectors() {
	registerOnce.Do(registerMetrics)
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsAddr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	chainClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_client_latency_seconds",
			Help:    "Histogram of chain REST client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	persistOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_persist_outcome_count",
			Help: "Number of persist attempts split by outcome (written, skipped, failed).",
		},
		[]string{"outcome"},
	)

	aprPercentageGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_apr_percentage",
			Help: "Last calculated staking APR percentage.",
		},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_total_staked",
			Help: "Last calculated total staked amount in display units.",
		},
	)

	validatorCountGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_active_validator_count",
			Help: "Last fetched number of bonded validators.",
		},
	)

	prometheus.MustRegister(
		chainClientLatency,
		pollerDurationHistogram,
		persistOutcomeCounter,
		aprPercentageGauge,
		totalStakedGauge,
		validatorCountGauge,
	)
}

func RecordChainClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	chainClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordPersistOutcome(outcome string) {
	persistOutcomeCounter.WithLabelValues(outcome).Inc()
}

// RecordCalculatedStats exports the latest derived values. Absent metrics
// leave the corresponding gauge at its previous value.
func RecordCalculatedStats(aprPercentage, totalStaked *float64, validatorCount *int64) {
	if aprPercentage != nil {
		aprPercentageGauge.Set(*aprPercentage)
	}
	if totalStaked != nil {
		totalStakedGauge.Set(*totalStaked)
	}
	if validatorCount != nil {
		validatorCountGauge.Set(float64(*validatorCount))
	}
}
