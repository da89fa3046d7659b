package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
)

// Metrics holds the Prometheus collectors of the scoring API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Calculations *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	BatchItems   *prometheus.CounterVec
}

// NewMetrics creates the collectors on a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskcalc_calculations_total",
				Help: "Total number of successful risk calculations by method and category",
			},
			[]string{"method", "category"},
		),

		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskcalc_calculation_failures_total",
				Help: "Total number of failed risk calculations by error kind",
			},
			[]string{"kind"},
		),

		BatchItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskcalc_batch_items_total",
				Help: "Total number of processed batch items by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.Calculations,
		m.Failures,
		m.BatchItems,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// export zero-valued series for every method/category pair
	for _, method := range types.AllMethods() {
		for _, category := range types.AllCategories() {
			m.Calculations.WithLabelValues(method.String(), category.String())
		}
	}

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeResult(result *model.RiskResult) {
	if m == nil || result == nil {
		return
	}
	m.Calculations.WithLabelValues(result.Method.String(), result.Category.String()).Inc()
}

func (m *Metrics) observeFailure(err error) {
	if m == nil || err == nil {
		return
	}
	m.Failures.WithLabelValues(failureKind(err)).Inc()
}

func (m *Metrics) observeBatch(result *model.BatchResult) {
	if m == nil || result == nil {
		return
	}
	for _, entry := range result.Results {
		m.observeResult(entry.Result)
	}
	for _, e := range result.Errors {
		m.observeFailure(e.Err)
	}
	m.BatchItems.WithLabelValues("ok").Add(float64(len(result.Results)))
	m.BatchItems.WithLabelValues("error").Add(float64(len(result.Errors)))
}

func failureKind(err error) string {
	switch {
	case usecase.IsValidationError(err):
		return "validation"
	case usecase.IsComputationError(err):
		return "computation"
	default:
		return "unknown"
	}
}
