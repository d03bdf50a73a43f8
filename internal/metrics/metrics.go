package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Результаты цикла для метки result.
const (
	ResultOK          = "ok"
	ResultNoop        = "noop"
	ResultModeFailed  = "mode_failed"
	ResultFetchFailed = "fetch_failed"
	ResultPanic       = "panic"
)

// Metrics: счётчики цикла бота.
type Metrics struct {
	Registry *prometheus.Registry

	CyclesTotal   *prometheus.CounterVec // labels: result
	SignalsTotal  *prometheus.CounterVec // labels: module
	AlertsTotal   *prometheus.CounterVec // labels: status=sent|failed
	CycleDuration prometheus.Histogram
	Mode          prometheus.Gauge
	LastCycleUnix prometheus.Gauge
}

// New регистрирует метрики в reg; nil: новый реестр с go/process коллекторами.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		Registry: reg,
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpi_trader_cycles_total",
			Help: "Dispatcher cycles by result",
		}, []string{"result"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpi_trader_signals_total",
			Help: "Fired rule verdicts by module",
		}, []string{"module"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpi_trader_alerts_total",
			Help: "Notifier deliveries by status",
		}, []string{"status"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rpi_trader_cycle_duration_seconds",
			Help:    "Wall time of one dispatcher cycle",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		Mode: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpi_trader_mode",
			Help: "Mode read at the last valid cycle (0 entry, 1 buy, 2 sell)",
		}),
		LastCycleUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpi_trader_last_cycle_timestamp_seconds",
			Help: "Unix time of the last finished cycle",
		}),
	}

	reg.MustRegister(
		m.CyclesTotal,
		m.SignalsTotal,
		m.AlertsTotal,
		m.CycleDuration,
		m.Mode,
		m.LastCycleUnix,
	)
	return m
}

func (m *Metrics) ObserveCycle(result string, started time.Time) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(result).Inc()
	m.CycleDuration.Observe(time.Since(started).Seconds())
	m.LastCycleUnix.Set(float64(time.Now().Unix()))
}

func (m *Metrics) Signal(module string) {
	if m == nil {
		return
	}
	m.SignalsTotal.WithLabelValues(module).Inc()
}

func (m *Metrics) Alert(err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.AlertsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) SetMode(mode int) {
	if m == nil {
		return
	}
	m.Mode.Set(float64(mode))
}
