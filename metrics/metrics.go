package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type (
	Registry         = prometheus.Registry
	Registerer       = prometheus.Registerer
	Gatherer         = prometheus.Gatherer
	RegisterGatherer interface {
		Registerer
		Gatherer
	}

	CounterVec    = prometheus.CounterVec
	CounterOpts   = prometheus.CounterOpts
	GaugeOpts     = prometheus.GaugeOpts
	HistogramOpts = prometheus.HistogramOpts
)

var (
	NewCounterVec   = prometheus.NewCounterVec
	NewGauge        = prometheus.NewGauge
	NewHistogramVec = prometheus.NewHistogramVec
	NewRegistry     = prometheus.NewRegistry

	// Default registry includes go runtime and process collectors.
	Default = NewDefault()
)

func NewDefault() *Registry {
	r := NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

//

// LabelUnknown replaces label values which are not from a fixed set.
const LabelUnknown = "unknown"

// Conversions counts format conversions performed by the service.
type Conversions struct {
	Total *CounterVec
}

func NewConversions(r Registerer) *Conversions {
	c := &Conversions{
		Total: NewCounterVec(CounterOpts{
			Name: "conversions_total",
			Help: "Total number of format conversions by source, target and status.",
		}, []string{"from", "to", "status"}),
	}
	r.MustRegister(c.Total)
	return c
}

func (c *Conversions) Observe(from string, to string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Total.WithLabelValues(from, to, status).Inc()
}
