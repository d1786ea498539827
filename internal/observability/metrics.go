// Package observability bundles the Prometheus metrics and OpenTelemetry
// tracing used by the simulator's configuration core.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ConfigCollector bundles Prometheus metrics for configuration loading and
// device construction. It satisfies core.MetricsRecorder.
type ConfigCollector struct {
	gatherer prometheus.Gatherer

	Loads         *prometheus.CounterVec
	LoadDurations *prometheus.HistogramVec
	DevicesBuilt  *prometheus.CounterVec

	ConfiguredSensors   prometheus.Gauge
	ConfiguredActuators prometheus.Gauge
}

// NewConfigCollector registers configuration metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewConfigCollector(reg prometheus.Registerer) (*ConfigCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "config_loads_total",
		Help: "Configuration document loads, labeled by document (primary/exit) and outcome.",
	}, []string{"document", "outcome"})
	loads, err := registerCounterVec(reg, loads, "config_loads_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "config_load_duration_seconds",
		Help:    "Configuration document load latency in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"document"})
	durations, err = registerHistogramVec(reg, durations, "config_load_duration_seconds")
	if err != nil {
		return nil, err
	}

	built := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "devices_built_total",
		Help: "Runtime devices constructed by the factory, labeled by kind and type.",
	}, []string{"kind", "type"})
	built, err = registerCounterVec(reg, built, "devices_built_total")
	if err != nil {
		return nil, err
	}

	sensors, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "configured_sensors",
		Help: "Number of sensors in the currently loaded configuration.",
	}), "configured_sensors")
	if err != nil {
		return nil, err
	}
	actuators, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "configured_actuators",
		Help: "Number of actuators in the currently loaded configuration.",
	}), "configured_actuators")
	if err != nil {
		return nil, err
	}

	return &ConfigCollector{
		gatherer:            gatherer,
		Loads:               loads,
		LoadDurations:       durations,
		DevicesBuilt:        built,
		ConfiguredSensors:   sensors,
		ConfiguredActuators: actuators,
	}, nil
}

// RecordLoad counts one load attempt and observes its latency. Satisfies
// core.MetricsRecorder.
func (c *ConfigCollector) RecordLoad(document, outcome string, seconds float64) {
	if c == nil {
		return
	}
	if c.Loads != nil {
		c.Loads.WithLabelValues(document, outcome).Inc()
	}
	if c.LoadDurations != nil {
		c.LoadDurations.WithLabelValues(document).Observe(seconds)
	}
}

// SetConfiguredCounts sets the configured-device gauges after a successful
// load. Satisfies core.MetricsRecorder.
func (c *ConfigCollector) SetConfiguredCounts(sensors, actuators int) {
	if c == nil {
		return
	}
	if c.ConfiguredSensors != nil {
		c.ConfiguredSensors.Set(float64(sensors))
	}
	if c.ConfiguredActuators != nil {
		c.ConfiguredActuators.Set(float64(actuators))
	}
}

// RecordDeviceBuilt counts one factory construction. Satisfies
// core.MetricsRecorder.
func (c *ConfigCollector) RecordDeviceBuilt(kind, typ string) {
	if c == nil || c.DevicesBuilt == nil {
		return
	}
	c.DevicesBuilt.WithLabelValues(kind, typ).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ConfigCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
