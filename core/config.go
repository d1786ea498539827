package core

import (
	"sort"
	"sync"
	"time"

	"github.com/csdc6/adcs-sim/internal/logging"
	"github.com/csdc6/adcs-sim/model"
)

// MetricsRecorder receives configuration and factory events. The
// observability package provides the production implementation; a nil
// recorder is valid and drops everything.
type MetricsRecorder interface {
	RecordLoad(document, outcome string, seconds float64)
	SetConfiguredCounts(sensors, actuators int)
	RecordDeviceBuilt(kind, typ string)
}

// snapshot is one fully-validated document's worth of configuration. Load
// builds a snapshot off to the side and installs it in a single swap, so a
// failed load never leaves the store half-written.
type snapshot struct {
	sensors   map[string]model.SensorConfig
	actuators map[string]model.ActuatorConfig
	satellite model.SatelliteParams
}

// Config is the process-wide hardware-configuration store. It is built
// empty, populated by Load, and read-only afterwards. Construct one at
// startup and pass it by pointer to every consumer; there is no package
// level instance.
type Config struct {
	mu sync.RWMutex

	sensors   map[string]model.SensorConfig
	actuators map[string]model.ActuatorConfig
	satellite model.SatelliteParams

	// TLEReference is the time a `tle` document entry is propagated to when
	// deriving the initial satellite state. Zero means wall-clock now. Set
	// it before Load when determinism matters (tests, replays).
	TLEReference time.Time

	// Metrics is optional; when set, load outcomes and configured-device
	// counts are reported through it.
	Metrics MetricsRecorder

	// Log is optional; nil falls back to a no-op logger.
	Log logging.Logger
}

func (c *Config) log() logging.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.Noop()
}

// NewConfig constructs an empty store. Every getter returns zero values
// until the first successful Load.
func NewConfig() *Config {
	return &Config{
		sensors:   make(map[string]model.SensorConfig),
		actuators: make(map[string]model.ActuatorConfig),
	}
}

// install atomically replaces the store contents with the snapshot. The
// previous document's entries are discarded wholesale; nothing is merged.
func (c *Config) install(snap snapshot) {
	c.mu.Lock()
	c.sensors = snap.sensors
	c.actuators = snap.actuators
	c.satellite = snap.satellite
	c.mu.Unlock()

	if c.Metrics != nil {
		c.Metrics.SetConfiguredCounts(len(snap.sensors), len(snap.actuators))
	}
}

// GetSensorConfig returns the sensor record for name. The second return is
// false when the name was never configured; that is a normal condition, not
// an error.
func (c *Config) GetSensorConfig(name string) (model.SensorConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sc, ok := c.sensors[name]
	return sc, ok
}

// GetActuatorConfig returns the actuator record for name, or ok=false.
func (c *Config) GetActuatorConfig(name string) (model.ActuatorConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ac, ok := c.actuators[name]
	return ac, ok
}

// GetSensorConfigs returns a copy of the full sensor mapping. Mutating the
// returned map does not touch the store.
func (c *Config) GetSensorConfigs() map[string]model.SensorConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]model.SensorConfig, len(c.sensors))
	for name, sc := range c.sensors {
		out[name] = sc
	}
	return out
}

// GetActuatorConfigs returns a copy of the full actuator mapping.
func (c *Config) GetActuatorConfigs() map[string]model.ActuatorConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]model.ActuatorConfig, len(c.actuators))
	for name, ac := range c.actuators {
		out[name] = ac
	}
	return out
}

// GetSatelliteMoment returns the satellite moment-of-inertia matrix.
func (c *Config) GetSatelliteMoment() model.Mat3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.MomentOfInertia
}

// GetSatellitePosition returns the initial satellite position (ECEF metres).
func (c *Config) GetSatellitePosition() model.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Position
}

// GetSatelliteVelocity returns the initial satellite velocity (ECEF m/s).
func (c *Config) GetSatelliteVelocity() model.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Velocity
}

// GetTimestepInMilliseconds returns the fixed update timestep.
func (c *Config) GetTimestepInMilliseconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Timestep.FixedMs
}

// GetTimestepDecision reports whether the variable-timestep mode is on.
func (c *Config) GetTimestepDecision() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Timestep.Variable
}

// GetMinTimestep returns the lower bound for the variable timestep (ms).
func (c *Config) GetMinTimestep() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Timestep.MinMs
}

// GetMaxTimestep returns the upper bound for the variable timestep (ms).
func (c *Config) GetMaxTimestep() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.Timestep.MaxMs
}

// GetTimeout returns the simulation timeout in milliseconds.
func (c *Config) GetTimeout() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.TimeoutMs
}

// GetDesiredSatellitePosition returns the controller's target position.
func (c *Config) GetDesiredSatellitePosition() model.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.DesiredPosition
}

// GetAllowedJitter returns the controller jitter budget in deg/s.
func (c *Config) GetAllowedJitter() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.AllowedJitterDegSec
}

// GetRequiredAccuracy returns the controller pointing accuracy in degrees.
func (c *Config) GetRequiredAccuracy() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.RequiredAccuracyDeg
}

// GetHoldTime returns how long the controller must hold the target, in ms.
func (c *Config) GetHoldTime() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellite.RequiredHoldTimeMs
}

// Summary is a small description of what a Load installed, mainly for
// startup logging.
type Summary struct {
	SensorNames   []string
	ActuatorNames []string
}

// Summary lists the currently configured component names.
func (c *Config) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Summary{
		SensorNames:   make([]string, 0, len(c.sensors)),
		ActuatorNames: make([]string, 0, len(c.actuators)),
	}
	for name := range c.sensors {
		s.SensorNames = append(s.SensorNames, name)
	}
	for name := range c.actuators {
		s.ActuatorNames = append(s.ActuatorNames, name)
	}
	sort.Strings(s.SensorNames)
	sort.Strings(s.ActuatorNames)
	return s
}
