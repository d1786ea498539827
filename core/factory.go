package core

import (
	"fmt"
	"time"

	"github.com/csdc6/adcs-sim/model"
)

// DeviceFactory turns named configuration records into runtime sensor and
// actuator objects. It reads from the store and keeps no reference to what
// it builds; callers own the returned devices.
type DeviceFactory struct {
	cfg *Config

	// Metrics is optional; when set, every built device is counted.
	Metrics MetricsRecorder
}

// NewDeviceFactory constructs a factory reading from cfg.
func NewDeviceFactory(cfg *Config) *DeviceFactory {
	return &DeviceFactory{cfg: cfg}
}

// GetSensor builds the sensor configured under name. ok is false when the
// name is not configured; that is the expected steady state for components
// absent from a deployment profile, not an error.
func (f *DeviceFactory) GetSensor(name string) (Sensor, bool) {
	sc, ok := f.cfg.GetSensorConfig(name)
	if !ok {
		return nil, false
	}

	sampling := time.Duration(sc.PollingTime) * time.Millisecond

	var sensor Sensor
	switch sc.Type {
	case model.SensorGyroscope:
		sensor = NewGyroscope(sampling, sc.Position)
	case model.SensorAccelerometer:
		sensor = NewAccelerometer(sampling, sc.Position)
	default:
		// The loader admits only the types this switch handles; a record
		// with any other tag is a corrupted store.
		panic(fmt.Sprintf("sensor %q has unhandled type %v", name, sc.Type))
	}

	f.recordBuilt("sensor", sc.Type.String())
	return sensor, true
}

// GetActuator builds the actuator configured under name, with the same
// absent-name contract as GetSensor.
func (f *DeviceFactory) GetActuator(name string) (Actuator, bool) {
	ac, ok := f.cfg.GetActuatorConfig(name)
	if !ok {
		return nil, false
	}

	var actuator Actuator
	switch ac.Type {
	case model.ActuatorReactionWheel:
		wheel := ac.ReactionWheel
		minState := ActuatorState{
			Velocity:     wheel.MinAngVel,
			Acceleration: wheel.MinAngAccel,
			Position:     unboundedPositionFloor,
			Time:         0,
		}
		maxState := ActuatorState{
			Velocity:     wheel.MaxAngVel,
			Acceleration: wheel.MaxAngAccel,
			Position:     unboundedPositionCeiling,
			Time:         farFutureMilliseconds * time.Millisecond,
		}
		sampling := time.Duration(wheel.PollingTime * float64(time.Millisecond))
		actuator = NewReactionWheel(sampling, wheel.Position, wheel.AxisOfRotation, minState, maxState, wheel.MomentOfInertia)
	default:
		panic(fmt.Sprintf("actuator %q has unhandled type %v", name, ac.Type))
	}

	f.recordBuilt("actuator", ac.Type.String())
	return actuator, true
}

func (f *DeviceFactory) recordBuilt(kind, typ string) {
	if f.Metrics != nil {
		f.Metrics.RecordDeviceBuilt(kind, typ)
	}
}
