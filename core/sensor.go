package core

import (
	"time"

	"github.com/csdc6/adcs-sim/model"
)

// Sensor is a runtime sensor instance built from a SensorConfig. The
// simulation loop drives sampling; this core only guarantees correct
// construction.
type Sensor interface {
	// SamplingInterval is the time between sensor polls.
	SamplingInterval() time.Duration
	// MountPosition is the sensor's mounting position in the body frame.
	MountPosition() model.Vec3
}

type sensorBase struct {
	sampling time.Duration
	position model.Vec3
}

func (s sensorBase) SamplingInterval() time.Duration { return s.sampling }
func (s sensorBase) MountPosition() model.Vec3       { return s.position }

// Gyroscope measures angular velocity about the body axes.
type Gyroscope struct {
	sensorBase
}

// NewGyroscope constructs a gyroscope from its sampling interval and
// mounting position.
func NewGyroscope(sampling time.Duration, position model.Vec3) *Gyroscope {
	return &Gyroscope{sensorBase{sampling: sampling, position: position}}
}

// Accelerometer measures linear acceleration along the body axes.
type Accelerometer struct {
	sensorBase
}

// NewAccelerometer constructs an accelerometer from its sampling interval
// and mounting position.
func NewAccelerometer(sampling time.Duration, position model.Vec3) *Accelerometer {
	return &Accelerometer{sensorBase{sampling: sampling, position: position}}
}
