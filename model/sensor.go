package model

import "fmt"

// SensorType discriminates the sensor variants a configuration document may
// declare. The type is fixed when the record is constructed and decides
// which runtime object the factory builds.
type SensorType int

const (
	SensorGyroscope SensorType = iota
	SensorAccelerometer
)

// String returns the document-tag spelling of the sensor type.
func (t SensorType) String() string {
	switch t {
	case SensorGyroscope:
		return "Gyroscope"
	case SensorAccelerometer:
		return "Accelerometer"
	default:
		return fmt.Sprintf("SensorType(%d)", int(t))
	}
}

// ParseSensorType maps a document type tag to a SensorType.
func ParseSensorType(tag string) (SensorType, bool) {
	switch tag {
	case "Gyroscope":
		return SensorGyroscope, true
	case "Accelerometer":
		return SensorAccelerometer, true
	default:
		return 0, false
	}
}

// SensorConfig is the validated static description of one sensor.
type SensorConfig struct {
	Type        SensorType
	PollingTime int  // sampling interval, milliseconds
	Position    Vec3 // mounting position, body frame
}
