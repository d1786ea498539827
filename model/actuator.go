package model

import "fmt"

// ActuatorType discriminates the actuator variants. Reaction wheels are the
// only variant today; magnetorquers and thrusters would slot in the same way.
type ActuatorType int

const (
	ActuatorReactionWheel ActuatorType = iota
)

// String returns the document-tag spelling of the actuator type.
func (t ActuatorType) String() string {
	switch t {
	case ActuatorReactionWheel:
		return "ReactionWheel"
	default:
		return fmt.Sprintf("ActuatorType(%d)", int(t))
	}
}

// ParseActuatorType maps a document type tag to an ActuatorType.
func ParseActuatorType(tag string) (ActuatorType, bool) {
	switch tag {
	case "ReactionWheel":
		return ActuatorReactionWheel, true
	default:
		return 0, false
	}
}

// ReactionWheelConfig carries the wheel-specific fields of an actuator entry.
type ReactionWheelConfig struct {
	MomentOfInertia float64 // about the rotation axis, > 0
	MaxAngVel       float64
	MinAngVel       float64
	MaxAngAccel     float64
	MinAngAccel     float64
	PollingTime     float64 // sampling interval, milliseconds
	Position        Vec3    // mounting position, body frame
	AxisOfRotation  Vec3    // conventionally unit length
	Velocity        float64 // initial angular velocity
	Acceleration    float64 // initial angular acceleration
}

// ActuatorConfig is the validated static description of one actuator.
// Type selects which variant payload is meaningful; the payload is held by
// value so records copy cleanly and readers can never reach back into a
// shared handle.
type ActuatorConfig struct {
	Type          ActuatorType
	ReactionWheel ReactionWheelConfig
}
