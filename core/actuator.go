package core

import (
	"time"

	"github.com/csdc6/adcs-sim/model"
)

// ActuatorState is one physical limit (or instantaneous state) of an
// actuator: angular velocity, angular acceleration, angular position, and
// the time it applies at.
type ActuatorState struct {
	Velocity     float64
	Acceleration float64
	Position     float64
	Time         time.Duration
}

// Sentinel magnitudes standing in for "no position/time bound enforced".
// They mirror the simulator's historical values and are not physically
// meaningful limits.
const (
	unboundedPositionFloor   = -100000000000000.0
	unboundedPositionCeiling = 10000000000.0
	farFutureMilliseconds    = 10000000
)

// Actuator is a runtime actuator instance built from an ActuatorConfig.
type Actuator interface {
	// SamplingInterval is the time between actuator polls.
	SamplingInterval() time.Duration
	// MountPosition is the actuator's mounting position in the body frame.
	MountPosition() model.Vec3
}

// ReactionWheel is a momentum-exchange actuator spinning about a fixed body
// axis. Min and Max bound the state the simulation may drive it to.
type ReactionWheel struct {
	sampling        time.Duration
	position        model.Vec3
	axis            model.Vec3
	momentOfInertia float64
	min             ActuatorState
	max             ActuatorState
}

// NewReactionWheel constructs a reaction wheel from its sampling interval,
// mounting position, rotation axis, bound states, and moment of inertia.
func NewReactionWheel(
	sampling time.Duration,
	position model.Vec3,
	axis model.Vec3,
	minState, maxState ActuatorState,
	momentOfInertia float64,
) *ReactionWheel {
	return &ReactionWheel{
		sampling:        sampling,
		position:        position,
		axis:            axis,
		momentOfInertia: momentOfInertia,
		min:             minState,
		max:             maxState,
	}
}

func (w *ReactionWheel) SamplingInterval() time.Duration { return w.sampling }
func (w *ReactionWheel) MountPosition() model.Vec3       { return w.position }

// RotationAxis returns the wheel's axis of rotation in the body frame.
func (w *ReactionWheel) RotationAxis() model.Vec3 { return w.axis }

// MomentOfInertia returns the wheel's moment of inertia about its axis.
func (w *ReactionWheel) MomentOfInertia() float64 { return w.momentOfInertia }

// MinState returns the lower bound state.
func (w *ReactionWheel) MinState() ActuatorState { return w.min }

// MaxState returns the upper bound state.
func (w *ReactionWheel) MaxState() ActuatorState { return w.max }
