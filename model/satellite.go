package model

// TimestepPolicy describes how the simulation clock should advance: a fixed
// tick, or a variable step clamped between MinMs and MaxMs.
type TimestepPolicy struct {
	FixedMs  int
	Variable bool
	MinMs    float64
	MaxMs    float64
}

// SatelliteParams holds the satellite-wide parameters of a configuration
// document. These are singleton-scoped: one set per document, not per
// component.
type SatelliteParams struct {
	MomentOfInertia Mat3
	Position        Vec3 // ECEF metres
	Velocity        Vec3 // ECEF metres per second

	Timestep  TimestepPolicy
	TimeoutMs int

	// Controller targets.
	DesiredPosition     Vec3
	AllowedJitterDegSec float64
	RequiredAccuracyDeg float64
	RequiredHoldTimeMs  int
}
