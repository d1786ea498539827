package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/csdc6/adcs-sim/internal/logging"
	"github.com/csdc6/adcs-sim/model"
)

var (
	// ErrParse marks a document that is structurally wrong: a required key
	// is missing, a vector has the wrong arity, a bound pair is inverted.
	ErrParse = errors.New("malformed configuration document")

	// ErrUnknownType marks a sensor or actuator entry whose type tag does
	// not name a known variant.
	ErrUnknownType = errors.New("unknown component type")
)

// document label values used in load metrics.
const (
	docPrimary = "primary"
	docExit    = "exit"
)

// Wire shapes for the YAML documents. Unexported so the schema can evolve
// without touching the public records. Pointer fields distinguish "absent"
// from zero for keys that are required.
type documentYAML struct {
	SatelliteMomentOfInertia [][]float64 `yaml:"satellite_moment_of_inertia"`
	SatellitePosition        []float64   `yaml:"satellite_position"`
	SatelliteVelocity        []float64   `yaml:"satellite_velocity"`
	TLE                      *tleYAML    `yaml:"tle"`

	TimestepInMilliseconds *int     `yaml:"timestep_in_milliseconds"`
	UseVariableTimestep    bool     `yaml:"use_variable_timestep"`
	MinTimestep            *float64 `yaml:"min_timestep"`
	MaxTimestep            *float64 `yaml:"max_timestep"`

	TimeoutInMilliseconds *int `yaml:"timeout_in_milliseconds"`

	DesiredSatellitePosition []float64 `yaml:"desired_satellite_position"`
	AllowedJitter            *float64  `yaml:"allowed_jitter"`
	RequiredAccuracy         *float64  `yaml:"required_accuracy"`
	RequiredHoldTime         *int      `yaml:"required_hold_time"`

	Sensors   map[string]sensorYAML   `yaml:"sensors"`
	Actuators map[string]actuatorYAML `yaml:"actuators"`
}

type tleYAML struct {
	Line1 string `yaml:"line1"`
	Line2 string `yaml:"line2"`
}

type sensorYAML struct {
	Type        string    `yaml:"type"`
	PollingTime *int      `yaml:"PollingTime"`
	Position    []float64 `yaml:"Position"`
}

// actuatorYAML is the union of every actuator variant's fields; the type
// tag decides which subset is required.
type actuatorYAML struct {
	Type            string    `yaml:"type"`
	MomentOfInertia *float64  `yaml:"MomentOfInertia"`
	MaxAngVel       *float64  `yaml:"MaxAngVel"`
	MinAngVel       *float64  `yaml:"MinAngVel"`
	MaxAngAccel     *float64  `yaml:"MaxAngAccel"`
	MinAngAccel     *float64  `yaml:"MinAngAccel"`
	PollingTime     *float64  `yaml:"PollingTime"`
	Position        []float64 `yaml:"Position"`
	AxisOfRotation  []float64 `yaml:"AxisOfRotation"`
	Velocity        float64   `yaml:"Velocity"`
	Acceleration    float64   `yaml:"Acceleration"`
}

// Load reads, validates, and installs the primary configuration document.
// On any error the store keeps whatever it held before the call.
func (c *Config) Load(path string) error {
	return c.loadDocument(docPrimary, path)
}

// LoadExitFile loads the secondary ("exit") document consumed at teardown.
// Parsing rules are identical to Load; only the document identity differs.
func (c *Config) LoadExitFile(path string) error {
	return c.loadDocument(docExit, path)
}

func (c *Config) loadDocument(document, path string) error {
	start := time.Now()
	err := c.loadAndInstall(path)

	if c.Metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.Metrics.RecordLoad(document, outcome, time.Since(start).Seconds())
	}
	return err
}

func (c *Config) loadAndInstall(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrParse, path, err)
	}

	var doc documentYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrParse, path, err)
	}

	snap, err := c.buildSnapshot(&doc)
	if err != nil {
		return err
	}

	c.install(*snap)
	return nil
}

// buildSnapshot validates the whole document before anything is installed.
func (c *Config) buildSnapshot(doc *documentYAML) (*snapshot, error) {
	sat, err := c.parseSatelliteParams(doc)
	if err != nil {
		return nil, err
	}

	sensors := make(map[string]model.SensorConfig, len(doc.Sensors))
	for name, entry := range doc.Sensors {
		sc, err := parseSensorEntry(name, entry)
		if err != nil {
			return nil, err
		}
		sensors[name] = sc
	}

	actuators := make(map[string]model.ActuatorConfig, len(doc.Actuators))
	for name, entry := range doc.Actuators {
		ac, err := parseActuatorEntry(name, entry)
		if err != nil {
			return nil, err
		}
		if ac.Type == model.ActuatorReactionWheel && !ac.ReactionWheel.AxisOfRotation.IsUnit(1e-6) {
			// Rotation axes are conventionally unit length. Accept the entry
			// but flag it; a scaled axis usually means a typo in the document.
			c.log().Warn(context.Background(), "actuator rotation axis is not unit length",
				logging.String("actuator", name),
				logging.Float("norm", ac.ReactionWheel.AxisOfRotation.Norm()))
		}
		actuators[name] = ac
	}

	return &snapshot{
		sensors:   sensors,
		actuators: actuators,
		satellite: *sat,
	}, nil
}

func (c *Config) parseSatelliteParams(doc *documentYAML) (*model.SatelliteParams, error) {
	var sat model.SatelliteParams

	moment, err := mat3FromRows("satellite_moment_of_inertia", doc.SatelliteMomentOfInertia)
	if err != nil {
		return nil, err
	}
	if !moment.IsPositiveDefinite() {
		// A physical inertia tensor is symmetric positive definite. Accept
		// the document anyway; the simulation owner may be running a
		// deliberately degenerate case.
		c.log().Warn(context.Background(), "satellite moment of inertia is not symmetric positive definite")
	}
	sat.MomentOfInertia = moment

	// Initial state: explicit vectors win; a TLE fills in whichever of the
	// two is absent. With both vectors given the TLE is dead weight and is
	// not propagated.
	havePos := doc.SatellitePosition != nil
	haveVel := doc.SatelliteVelocity != nil
	if doc.TLE == nil && (!havePos || !haveVel) {
		return nil, fmt.Errorf("%w: satellite_position and satellite_velocity are required unless a tle is given", ErrParse)
	}

	if doc.TLE != nil && (!havePos || !haveVel) {
		ref := c.TLEReference
		if ref.IsZero() {
			ref = time.Now().UTC()
		}
		pos, vel, err := InitialStateFromTLE(doc.TLE.Line1, doc.TLE.Line2, ref)
		if err != nil {
			return nil, err
		}
		sat.Position, sat.Velocity = pos, vel
	}
	if havePos {
		if sat.Position, err = vec3FromList("satellite_position", doc.SatellitePosition); err != nil {
			return nil, err
		}
	}
	if haveVel {
		if sat.Velocity, err = vec3FromList("satellite_velocity", doc.SatelliteVelocity); err != nil {
			return nil, err
		}
	}

	policy, err := parseTimestepPolicy(doc)
	if err != nil {
		return nil, err
	}
	sat.Timestep = *policy

	if doc.TimeoutInMilliseconds == nil {
		return nil, fmt.Errorf("%w: missing timeout_in_milliseconds", ErrParse)
	}
	if *doc.TimeoutInMilliseconds < 0 {
		return nil, fmt.Errorf("%w: timeout_in_milliseconds %d is negative", ErrParse, *doc.TimeoutInMilliseconds)
	}
	sat.TimeoutMs = *doc.TimeoutInMilliseconds

	if sat.DesiredPosition, err = vec3FromList("desired_satellite_position", doc.DesiredSatellitePosition); err != nil {
		return nil, err
	}

	if doc.AllowedJitter == nil || doc.RequiredAccuracy == nil || doc.RequiredHoldTime == nil {
		return nil, fmt.Errorf("%w: allowed_jitter, required_accuracy, and required_hold_time are required", ErrParse)
	}
	if *doc.AllowedJitter < 0 {
		return nil, fmt.Errorf("%w: allowed_jitter %g is negative", ErrParse, *doc.AllowedJitter)
	}
	if *doc.RequiredAccuracy < 0 {
		return nil, fmt.Errorf("%w: required_accuracy %g is negative", ErrParse, *doc.RequiredAccuracy)
	}
	if *doc.RequiredHoldTime < 0 {
		return nil, fmt.Errorf("%w: required_hold_time %d is negative", ErrParse, *doc.RequiredHoldTime)
	}
	sat.AllowedJitterDegSec = *doc.AllowedJitter
	sat.RequiredAccuracyDeg = *doc.RequiredAccuracy
	sat.RequiredHoldTimeMs = *doc.RequiredHoldTime

	return &sat, nil
}

func parseTimestepPolicy(doc *documentYAML) (*model.TimestepPolicy, error) {
	policy := model.TimestepPolicy{Variable: doc.UseVariableTimestep}

	if policy.Variable {
		if doc.MinTimestep == nil || doc.MaxTimestep == nil {
			return nil, fmt.Errorf("%w: variable timestep requires min_timestep and max_timestep", ErrParse)
		}
		minMs, maxMs := *doc.MinTimestep, *doc.MaxTimestep
		if minMs < 0 || maxMs < 0 {
			return nil, fmt.Errorf("%w: timestep bounds must not be negative (min=%g max=%g)", ErrParse, minMs, maxMs)
		}
		if minMs > maxMs {
			return nil, fmt.Errorf("%w: min_timestep %g exceeds max_timestep %g", ErrParse, minMs, maxMs)
		}
		policy.MinMs, policy.MaxMs = minMs, maxMs
		return &policy, nil
	}

	if doc.TimestepInMilliseconds == nil {
		return nil, fmt.Errorf("%w: missing timestep_in_milliseconds", ErrParse)
	}
	if *doc.TimestepInMilliseconds < 0 {
		return nil, fmt.Errorf("%w: timestep_in_milliseconds %d is negative", ErrParse, *doc.TimestepInMilliseconds)
	}
	policy.FixedMs = *doc.TimestepInMilliseconds
	return &policy, nil
}

func parseSensorEntry(name string, entry sensorYAML) (model.SensorConfig, error) {
	var sc model.SensorConfig

	sensorType, ok := model.ParseSensorType(entry.Type)
	if !ok {
		return sc, fmt.Errorf("%w: sensor %q has type tag %q", ErrUnknownType, name, entry.Type)
	}

	if entry.PollingTime == nil {
		return sc, fmt.Errorf("%w: sensor %q missing PollingTime", ErrParse, name)
	}
	if *entry.PollingTime < 0 {
		return sc, fmt.Errorf("%w: sensor %q PollingTime %d is negative", ErrParse, name, *entry.PollingTime)
	}

	position, err := vec3FromList(fmt.Sprintf("sensor %q Position", name), entry.Position)
	if err != nil {
		return sc, err
	}

	sc = model.SensorConfig{
		Type:        sensorType,
		PollingTime: *entry.PollingTime,
		Position:    position,
	}
	return sc, nil
}

func parseActuatorEntry(name string, entry actuatorYAML) (model.ActuatorConfig, error) {
	var ac model.ActuatorConfig

	actuatorType, ok := model.ParseActuatorType(entry.Type)
	if !ok {
		return ac, fmt.Errorf("%w: actuator %q has type tag %q", ErrUnknownType, name, entry.Type)
	}

	switch actuatorType {
	case model.ActuatorReactionWheel:
		wheel, err := parseReactionWheel(name, entry)
		if err != nil {
			return ac, err
		}
		ac = model.ActuatorConfig{Type: model.ActuatorReactionWheel, ReactionWheel: wheel}
		return ac, nil
	default:
		// ParseActuatorType only admits tags this switch handles.
		panic(fmt.Sprintf("actuator type %v has no loader case", actuatorType))
	}
}

func parseReactionWheel(name string, entry actuatorYAML) (model.ReactionWheelConfig, error) {
	var zero model.ReactionWheelConfig
	required := map[string]*float64{
		"MomentOfInertia": entry.MomentOfInertia,
		"MaxAngVel":       entry.MaxAngVel,
		"MinAngVel":       entry.MinAngVel,
		"MaxAngAccel":     entry.MaxAngAccel,
		"MinAngAccel":     entry.MinAngAccel,
		"PollingTime":     entry.PollingTime,
	}
	for key, val := range required {
		if val == nil {
			return zero, fmt.Errorf("%w: actuator %q missing %s", ErrParse, name, key)
		}
	}

	if *entry.MomentOfInertia <= 0 {
		return zero, fmt.Errorf("%w: actuator %q MomentOfInertia %g must be positive", ErrParse, name, *entry.MomentOfInertia)
	}
	if *entry.PollingTime < 0 {
		return zero, fmt.Errorf("%w: actuator %q PollingTime %g is negative", ErrParse, name, *entry.PollingTime)
	}
	if *entry.MinAngVel > *entry.MaxAngVel {
		return zero, fmt.Errorf("%w: actuator %q MinAngVel %g exceeds MaxAngVel %g", ErrParse, name, *entry.MinAngVel, *entry.MaxAngVel)
	}
	if *entry.MinAngAccel > *entry.MaxAngAccel {
		return zero, fmt.Errorf("%w: actuator %q MinAngAccel %g exceeds MaxAngAccel %g", ErrParse, name, *entry.MinAngAccel, *entry.MaxAngAccel)
	}

	position, err := vec3FromList(fmt.Sprintf("actuator %q Position", name), entry.Position)
	if err != nil {
		return zero, err
	}
	axis, err := vec3FromList(fmt.Sprintf("actuator %q AxisOfRotation", name), entry.AxisOfRotation)
	if err != nil {
		return zero, err
	}

	return model.ReactionWheelConfig{
		MomentOfInertia: *entry.MomentOfInertia,
		MaxAngVel:       *entry.MaxAngVel,
		MinAngVel:       *entry.MinAngVel,
		MaxAngAccel:     *entry.MaxAngAccel,
		MinAngAccel:     *entry.MinAngAccel,
		PollingTime:     *entry.PollingTime,
		Position:        position,
		AxisOfRotation:  axis,
		Velocity:        entry.Velocity,
		Acceleration:    entry.Acceleration,
	}, nil
}

// vec3FromList converts a document list into a Vec3, requiring exactly three
// numeric entries.
func vec3FromList(field string, vals []float64) (model.Vec3, error) {
	if len(vals) != 3 {
		return model.Vec3{}, fmt.Errorf("%w: %s has %d entries, want 3", ErrParse, field, len(vals))
	}
	return model.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// mat3FromRows converts a document list-of-lists into a Mat3, requiring a
// full 3×3 shape.
func mat3FromRows(field string, rows [][]float64) (model.Mat3, error) {
	var m model.Mat3
	if len(rows) != 3 {
		return m, fmt.Errorf("%w: %s has %d rows, want 3", ErrParse, field, len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return m, fmt.Errorf("%w: %s row %d has %d entries, want 3", ErrParse, field, i, len(row))
		}
		copy(m[i][:], row)
	}
	return m, nil
}
