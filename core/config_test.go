package core

import (
	"sort"
	"sync"
	"testing"

	"github.com/csdc6/adcs-sim/model"
)

func TestGetSensorConfigs_ReturnsIndependentCopy(t *testing.T) {
	cfg := loadedConfig(t)

	snap := cfg.GetSensorConfigs()
	delete(snap, "gyro_a")
	snap["rogue"] = model.SensorConfig{Type: model.SensorGyroscope}

	if _, ok := cfg.GetSensorConfig("gyro_a"); !ok {
		t.Errorf("mutating the returned map must not touch the store")
	}
	if _, ok := cfg.GetSensorConfig("rogue"); ok {
		t.Errorf("entry added to the returned map leaked into the store")
	}

	acts := cfg.GetActuatorConfigs()
	delete(acts, "wheel_x")
	if _, ok := cfg.GetActuatorConfig("wheel_x"); !ok {
		t.Errorf("mutating the returned actuator map must not touch the store")
	}
}

func TestGetActuatorConfig_RecordIsNotAMutableHandle(t *testing.T) {
	cfg := loadedConfig(t)

	first, ok := cfg.GetActuatorConfig("wheel_x")
	if !ok {
		t.Fatalf("expected actuator wheel_x to be configured")
	}
	first.ReactionWheel.MomentOfInertia = 999
	first.ReactionWheel.MaxAngVel = 999

	second, ok := cfg.GetActuatorConfig("wheel_x")
	if !ok {
		t.Fatalf("expected actuator wheel_x on re-fetch")
	}
	if second.ReactionWheel.MomentOfInertia != 2.0 {
		t.Errorf("store record mutated through returned config: MomentOfInertia = %g, want 2.0", second.ReactionWheel.MomentOfInertia)
	}
	if second.ReactionWheel.MaxAngVel != 5.0 {
		t.Errorf("store record mutated through returned config: MaxAngVel = %g, want 5.0", second.ReactionWheel.MaxAngVel)
	}

	// The map snapshot must be just as inert.
	snap := cfg.GetActuatorConfigs()
	entry := snap["wheel_x"]
	entry.ReactionWheel.MinAngAccel = -999
	snap["wheel_x"] = entry

	third, _ := cfg.GetActuatorConfig("wheel_x")
	if third.ReactionWheel.MinAngAccel != -1.0 {
		t.Errorf("store record mutated through snapshot map: MinAngAccel = %g, want -1.0", third.ReactionWheel.MinAngAccel)
	}
}

func TestSummary_SortedNames(t *testing.T) {
	cfg := loadedConfig(t)

	sum := cfg.Summary()
	if !sort.StringsAreSorted(sum.SensorNames) {
		t.Errorf("sensor names not sorted: %v", sum.SensorNames)
	}
	if !sort.StringsAreSorted(sum.ActuatorNames) {
		t.Errorf("actuator names not sorted: %v", sum.ActuatorNames)
	}
	if len(sum.SensorNames) != 2 || len(sum.ActuatorNames) != 1 {
		t.Errorf("summary = %+v, want 2 sensors and 1 actuator", sum)
	}
}

func TestLoad_RecordsMetricsOutcome(t *testing.T) {
	rec := &countingRecorder{}
	cfg := NewConfig()
	cfg.Metrics = rec

	if err := cfg.Load(writeDocument(t, validDocument)); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if rec.loads != 1 {
		t.Errorf("recorded loads = %d, want 1", rec.loads)
	}
	if rec.sensors != 2 {
		t.Errorf("recorded sensor count = %d, want 2", rec.sensors)
	}

	// A failed load is still recorded but must not update counts.
	cfg.Load(writeDocument(t, "not: [valid"))
	if rec.loads != 2 {
		t.Errorf("recorded loads = %d, want 2 after a failure", rec.loads)
	}
	if rec.sensors != 2 {
		t.Errorf("recorded sensor count = %d, want unchanged after a failure", rec.sensors)
	}
}

func TestConfig_ConcurrentReadersDuringReload(t *testing.T) {
	cfg := loadedConfig(t)
	path := writeDocument(t, validDocument)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				cfg.GetSensorConfig("gyro_a")
				cfg.GetSatellitePosition()
				cfg.GetTimestepInMilliseconds()
			}
		}()
	}
	for i := 0; i < 5; i++ {
		if err := cfg.Load(path); err != nil {
			t.Errorf("Load returned error: %v", err)
		}
	}
	wg.Wait()
}
