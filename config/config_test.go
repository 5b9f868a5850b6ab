package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	// durations are plain nanosecond integers in the file
	body := "NumElevators: 4\nMaxFloor: 20\nSweepInterval: 250000000\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.NumElevators != 4 || c.MaxFloor != 20 {
		t.Errorf("explicit keys not honored: %+v", c)
	}
	if c.SweepInterval != 250*time.Millisecond {
		t.Errorf("SweepInterval = %v, want 250ms", c.SweepInterval)
	}
	if c.TickInterval != MOVEMENT_TICK_INTERVAL || c.StuckTimeout != STUCK_TIMEOUT {
		t.Errorf("absent durations not defaulted: %+v", c)
	}
	if c.NearestCarPenalty != NEAREST_CAR_PENALTY {
		t.Errorf("NearestCarPenalty = %d, want default %d", c.NearestCarPenalty, NEAREST_CAR_PENALTY)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestDefaultIsSelfConsistent(t *testing.T) {
	c := Default()
	if c.MinFloor >= c.MaxFloor {
		t.Errorf("default floor range [%d, %d] is empty", c.MinFloor, c.MaxFloor)
	}
	if c.NumElevators <= 0 || c.SweepInterval <= 0 || c.TickInterval <= 0 {
		t.Errorf("default config has non-positive parameters: %+v", c)
	}
}
