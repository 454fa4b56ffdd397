package simulation

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}
	if cfg.Timing.StepMS != 5 {
		t.Errorf("Expected step 5ms, got %d", cfg.Timing.StepMS)
	}
	if cfg.Camera.WalkSpeed != 0.01 {
		t.Errorf("Expected walk speed 0.01, got %f", cfg.Camera.WalkSpeed)
	}
	if cfg.Step() != 5*time.Millisecond {
		t.Errorf("Expected 5ms step, got %v", cfg.Step())
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	data := `{"camera": {"fov": 90}, "timing": {"max_catch_up_steps": 40}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Camera.FOV != 90 {
		t.Errorf("Expected fov 90, got %f", cfg.Camera.FOV)
	}
	if cfg.Timing.MaxCatchUpSteps != 40 {
		t.Errorf("Expected cap 40, got %d", cfg.Timing.MaxCatchUpSteps)
	}
	// Untouched fields keep their defaults
	if cfg.Camera.TurnSpeed != 0.5 {
		t.Errorf("Expected turn speed 0.5, got %f", cfg.Camera.TurnSpeed)
	}
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"timing": {"step_ms": 0}}`,
		`{"camera": {"fov": 200}}`,
		`{"camera": {"pitch_limit": 0}}`,
		`{"camera": {"pitch_limit": 95}}`,
		`{"doors": {"duration_ms": -1}}`,
		`{"visibility": {"near_clip": 0}}`,
		`{not json`,
	}
	for _, c := range cases {
		if _, err := ParseConfig([]byte(c)); err == nil {
			t.Errorf("Expected error for %s", c)
		}
	}
}
