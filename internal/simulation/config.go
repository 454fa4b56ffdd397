// Package simulation provides the tunable rules of the maze simulation.
// Rules are loaded from a JSON file layered over the defaults, so a level
// pack can change speeds and lighting without touching code.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds all simulation rules for a maze
type Config struct {
	// Fixed-step clock
	Timing TimingConfig `json:"timing"`

	// Player viewpoint and movement
	Camera CameraConfig `json:"camera"`

	// Autonomous actors
	Entities EntityConfig `json:"entities"`

	// Wall shading
	Lighting LightingConfig `json:"lighting"`

	// Sliding doors
	Doors DoorConfig `json:"doors"`

	// Wall collision
	Walls WallConfig `json:"walls"`

	// Span resolver
	Visibility VisibilityConfig `json:"visibility"`
}

// TimingConfig defines the fixed-timestep clock
type TimingConfig struct {
	StepMS          int `json:"step_ms"`            // Simulation step length (5)
	TickIntervalMS  int `json:"tick_interval_ms"`   // Host tick period (20)
	MaxCatchUpSteps int `json:"max_catch_up_steps"` // 0 runs every missed step
}

// CameraConfig defines the player's view and per-step speeds
type CameraConfig struct {
	FOV           float64 `json:"fov"`            // Horizontal field of view in degrees
	StartX        float64 `json:"start_x"`        // Fallback spawn when a level has none
	StartY        float64 `json:"start_y"`        //
	StartYaw      float64 `json:"start_yaw"`      //
	TurnSpeed     float64 `json:"turn_speed"`     // Degrees per step
	PitchSpeed    float64 `json:"pitch_speed"`    // Degrees per step
	PitchLimit    float64 `json:"pitch_limit"`    // Absolute pitch clamp in degrees
	WalkSpeed     float64 `json:"walk_speed"`     // Units per step
	StrafeSpeed   float64 `json:"strafe_speed"`   // Units per step
	CollisionSize float64 `json:"collision_size"` // Side of the camera's box
}

// EntityConfig defines how autonomous actors move and animate
type EntityConfig struct {
	WalkSpeed          float64 `json:"walk_speed"`           // Units per step
	TurnStep           float64 `json:"turn_step"`            // Max degrees per step toward a target
	StartAngle         float64 `json:"start_angle"`          // Facing of a fresh entity
	CollisionSize      float64 `json:"collision_size"`       // Box of the moving entity
	Footprint          float64 `json:"footprint"`            // Box other movers collide with
	CameraClearance    float64 `json:"camera_clearance"`     // Camera box an entity may not enter
	HalfWidth          float64 `json:"half_width"`           // Billboard half width
	AnimationFrameMS   int     `json:"animation_frame_ms"`   // Walk cycle frame time
	BehaviorIntervalMS int     `json:"behavior_interval_ms"` // Behavior evaluation period
}

// LightingConfig defines the light falloff
type LightingConfig struct {
	Ambient       float64 `json:"ambient"`
	QuadraticGain float64 `json:"quadratic_gain"`
	LinearGain    float64 `json:"linear_gain"`
	WindowOpacity float64 `json:"window_opacity"` // Fixed overlay for windows
	PlayerLamp    float64 `json:"player_lamp"`    // Intensity of a lamp at the camera, 0 is off
}

// DoorConfig defines door animation timing
type DoorConfig struct {
	DurationMS int `json:"duration_ms"` // Full open or close time
}

// WallConfig defines wall collision
type WallConfig struct {
	CollisionMargin float64 `json:"collision_margin"` // Growth of each wall's box
}

// VisibilityConfig defines the span resolver
type VisibilityConfig struct {
	NearClip float64 `json:"near_clip"` // Depth segments are clipped to
}

// DefaultConfig returns the classic maze tuning
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			StepMS:          5,
			TickIntervalMS:  20,
			MaxCatchUpSteps: 0,
		},
		Camera: CameraConfig{
			FOV:           70,
			StartX:        1.5,
			StartY:        1.5,
			StartYaw:      0.1,
			TurnSpeed:     0.5,
			PitchSpeed:    0.5,
			PitchLimit:    30,
			WalkSpeed:     0.01,
			StrafeSpeed:   0.01,
			CollisionSize: 0.25,
		},
		Entities: EntityConfig{
			WalkSpeed:          0.006,
			TurnStep:           0.5,
			StartAngle:         180,
			CollisionSize:      0.7,
			Footprint:          0.8,
			CameraClearance:    0.4,
			HalfWidth:          0.3,
			AnimationFrameMS:   300,
			BehaviorIntervalMS: 50,
		},
		Lighting: LightingConfig{
			Ambient:       80,
			QuadraticGain: 150,
			LinearGain:    30,
			WindowOpacity: 0.4,
		},
		Doors: DoorConfig{
			DurationMS: 1000,
		},
		Walls: WallConfig{
			CollisionMargin: 0.01,
		},
		Visibility: VisibilityConfig{
			NearClip: 0.01,
		},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig layers JSON over the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Timing.StepMS <= 0:
		return fmt.Errorf("timing.step_ms must be positive, got %d", c.Timing.StepMS)
	case c.Timing.TickIntervalMS <= 0:
		return fmt.Errorf("timing.tick_interval_ms must be positive, got %d", c.Timing.TickIntervalMS)
	case c.Timing.MaxCatchUpSteps < 0:
		return fmt.Errorf("timing.max_catch_up_steps must not be negative, got %d", c.Timing.MaxCatchUpSteps)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov must be in (0, 180), got %g", c.Camera.FOV)
	case c.Camera.PitchLimit <= 0 || c.Camera.PitchLimit >= 90:
		return fmt.Errorf("camera.pitch_limit must be in (0, 90), got %g", c.Camera.PitchLimit)
	case c.Doors.DurationMS <= 0:
		return fmt.Errorf("doors.duration_ms must be positive, got %d", c.Doors.DurationMS)
	case c.Entities.AnimationFrameMS <= 0 || c.Entities.BehaviorIntervalMS <= 0:
		return fmt.Errorf("entity intervals must be positive")
	case c.Visibility.NearClip <= 0:
		return fmt.Errorf("visibility.near_clip must be positive, got %g", c.Visibility.NearClip)
	}
	return nil
}

// Step returns the simulation step as a duration
func (c *Config) Step() time.Duration {
	return time.Duration(c.Timing.StepMS) * time.Millisecond
}

// TickInterval returns the host tick period as a duration
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMS) * time.Millisecond
}
