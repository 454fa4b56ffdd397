// Package maploader reads maze levels from JSON. A level is a character
// grid plus the things the grid cannot express: spawn point, lights,
// entities, model stands and the maze shown through portal walls.
package maploader

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
)

// maxPortalDepth bounds how deep portal levels may nest.
const maxPortalDepth = 4

// Behavior names accepted for entities.
const (
	BehaviorIdle   = "idle"
	BehaviorPatrol = "patrol"
	BehaviorFollow = "follow"
)

// SpawnPoint defines the camera's starting pose
type SpawnPoint struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// LightData is a point light
type LightData struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
}

// PatrolData describes a back-and-forth route along a row
type PatrolData struct {
	Y        float64 `json:"y"`
	MinX     float64 `json:"min_x"`
	MaxX     float64 `json:"max_x"`
	PeriodMS int     `json:"period_ms"` // Time per leg
}

// EntityData places an autonomous actor
type EntityData struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Behavior string      `json:"behavior"`
	Patrol   *PatrolData `json:"patrol,omitempty"`
}

// ModelData places a 3D model on a stand
type ModelData struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

// LevelData represents the JSON form of a level
type LevelData struct {
	Name        string       `json:"name"`
	Rows        []string     `json:"rows"`
	PlayerSpawn *SpawnPoint  `json:"player_spawn,omitempty"` // nil uses the configured start
	Lights      []LightData  `json:"lights"`
	Entities    []EntityData `json:"entities"`
	Models      []ModelData  `json:"models"`
	Portal      *LevelData   `json:"portal,omitempty"`
}

// Level is a validated level with its grid decoded
type Level struct {
	Data   *LevelData
	Grid   *mapbuild.Grid
	Walls  []mapbuild.WallSpec
	Portal *Level
}

// LoadLevel loads a level from a JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("invalid level in %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes and validates a level
func ParseLevel(data []byte) (*Level, error) {
	var levelData LevelData
	if err := json.Unmarshal(data, &levelData); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	return NewLevel(&levelData)
}

// NewLevel validates already decoded level data
func NewLevel(data *LevelData) (*Level, error) {
	return newLevel(data, 0)
}

func newLevel(data *LevelData, depth int) (*Level, error) {
	if depth > maxPortalDepth {
		return nil, fmt.Errorf("portal levels nest deeper than %d", maxPortalDepth)
	}
	grid, err := mapbuild.ParseGrid(data.Rows)
	if err != nil {
		return nil, err
	}
	level := &Level{
		Data:  data,
		Grid:  grid,
		Walls: mapbuild.BuildWalls(grid),
	}
	if err := validateLevelData(level); err != nil {
		return nil, err
	}
	if data.Portal != nil {
		portal, err := newLevel(data.Portal, depth+1)
		if err != nil {
			return nil, fmt.Errorf("portal level %q: %w", data.Portal.Name, err)
		}
		level.Portal = portal
	}
	return level, nil
}

// validateLevelData checks everything placed on the grid
func validateLevelData(level *Level) error {
	data := level.Data

	if spawn := data.PlayerSpawn; spawn != nil && !level.IsOpenAt(spawn.X, spawn.Y) {
		return fmt.Errorf("player spawn (%.2f, %.2f) is not in an open cell", spawn.X, spawn.Y)
	}

	for i, l := range data.Lights {
		if l.Intensity < 0 || math.IsNaN(l.Intensity) {
			return fmt.Errorf("light %d has invalid intensity %g", i, l.Intensity)
		}
	}

	for i, e := range data.Entities {
		if !level.IsOpenAt(e.X, e.Y) {
			return fmt.Errorf("entity %d at (%.2f, %.2f) is not in an open cell", i, e.X, e.Y)
		}
		switch e.Behavior {
		case "", BehaviorIdle, BehaviorFollow:
		case BehaviorPatrol:
			if e.Patrol != nil && e.Patrol.MinX >= e.Patrol.MaxX {
				return fmt.Errorf("entity %d patrol min_x %.2f must be below max_x %.2f", i, e.Patrol.MinX, e.Patrol.MaxX)
			}
		default:
			return fmt.Errorf("entity %d has unknown behavior %q", i, e.Behavior)
		}
	}

	for i, m := range data.Models {
		if !level.IsOpenAt(m.X, m.Y) {
			return fmt.Errorf("model %d at (%.2f, %.2f) is not in an open cell", i, m.X, m.Y)
		}
		if m.Path == "" {
			return fmt.Errorf("model %d has no path", i)
		}
	}

	return nil
}

// IsOpenAt reports whether the map point lies in an open cell
func (l *Level) IsOpenAt(x, y float64) bool {
	return mapbuild.IsOpen(l.Grid.At(int(math.Floor(x)), int(math.Floor(y))))
}

// Spawn returns the player position and yaw, and false when the level
// leaves the start to the simulation config
func (l *Level) Spawn() (geom.Point, float64, bool) {
	s := l.Data.PlayerSpawn
	if s == nil {
		return geom.Point{}, 0, false
	}
	return geom.Point{X: s.X, Y: s.Y}, s.Yaw, true
}
