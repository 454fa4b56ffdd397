package maploader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
)

func TestDefaultLevelIsValid(t *testing.T) {
	level := DefaultLevel()

	if level.Grid.Width() != 16 || level.Grid.Height() != 9 {
		t.Errorf("Expected 16x9 grid, got %dx%d", level.Grid.Width(), level.Grid.Height())
	}
	if level.Portal == nil {
		t.Fatal("Expected the demo to carry a portal level")
	}

	seen := map[mapbuild.WallType]bool{}
	for _, w := range level.Walls {
		seen[w.Type] = true
	}
	for _, want := range []mapbuild.WallType{
		mapbuild.TypeDoor, mapbuild.TypeWall, mapbuild.TypeDecorated, mapbuild.TypeWindow,
		mapbuild.TypeDoorControl, mapbuild.TypePortal, mapbuild.TypeNPCPanel, mapbuild.TypeBlocker,
		mapbuild.TypeMedia, mapbuild.TypeModelStand, mapbuild.TypePanelA, mapbuild.TypePanelB,
	} {
		if !seen[want] {
			t.Errorf("Expected the demo to contain a %v wall", want)
		}
	}
}

func TestLoadLevelFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.json")
	data := `{
		"name": "box",
		"rows": ["####", "#  #", "####"],
		"player_spawn": {"x": 1.5, "y": 1.5, "yaw": 90},
		"lights": [{"x": 2, "y": 1.5, "intensity": 0.5}]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	level, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}
	if level.Data.Name != "box" {
		t.Errorf("Expected name 'box', got '%s'", level.Data.Name)
	}
	pos, yaw, ok := level.Spawn()
	if !ok || pos.X != 1.5 || yaw != 90 {
		t.Errorf("Unexpected spawn %+v yaw %f", pos, yaw)
	}
	if len(level.Walls) != 6 {
		t.Errorf("Expected 6 walls, got %d", len(level.Walls))
	}
}

func TestLevelValidation(t *testing.T) {
	cases := map[string]string{
		"spawn in wall":      `{"rows": ["###", "# #", "###"], "player_spawn": {"x": 0.5, "y": 0.5}}`,
		"bad behavior":       `{"rows": ["###", "# #", "###"], "player_spawn": {"x": 1.5, "y": 1.5}, "entities": [{"x": 1.5, "y": 1.5, "behavior": "dance"}]}`,
		"negative light":     `{"rows": ["###", "# #", "###"], "player_spawn": {"x": 1.5, "y": 1.5}, "lights": [{"x": 1, "y": 1, "intensity": -1}]}`,
		"model without path": `{"rows": ["###", "# #", "###"], "player_spawn": {"x": 1.5, "y": 1.5}, "models": [{"x": 1.5, "y": 1.5}]}`,
		"broken portal":      `{"rows": ["###", "# #", "###"], "player_spawn": {"x": 1.5, "y": 1.5}, "portal": {"rows": []}}`,
	}
	for name, data := range cases {
		if _, err := ParseLevel([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLevelWithoutSpawn(t *testing.T) {
	level, err := ParseLevel([]byte(`{"name": "open", "rows": ["###", "# #", "###"]}`))
	if err != nil {
		t.Fatalf("Expected a level without spawn to load, got %v", err)
	}
	if _, _, ok := level.Spawn(); ok {
		t.Error("Expected no spawn")
	}
}

func TestLevelGridErrorsAreWrapped(t *testing.T) {
	_, err := ParseLevel([]byte(`{"rows": ["##", "#"]}`))
	if !errors.Is(err, mapbuild.ErrRaggedGrid) {
		t.Errorf("Expected ErrRaggedGrid, got %v", err)
	}

	_, err = LoadLevel(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read level file") {
		t.Errorf("Expected read error, got %v", err)
	}
}
