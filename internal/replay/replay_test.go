package replay

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"chosenoffset.com/wolfmaze/internal/maze"
	"chosenoffset.com/wolfmaze/internal/world/maploader"
)

func newMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(maploader.DefaultLevel(), maze.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Failed to build maze: %v", err)
	}
	return m
}

func steps(m *maze.Maze, n int) {
	for i := 0; i < n; i++ {
		m.Step()
	}
}

func recordSession(t *testing.T) (*Recording, *maze.Maze) {
	t.Helper()
	m := newMaze(t)
	rec := NewRecorder("default", m.Config().Timing.StepMS)
	rec.Attach(m)

	m.Press(maze.CmdWalkForward)
	steps(m, 40)
	m.Press(maze.CmdTurnRight)
	steps(m, 90)
	m.Release(maze.CmdTurnRight)
	m.Press(maze.CmdToggleDoors)
	m.Release(maze.CmdToggleDoors)
	steps(m, 60)
	m.Press(maze.CmdStrafeLeft)
	steps(m, 25)
	m.Release(maze.CmdStrafeLeft)
	m.Release(maze.CmdWalkForward)
	steps(m, 10)

	return rec.Finish(m.SimulationTime()), m
}

func TestReplayReproducesSession(t *testing.T) {
	recording, live := recordSession(t)
	if len(recording.Events) != 8 {
		t.Fatalf("Expected 8 events, got %d", len(recording.Events))
	}

	replayed := newMaze(t)
	p := NewPlayer(recording)
	p.Run(replayed)

	if !p.Finished(replayed) {
		t.Error("Expected player to be finished")
	}
	if replayed.SimulationTime() != live.SimulationTime() {
		t.Errorf("Expected simulation time %d, got %d", live.SimulationTime(), replayed.SimulationTime())
	}
	if replayed.Camera().Pos() != live.Camera().Pos() {
		t.Errorf("Expected camera at %+v, got %+v", live.Camera().Pos(), replayed.Camera().Pos())
	}
	if replayed.Camera().Yaw() != live.Camera().Yaw() {
		t.Errorf("Expected yaw %f, got %f", live.Camera().Yaw(), replayed.Camera().Yaw())
	}
	if replayed.Doors().Progress() != live.Doors().Progress() {
		t.Errorf("Expected door progress %f, got %f", live.Doors().Progress(), replayed.Doors().Progress())
	}
	for i, e := range live.Entities() {
		if got := replayed.Entities()[i].Pos(); got != e.Pos() {
			t.Errorf("Entity %d: expected %+v, got %+v", i, e.Pos(), got)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	recording, _ := recordSession(t)

	var buf bytes.Buffer
	if err := Encode(&buf, recording); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.EndMS != recording.EndMS || decoded.Level != "default" {
		t.Errorf("Expected header fields to survive, got %+v", decoded)
	}
	if len(decoded.Events) != len(recording.Events) {
		t.Fatalf("Expected %d events, got %d", len(recording.Events), len(decoded.Events))
	}
	for i := range decoded.Events {
		if decoded.Events[i] != recording.Events[i] {
			t.Errorf("Event %d: expected %+v, got %+v", i, recording.Events[i], decoded.Events[i])
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	recording, _ := recordSession(t)
	path := filepath.Join(t.TempDir(), "session.wmr")

	if err := SaveFile(path, recording); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(loaded.Events) != len(recording.Events) {
		t.Errorf("Expected %d events, got %d", len(recording.Events), len(loaded.Events))
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a replay at all")))
	if !errors.Is(err, ErrNotRecording) {
		t.Errorf("Expected ErrNotRecording, got %v", err)
	}
}

func TestDecodeRejectsHugeHeader(t *testing.T) {
	data := []byte{'W', 'M', 'R', 'P', 1, 0xff, 0xff, 0xff, 0xff, 0x10, 'x'}
	if _, err := Decode(bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}
