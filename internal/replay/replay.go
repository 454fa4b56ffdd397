// Package replay records the commands given to a maze and plays them back.
// The simulation runs in fixed steps, so feeding the same commands at the
// same step times to a fresh maze reproduces the same session.
package replay

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"chosenoffset.com/wolfmaze/internal/maze"
)

// Event is one command at the simulation time it took effect.
type Event struct {
	At      int64        `json:"at"`
	Command maze.Command `json:"command"`
	Pressed bool         `json:"pressed"`
}

// Recording is a whole session.
type Recording struct {
	Level  string  `json:"level"`
	StepMS int     `json:"step_ms"`
	EndMS  int64   `json:"end_ms"`
	Events []Event `json:"events"`
}

// Recorder collects events from a maze's command hook.
type Recorder struct {
	rec Recording
}

// NewRecorder starts an empty recording.
func NewRecorder(level string, stepMS int) *Recorder {
	return &Recorder{rec: Recording{Level: level, StepMS: stepMS}}
}

// Attach installs the recorder as m's command hook.
func (r *Recorder) Attach(m *maze.Maze) {
	m.SetCommandHook(r.Record)
}

// Record appends one event.
func (r *Recorder) Record(atMS int64, c maze.Command, pressed bool) {
	r.rec.Events = append(r.rec.Events, Event{At: atMS, Command: c, Pressed: pressed})
}

// Len returns the number of events so far.
func (r *Recorder) Len() int { return len(r.rec.Events) }

// Finish closes the recording at the given simulation time. The recorder
// can keep recording afterwards.
func (r *Recorder) Finish(endMS int64) *Recording {
	rec := r.rec
	rec.EndMS = endMS
	rec.Events = append([]Event(nil), r.rec.Events...)
	return &rec
}

// Player feeds a recording back into a maze.
type Player struct {
	rec  *Recording
	next int
}

// NewPlayer plays rec from the start.
func NewPlayer(rec *Recording) *Player {
	return &Player{rec: rec}
}

// Attach makes the player issue its events from m's step hook, so they
// land on the same steps as when they were recorded.
func (p *Player) Attach(m *maze.Maze) {
	m.SetStepHook(func(atMS int64) { p.apply(m, atMS) })
}

// apply issues every event due at or before atMS.
func (p *Player) apply(m *maze.Maze, atMS int64) {
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].At <= atMS {
		e := p.rec.Events[p.next]
		if e.Pressed {
			m.Press(e.Command)
		} else {
			m.Release(e.Command)
		}
		p.next++
	}
}

// Done reports whether every event has been issued.
func (p *Player) Done() bool { return p.next >= len(p.rec.Events) }

// Finished reports whether m has simulated past the end of the recording.
func (p *Player) Finished(m *maze.Maze) bool {
	return p.Done() && m.SimulationTime() >= p.rec.EndMS
}

// Run attaches to m and steps it through the whole recording.
func (p *Player) Run(m *maze.Maze) {
	p.Attach(m)
	for m.SimulationTime() < p.rec.EndMS {
		m.Step()
	}
	m.SetStepHook(nil)
}

var magic = [4]byte{'W', 'M', 'R', 'P'}

const (
	flagRaw  byte = 0
	flagLZ4  byte = 1
	headerSz      = 4 + 1 + 4

	// maxRecordingSize caps the decoded JSON a header may ask for.
	maxRecordingSize = 64 << 20
)

// ErrNotRecording is returned for data that does not start with the
// recording header.
var ErrNotRecording = errors.New("replay: not a recording")

// ErrTooLarge is returned when a header claims more data than any real
// session produces.
var ErrTooLarge = errors.New("replay: recording too large")

// Encode writes rec as an LZ4 block of JSON behind a small header.
func Encode(w io.Writer, rec *Recording) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}

	buf := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, buf, nil)
	if err != nil {
		return fmt.Errorf("failed to compress recording: %w", err)
	}

	header := make([]byte, headerSz)
	copy(header, magic[:])
	binary.LittleEndian.PutUint32(header[5:], uint32(len(raw)))
	body := buf[:n]
	// Incompressible input comes back as zero bytes written
	if n == 0 {
		header[4] = flagRaw
		body = raw
	} else {
		header[4] = flagLZ4
	}

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Recording, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSz || !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrNotRecording
	}
	size := binary.LittleEndian.Uint32(data[5:headerSz])
	body := data[headerSz:]

	var raw []byte
	switch data[4] {
	case flagRaw:
		raw = body
	case flagLZ4:
		if size > maxRecordingSize {
			return nil, fmt.Errorf("%w: header asks for %d bytes", ErrTooLarge, size)
		}
		raw = make([]byte, size)
		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress recording: %w", err)
		}
		raw = raw[:n]
	default:
		return nil, fmt.Errorf("%w: unknown block flag %d", ErrNotRecording, data[4])
	}
	if uint32(len(raw)) != size {
		return nil, fmt.Errorf("recording is %d bytes, header says %d", len(raw), size)
	}

	var rec Recording
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recording: %w", err)
	}
	return &rec, nil
}

// SaveFile writes rec to path.
func SaveFile(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create recording %s: %w", path, err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("failed to write recording %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile reads a recording from path.
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording %s: %w", path, err)
	}
	defer f.Close()
	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording %s: %w", path, err)
	}
	return rec, nil
}
