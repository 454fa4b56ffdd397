// Package maze runs one first-person maze: the camera, its walls, the
// entities walking in it and the fixed-step simulation that moves them.
// Renderers read a Frame after each Tick; nothing here draws.
package maze

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/core/visibility"
	"chosenoffset.com/wolfmaze/internal/render/lighting"
	"chosenoffset.com/wolfmaze/internal/simulation"
	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
	"chosenoffset.com/wolfmaze/internal/world/maploader"
)

// ModelLoader starts fetching the model at path and delivers it to out
// when ready. It must not block.
type ModelLoader func(path string, out chan<- *assets.Model)

// Options configure a Maze. Zero values select defaults.
type Options struct {
	Config *simulation.Config
	Logger *slog.Logger
	// Clock returns the time elapsed since the maze started. Tick reads
	// it; Advance ignores it.
	Clock func() time.Duration
	// LoadModel fetches model stand meshes. Without it stands stay empty.
	LoadModel ModelLoader
}

// Maze is a single maze and everything in it.
type Maze struct {
	cfg    *simulation.Config
	logger *slog.Logger
	clock  func() time.Duration
	opts   Options

	level  *maploader.Level
	hostID int

	camera *camera.Camera
	snap   camera.Snapshot

	walls     []*Wall
	entities  []*Entity
	models    []*ModelStand
	items     []Projectable
	occluders []visibility.Occluder

	lights   *lighting.Manager
	resolver *visibility.Resolver
	doors    *DoorAnimation

	turnSpeed      float64
	pitchSpeed     float64
	walkVelocity   float64
	strafeVelocity float64

	simTime   int64
	walkTime  int64
	lagMS     int64
	animClock int64
	dirty     bool

	media       *Wall
	mediaVolume float64

	children map[int]*child
	hook     CommandHook
	stepHook StepHook
}

// New builds a maze from a decoded level.
func New(level *maploader.Level, opts Options) (*Maze, error) {
	return newMaze(level, opts, -1)
}

func newMaze(level *maploader.Level, opts Options, hostID int) (*Maze, error) {
	if level == nil {
		return nil, fmt.Errorf("maze: nil level")
	}
	if opts.Config == nil {
		opts.Config = simulation.DefaultConfig()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("maze: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		start := time.Now()
		opts.Clock = func() time.Duration { return time.Since(start) }
	}

	cfg := opts.Config
	m := &Maze{
		cfg:      cfg,
		logger:   opts.Logger,
		clock:    opts.Clock,
		opts:     opts,
		level:    level,
		hostID:   hostID,
		resolver: visibility.NewResolver(),
		doors:    NewDoorAnimation(cfg.Doors.DurationMS),
		children: make(map[int]*child),
	}
	m.resolver.NearClip = cfg.Visibility.NearClip

	pos, yaw, ok := level.Spawn()
	if !ok {
		pos = geom.Point{X: cfg.Camera.StartX, Y: cfg.Camera.StartY}
		yaw = cfg.Camera.StartYaw
		if !level.IsOpenAt(pos.X, pos.Y) {
			return nil, fmt.Errorf("maze: level %q has no spawn and the configured start (%.2f, %.2f) is not open",
				level.Data.Name, pos.X, pos.Y)
		}
	}
	m.camera = camera.New(pos, yaw)
	m.camera.SetFOV(cfg.Camera.FOV)
	m.camera.SetPitchLimit(cfg.Camera.PitchLimit)

	m.setupLighting()

	doors := 0
	for i, spec := range level.Walls {
		w := newWall(i, spec)
		m.walls = append(m.walls, w)
		if w.IsDoor() {
			doors++
		}
		if spec.Type == mapbuild.TypeMedia && m.media == nil {
			m.media = w
		}
		if spec.Type.Hidden() {
			continue
		}
		w.UpdateLighting(m.lights, spec.Type.ConstantLight(), cfg.Lighting.WindowOpacity)
		m.addItem(w)
	}

	for _, data := range level.Data.Entities {
		e := NewEntity(geom.Point{X: data.X, Y: data.Y}, &cfg.Entities)
		e.SetBehavior(behaviorFor(data))
		m.entities = append(m.entities, e)
		m.addItem(e)
	}

	for _, data := range level.Data.Models {
		s := NewModelStand(geom.Point{X: data.X, Y: data.Y}, data.Scale)
		m.models = append(m.models, s)
		m.addItem(s)
		if opts.LoadModel != nil {
			opts.LoadModel(data.Path, s.Handoff())
		}
	}

	m.logger.Info("maze built",
		"level", level.Data.Name,
		"walls", len(m.walls),
		"doors", doors,
		"lights", len(level.Data.Lights),
		"entities", len(m.entities),
		"models", len(m.models))

	m.UpdateTransforms()
	return m, nil
}

func (m *Maze) setupLighting() {
	lc := m.cfg.Lighting
	m.lights = lighting.NewManager()
	m.lights.SetAmbientLight(lc.Ambient)
	m.lights.SetFalloff(lc.QuadraticGain, lc.LinearGain)
	for _, l := range m.level.Data.Lights {
		m.lights.AddLight(lighting.LightSource{
			Pos:       geom.Point{X: l.X, Y: l.Y},
			Intensity: l.Intensity,
		})
	}
	if lc.PlayerLamp > 0 {
		m.lights.SetPlayerLight(lc.PlayerLamp)
	}
}

func (m *Maze) addItem(p Projectable) {
	m.items = append(m.items, p)
	m.occluders = append(m.occluders, p)
}

// relight recomputes every wall overlay.
func (m *Maze) relight() {
	for _, w := range m.walls {
		if w.Type().Hidden() {
			continue
		}
		w.UpdateLighting(m.lights, w.Type().ConstantLight(), m.cfg.Lighting.WindowOpacity)
	}
}

// ToggleDoors starts every door opening or closing. Doors that are still
// moving reverse from where they are.
func (m *Maze) ToggleDoors() {
	m.doors.Toggle()
	m.logger.Debug("doors toggled", "opening", m.doors.Opening(), "progress", m.doors.Progress())
}

// ToggleLamp switches the player's lamp, if the configuration gave one.
func (m *Maze) ToggleLamp() {
	if m.cfg.Lighting.PlayerLamp <= 0 {
		return
	}
	m.lights.EnablePlayerLight(!m.lights.IsPlayerLightOn())
	m.dirty = true
}

// Tick runs the simulation up to the clock.
func (m *Maze) Tick() {
	m.Advance(m.clock())
}

// Advance runs every fixed step whose start time is not after elapsed,
// then refreshes transforms. A configured catch-up cap drops the time it
// could not simulate.
func (m *Maze) Advance(elapsed time.Duration) {
	target := elapsed.Milliseconds() - m.lagMS
	limit := m.cfg.Timing.MaxCatchUpSteps

	moved := make(map[*Entity]bool)
	walked := false
	steps := 0
	for m.simTime <= target {
		if limit > 0 && steps >= limit {
			dropped := target - m.simTime + 1
			m.lagMS += dropped
			m.logger.Warn("simulation falling behind, dropping time",
				"dropped_ms", dropped, "steps", steps)
			break
		}
		if m.step(moved) {
			walked = true
		}
		steps++
	}
	if steps == 0 {
		return
	}

	for _, c := range m.children {
		if c.maze != nil {
			c.maze.Advance(elapsed - c.born)
		}
	}

	if walked || m.turnSpeed != 0 || m.pitchSpeed != 0 || m.dirty {
		m.UpdateTransforms()
		return
	}

	for e := range moved {
		e.UpdateTransform(&m.snap)
		e.SetObscured(!m.resolver.Check(e))
	}
	for _, s := range m.models {
		if s.Loaded() {
			s.UpdateTransform(&m.snap)
			s.SetObscured(!m.resolver.Check(s))
		}
	}
}

// Step runs a single fixed step and refreshes transforms.
func (m *Maze) Step() {
	moved := make(map[*Entity]bool)
	m.step(moved)
	m.UpdateTransforms()
}

// step advances the simulation by one fixed step and reports whether the
// camera moved.
func (m *Maze) step(moved map[*Entity]bool) bool {
	if m.stepHook != nil {
		m.stepHook(m.simTime)
	}
	stepMS := m.cfg.Step().Milliseconds()

	if m.turnSpeed != 0 {
		m.camera.SetYaw(m.camera.Yaw() + m.turnSpeed)
	}
	if m.pitchSpeed != 0 {
		m.camera.SetPitch(m.camera.Pitch() + m.pitchSpeed)
	}

	walking := false
	if m.walkVelocity != 0 {
		pos := m.camera.Pos()
		if m.TryMove(&pos, geom.Polar(m.walkVelocity, m.camera.Yaw()), nil) {
			walking = true
			m.camera.SetPos(pos)
		}
	}
	if m.strafeVelocity != 0 {
		pos := m.camera.Pos()
		if m.TryMove(&pos, geom.Polar(m.strafeVelocity, m.camera.Yaw()+90), nil) {
			walking = true
			m.camera.SetPos(pos)
		}
	}
	if walking {
		m.walkTime += stepMS
	}
	m.simTime += stepMS

	if m.doors.Advance(int(stepMS)) {
		progress := m.doors.Progress()
		closed := m.doors.FullyClosed()
		for _, w := range m.walls {
			if w.IsDoor() {
				w.SetAnimationTime(progress)
				w.SetOpaque(closed)
			}
		}
		m.dirty = true
	}

	player := m.camera.Pos()
	interval := int64(m.cfg.Entities.BehaviorIntervalMS)
	for _, e := range m.entities {
		e.think(player, stepMS, interval)
		if e.Move(m) {
			moved[e] = true
		}
	}

	m.animClock += stepMS
	if frame := int64(m.cfg.Entities.AnimationFrameMS); m.animClock >= frame {
		m.animClock -= frame
		for _, e := range m.entities {
			e.nextFrame()
		}
	}

	for _, s := range m.models {
		if s.poll() {
			m.logger.Info("model loaded", "name", s.Model().Name,
				"vertices", len(s.Model().Vertices), "edges", len(s.Model().Edges))
			m.dirty = true
		}
		if s.Loaded() {
			s.spin(float64(stepMS))
		}
	}

	return walking
}

// UpdateTransforms places every item for the current camera and resolves
// visibility.
func (m *Maze) UpdateTransforms() {
	m.camera.SetTime(float64(m.walkTime) * 0.001)
	if m.lights.IsPlayerLightOn() {
		m.lights.UpdatePlayerLightPosition(m.camera.Pos())
		m.relight()
	} else if m.dirty {
		m.relight()
	}

	m.snap = m.camera.Snapshot()
	for _, it := range m.items {
		it.UpdateTransform(&m.snap)
		if w, ok := it.(*Wall); ok && w.Visible() && w.Type() == mapbuild.TypePortal {
			m.ensureChild(w)
		}
	}
	m.resolver.Resolve(m.snap, m.occluders)

	if m.media != nil {
		d := geom.Distance(m.snap.Pos, m.media.Segment().Midpoint())
		m.mediaVolume = math.Pow(2, -0.3*d)
	}
	m.dirty = false
}

// Camera returns the maze's camera. Changes made through it show up at the
// next UpdateTransforms.
func (m *Maze) Camera() *camera.Camera { return m.camera }

// Snapshot is the camera the last transforms were computed for.
func (m *Maze) Snapshot() camera.Snapshot { return m.snap }

func (m *Maze) Config() *simulation.Config     { return m.cfg }
func (m *Maze) Level() *maploader.Level        { return m.level }
func (m *Maze) Walls() []*Wall                 { return m.walls }
func (m *Maze) Entities() []*Entity            { return m.entities }
func (m *Maze) Models() []*ModelStand          { return m.models }
func (m *Maze) Lights() *lighting.Manager      { return m.lights }
func (m *Maze) Doors() *DoorAnimation          { return m.doors }
func (m *Maze) Resolver() *visibility.Resolver { return m.resolver }

// HostWall is the portal wall id this maze is shown through, or -1 for a
// top-level maze.
func (m *Maze) HostWall() int { return m.hostID }

// SimulationTime is the start of the next step in milliseconds.
func (m *Maze) SimulationTime() int64 { return m.simTime }

// WalkTime is how long the camera has spent moving, in milliseconds.
func (m *Maze) WalkTime() int64 { return m.walkTime }

// Spans returns the occlusion spans from the last resolve.
func (m *Maze) Spans() []visibility.Span { return m.resolver.Spans().Spans() }

// Item returns the projectable registered under the resolver owner id.
func (m *Maze) Item(owner int) Projectable {
	if owner < 0 || owner >= len(m.items) {
		return nil
	}
	return m.items[owner]
}

// MediaVolume returns the media panel's volume for the current camera
// position, and false when the maze has no media panel.
func (m *Maze) MediaVolume() (float64, bool) {
	return m.mediaVolume, m.media != nil
}

// DrawItem is everything a painter needs for one visible quad.
type DrawItem struct {
	Kind     Kind
	WallType mapbuild.WallType
	ID       int

	Transform      geom.Transform2D
	Bounds         geom.Rect
	Target         geom.Rect
	SourceFraction float64
	ZOrder         float64
	Obscured       bool

	Shade    lighting.Shade
	HasShade bool

	SpriteFrame int

	Model       *assets.Model
	ModelMatrix geom.Matrix

	// Child is the nested maze seen through a portal.
	Child *Maze
}

// Frame is the drawable state after a tick.
type Frame struct {
	Camera      camera.Snapshot
	Items       []DrawItem
	MediaVolume float64
	HasMedia    bool
	// Horizon is the normalized screen Y of the vanishing line.
	Horizon float64
}

// Frame collects the visible items ordered far to near.
func (m *Maze) Frame() Frame {
	f := Frame{
		Camera:      m.snap,
		MediaVolume: m.mediaVolume,
		HasMedia:    m.media != nil,
		Horizon:     m.snap.Horizon(),
	}

	for i, it := range m.items {
		p := it.Item()
		if !p.Visible() {
			continue
		}
		shade, hasShade := p.Shade()
		d := DrawItem{
			Kind:           it.Kind(),
			ID:             i,
			Transform:      p.Transform(),
			Bounds:         p.Bounds(),
			Target:         p.TargetRect(),
			SourceFraction: p.SourceFraction(),
			ZOrder:         p.ZOrder(),
			Obscured:       p.Obscured(),
			Shade:          shade,
			HasShade:       hasShade,
		}
		switch v := it.(type) {
		case *Wall:
			d.WallType = v.Type()
			d.ID = v.ID()
			if c := m.children[v.ID()]; c != nil {
				d.Child = c.maze
			}
		case *Entity:
			d.SpriteFrame = v.SpriteFrame()
		case *ModelStand:
			if !v.Loaded() {
				continue
			}
			d.Model = v.Model()
			d.ModelMatrix = v.ModelMatrix()
		}
		f.Items = append(f.Items, d)
	}

	sort.SliceStable(f.Items, func(i, j int) bool {
		return f.Items[i].ZOrder < f.Items[j].ZOrder
	})
	return f
}
