// Package lighting computes how dark each end of a wall appears. Walls are
// shaded by drawing a translucent black overlay whose alpha is derived from
// the light reaching the wall's endpoints.
package lighting

import (
	"math"

	"chosenoffset.com/wolfmaze/internal/core/geom"
)

// Default falloff parameters.
const (
	DefaultAmbient       = 80.0
	DefaultQuadraticGain = 150.0
	DefaultLinearGain    = 30.0

	// minDistance keeps a light sitting on an endpoint finite.
	minDistance = 1e-3
)

// LightSource is a point light on the map.
type LightSource struct {
	Pos       geom.Point
	Intensity float64
}

// Shade is the overlay for one wall: a flat fill when both alphas match,
// otherwise a horizontal gradient from the A end to the B end.
type Shade struct {
	AlphaA uint8
	AlphaB uint8
}

// Flat reports whether the overlay has a single alpha.
func (s Shade) Flat() bool { return s.AlphaA == s.AlphaB }

// AlphaAt interpolates the overlay alpha at t in [0,1] along the wall.
func (s Shade) AlphaAt(t float64) float64 {
	return float64(s.AlphaA) + (float64(s.AlphaB)-float64(s.AlphaA))*t
}

// Manager handles all light sources of one maze
type Manager struct {
	lights        []LightSource
	ambientLight  float64
	quadraticGain float64
	linearGain    float64
	playerLight   *LightSource
	playerLightOn bool
}

// NewManager creates a lighting manager with the default falloff
func NewManager(lights ...LightSource) *Manager {
	return &Manager{
		lights:        append([]LightSource(nil), lights...),
		ambientLight:  DefaultAmbient,
		quadraticGain: DefaultQuadraticGain,
		linearGain:    DefaultLinearGain,
	}
}

// SetAmbientLight sets the light every point receives
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = level
}

// SetFalloff overrides the per-light gains.
func (m *Manager) SetFalloff(quadratic, linear float64) {
	m.quadraticGain = quadratic
	m.linearGain = linear
}

// AddLight appends a static light.
func (m *Manager) AddLight(l LightSource) {
	m.lights = append(m.lights, l)
}

// SetPlayerLight configures a lamp carried by the player
func (m *Manager) SetPlayerLight(intensity float64) {
	if m.playerLight == nil {
		m.playerLight = &LightSource{}
	}
	m.playerLight.Intensity = intensity
}

// EnablePlayerLight turns on/off the player's lamp
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// IsPlayerLightOn returns whether the player's lamp is currently on
func (m *Manager) IsPlayerLightOn() bool {
	return m.playerLightOn && m.playerLight != nil
}

// UpdatePlayerLightPosition moves the lamp with the camera
func (m *Manager) UpdatePlayerLightPosition(p geom.Point) {
	if m.playerLight != nil {
		m.playerLight.Pos = p
	}
}

// Contribution returns the light l delivers to p, ambient excluded.
func (m *Manager) Contribution(l LightSource, p geom.Point) float64 {
	d := math.Max(geom.Distance(l.Pos, p), minDistance)
	return m.quadraticGain*l.Intensity/(d*d) + m.linearGain*l.Intensity/d
}

// IntensityAt sums ambient light and every active light at p.
func (m *Manager) IntensityAt(p geom.Point) float64 {
	total := m.ambientLight
	for _, l := range m.lights {
		total += m.Contribution(l, p)
	}
	if m.IsPlayerLightOn() {
		total += m.Contribution(*m.playerLight, p)
	}
	return total
}

// Alpha converts an intensity into overlay opacity: the more light, the
// more transparent the overlay.
func Alpha(intensity float64) uint8 {
	a := 255 - math.Floor(intensity)
	return uint8(math.Max(0, math.Min(255, a)))
}

// ShadeSegment computes the overlay for a wall from a to b.
func (m *Manager) ShadeSegment(a, b geom.Point) Shade {
	return Shade{
		AlphaA: Alpha(m.IntensityAt(a)),
		AlphaB: Alpha(m.IntensityAt(b)),
	}
}

// ConstantShade is a flat overlay of the given opacity in [0,1], used for
// walls that ignore the lights.
func ConstantShade(opacity float64) Shade {
	a := uint8(math.Max(0, math.Min(255, math.Floor(opacity*255))))
	return Shade{AlphaA: a, AlphaB: a}
}
