package lighting

import (
	"math"
	"testing"

	"chosenoffset.com/wolfmaze/internal/core/geom"
)

func TestAmbientOnly(t *testing.T) {
	m := NewManager()
	s := m.ShadeSegment(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})

	if s.AlphaA != 175 || s.AlphaB != 175 {
		t.Errorf("Expected alpha 175 from ambient 80, got %d/%d", s.AlphaA, s.AlphaB)
	}
	if !s.Flat() {
		t.Error("Expected flat shade with no lights")
	}
}

func TestSymmetricLightsGiveFlatShade(t *testing.T) {
	// Both lights sit on the perpendicular bisector of the wall
	m := NewManager(
		LightSource{Pos: geom.Point{X: 2.5, Y: 1}, Intensity: 1},
		LightSource{Pos: geom.Point{X: 2.5, Y: 3}, Intensity: 1},
	)
	s := m.ShadeSegment(geom.Point{X: 2, Y: 2}, geom.Point{X: 3, Y: 2})

	if s.AlphaA != s.AlphaB {
		t.Errorf("Expected equal alphas, got %d and %d", s.AlphaA, s.AlphaB)
	}
}

func TestNearerEndIsBrighter(t *testing.T) {
	m := NewManager(LightSource{Pos: geom.Point{X: 2, Y: 2.5}, Intensity: 0.5})
	s := m.ShadeSegment(geom.Point{X: 2, Y: 2}, geom.Point{X: 5, Y: 2})

	if s.Flat() {
		t.Fatal("Expected a gradient")
	}
	if s.AlphaA >= s.AlphaB {
		t.Errorf("Expected the lit end to be more transparent, got %d >= %d", s.AlphaA, s.AlphaB)
	}
}

func TestContributionFalloff(t *testing.T) {
	m := NewManager()
	l := LightSource{Pos: geom.Point{}, Intensity: 2}

	got := m.Contribution(l, geom.Point{X: 2})
	want := 150*2/4.0 + 30*2/2.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, got)
	}
	// A light on the endpoint stays finite
	if c := m.Contribution(l, geom.Point{}); math.IsInf(c, 0) || math.IsNaN(c) {
		t.Errorf("Expected finite contribution, got %f", c)
	}
}

func TestAlphaClamps(t *testing.T) {
	if a := Alpha(1000); a != 0 {
		t.Errorf("Expected 0 for bright light, got %d", a)
	}
	if a := Alpha(-50); a != 255 {
		t.Errorf("Expected 255 for negative light, got %d", a)
	}
	if a := ConstantShade(0.4); a.AlphaA != 102 || !a.Flat() {
		t.Errorf("Expected flat 102, got %+v", a)
	}
}

func TestPlayerLight(t *testing.T) {
	m := NewManager()
	m.SetPlayerLight(1)
	p := geom.Point{X: 1, Y: 1}
	base := m.IntensityAt(p)

	m.EnablePlayerLight(true)
	m.UpdatePlayerLightPosition(geom.Point{X: 1, Y: 2})
	if m.IntensityAt(p) <= base {
		t.Error("Expected the lamp to add light")
	}

	m.EnablePlayerLight(false)
	if m.IntensityAt(p) != base {
		t.Error("Expected the lamp to stop lighting once off")
	}
}
