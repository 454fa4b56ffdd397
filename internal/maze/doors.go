package maze

// DoorAnimation drives every door of a maze together. Progress runs from
// 0 (closed) to 1 (open) over the configured duration.
type DoorAnimation struct {
	durationMS int
	elapsedMS  int
	opening    bool
	running    bool
}

// NewDoorAnimation returns closed, idle doors.
func NewDoorAnimation(durationMS int) *DoorAnimation {
	return &DoorAnimation{durationMS: durationMS}
}

// Toggle starts the doors moving the other way. Toggling while they move
// reverses them from where they are.
func (d *DoorAnimation) Toggle() {
	d.opening = !d.opening
	d.running = true
}

// Advance moves the animation forward by ms and reports whether progress
// changed.
func (d *DoorAnimation) Advance(ms int) bool {
	if !d.running {
		return false
	}
	if d.opening {
		d.elapsedMS = min(d.elapsedMS+ms, d.durationMS)
		d.running = d.elapsedMS < d.durationMS
	} else {
		d.elapsedMS = max(d.elapsedMS-ms, 0)
		d.running = d.elapsedMS > 0
	}
	return true
}

// Progress returns 0 for closed doors and 1 for open ones.
func (d *DoorAnimation) Progress() float64 {
	return float64(d.elapsedMS) / float64(d.durationMS)
}

// Running reports whether the doors are moving.
func (d *DoorAnimation) Running() bool { return d.running }

// Opening reports the direction of the last toggle.
func (d *DoorAnimation) Opening() bool { return d.opening }

// FullyOpen reports whether doors are at rest and open; only then can
// anything pass.
func (d *DoorAnimation) FullyOpen() bool {
	return !d.running && d.elapsedMS >= d.durationMS
}

// FullyClosed reports whether doors are shut; only then do they hide what
// is behind them.
func (d *DoorAnimation) FullyClosed() bool {
	return d.elapsedMS <= 0
}
