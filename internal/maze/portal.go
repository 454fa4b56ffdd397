package maze

import "time"

// child is a nested maze shown through a portal wall. born is the parent's
// clock when the child was built, so the child's own clock starts at zero.
type child struct {
	maze *Maze
	born time.Duration
}

// ensureChild builds the maze behind a portal the first time the portal is
// seen. A level without a portal definition leaves the wall blank; a
// failed build is remembered so it is not retried every frame.
func (m *Maze) ensureChild(w *Wall) {
	if _, ok := m.children[w.ID()]; ok {
		return
	}
	if m.level.Portal == nil {
		m.children[w.ID()] = &child{}
		return
	}

	opts := m.opts
	opts.Clock = nil
	c, err := newMaze(m.level.Portal, opts, w.ID())
	if err != nil {
		m.logger.Warn("portal maze unavailable", "wall", w.ID(), "err", err)
		m.children[w.ID()] = &child{}
		return
	}

	born := time.Duration(m.simTime) * time.Millisecond
	m.children[w.ID()] = &child{maze: c, born: born}
	m.logger.Info("portal maze built", "wall", w.ID(), "level", m.level.Portal.Data.Name)
}

// Child returns the maze behind the given portal wall, or nil when it has
// not been seen yet.
func (m *Maze) Child(wallID int) *Maze {
	if c := m.children[wallID]; c != nil {
		return c.maze
	}
	return nil
}
