// Package mapbuild turns a character grid into wall segments. Open cells
// emit one segment for every side that borders a wall or door cell.
package mapbuild

import "fmt"

// WallType identifies what a wall segment shows and how it behaves.
type WallType int

const (
	TypeDoor        WallType = -1 // '-' sliding door
	TypeWall        WallType = 0  // '#' plain wall
	TypeDecorated   WallType = 1  // '&' decorated wall
	TypeWindow      WallType = 2  // '@' window, see-through and passable
	TypeDoorControl WallType = 3  // '%' panel that toggles the doors
	TypePortal      WallType = 4  // '$' view into a nested maze
	TypeNPCPanel    WallType = 5  // '?' behavior console
	TypeBlocker     WallType = 6  // '!' invisible barrier
	TypeMedia       WallType = 7  // '=' media panel
	TypeModelStand  WallType = 8  // '*' model display
	TypePanelA      WallType = 9  // '/' info panel
	TypePanelB      WallType = 10 // '.' info panel
)

// Cell characters that are not walls.
const (
	CellOpen = ' '
	CellDoor = '-'
)

var legend = map[rune]WallType{
	'-': TypeDoor,
	'#': TypeWall,
	'&': TypeDecorated,
	'@': TypeWindow,
	'%': TypeDoorControl,
	'$': TypePortal,
	'?': TypeNPCPanel,
	'!': TypeBlocker,
	'=': TypeMedia,
	'*': TypeModelStand,
	'/': TypePanelA,
	'.': TypePanelB,
}

var typeNames = map[WallType]string{
	TypeDoor:        "door",
	TypeWall:        "wall",
	TypeDecorated:   "decorated",
	TypeWindow:      "window",
	TypeDoorControl: "door_control",
	TypePortal:      "portal",
	TypeNPCPanel:    "npc_panel",
	TypeBlocker:     "blocker",
	TypeMedia:       "media",
	TypeModelStand:  "model_stand",
	TypePanelA:      "panel_a",
	TypePanelB:      "panel_b",
}

// Lookup returns the wall type for a map character. ok is false for open
// cells and unknown characters alike; use IsOpen to tell them apart.
func Lookup(r rune) (WallType, bool) {
	if r == CellOpen {
		return 0, false
	}
	t, ok := legend[r]
	return t, ok
}

// IsOpen reports whether a cell can be walked into and emits walls.
// Door cells are open; the door is the wall between them and their
// neighbours.
func IsOpen(r rune) bool {
	return r == CellOpen || r == CellDoor
}

// IsKnown reports whether r is part of the legend.
func IsKnown(r rune) bool {
	_, ok := legend[r]
	return ok || r == CellOpen
}

func (t WallType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("WallType(%d)", int(t))
}

// Passable walls never stop movement.
func (t WallType) Passable() bool {
	return t == TypeWindow
}

// Hidden walls are never drawn and never hide anything.
func (t WallType) Hidden() bool {
	return t == TypeBlocker
}

// Opaque reports whether a wall of this type hides what is behind it.
// Doors are opaque only while fully closed, which the caller decides.
func (t WallType) Opaque() bool {
	return t != TypeWindow && t != TypeBlocker
}

// ConstantLight walls ignore the light sources.
func (t WallType) ConstantLight() bool {
	return t == TypeWindow
}
