// Package capture turns raw pointer input into committed vector gestures:
// a coordinate mapper from screen to logical canvas space and a small state
// machine accumulating the points of one stroke.
package capture

import (
	"inkboard/internal/state"
)

// Mapper converts pointer positions from screen space into the surface's
// logical coordinate system. The X and Y scale factors are independent: when
// the displayed widget does not preserve the canvas aspect ratio the two
// axes stretch differently, and both must still map correctly.
type Mapper struct {
	DisplayW float64 // on-screen size of the canvas element
	DisplayH float64
	LogicalW float64 // backing resolution of the surface
	LogicalH float64
	Zoom     float64 // optional display zoom; <= 0 means 1
}

// Map converts a screen-space pointer position to a logical-space point.
// While the surface is not yet mounted (zero display size) it returns the
// origin; callers tolerate a transient (0,0) point during initialization.
func (m Mapper) Map(screenX, screenY float64) state.Point {
	if m.DisplayW <= 0 || m.DisplayH <= 0 {
		return state.Point{}
	}
	zoom := m.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	scaleX := m.LogicalW / (m.DisplayW * zoom)
	scaleY := m.LogicalH / (m.DisplayH * zoom)
	return state.Point{X: screenX * scaleX, Y: screenY * scaleY}
}
