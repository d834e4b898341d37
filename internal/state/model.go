package state

import (
	"github.com/google/uuid"
)

const (
	// HighlighterAlpha is the fixed opacity highlighter strokes render at.
	// Markers and the eraser preview render fully opaque.
	HighlighterAlpha = 0.4

	// DefaultEraserRadius is the distance, in logical canvas units, within
	// which an eraser pass removes a stroke. The original call sites used
	// 15, 20 and 30 with no rationale; 20 is the intentionally-set value
	// here, overridable per board instance.
	DefaultEraserRadius = 20.0
)

// Point is a position in logical canvas coordinates, not screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous freehand gesture: an ordered point sequence plus
// rendering attributes. A committed stroke is immutable; anything that needs
// a modified stroke builds a new one so undo snapshots stay valid.
type Stroke struct {
	ID          string  `json:"id"`
	Points      []Point `json:"points"`
	Color       string  `json:"color"` // RGB hex, e.g. "#ff0000"
	Width       float64 `json:"width"`
	Highlighter bool    `json:"highlighter"`
}

// NewStroke builds a committed stroke from a captured point sequence.
// The points are copied so the caller's buffer can be reused.
func NewStroke(points []Point, color string, width float64, highlighter bool) Stroke {
	pts := make([]Point, len(points))
	copy(pts, points)
	return Stroke{
		ID:          uuid.NewString(),
		Points:      pts,
		Color:       color,
		Width:       width,
		Highlighter: highlighter,
	}
}

// Clone returns a deep copy of the stroke.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// Alpha returns the opacity the stroke renders at.
func (s Stroke) Alpha() float64 {
	if s.Highlighter {
		return HighlighterAlpha
	}
	return 1.0
}

// CloneStrokes deep-copies a stroke list. Used when handing snapshots across
// the engine boundary so callers can never alias committed state.
func CloneStrokes(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}
