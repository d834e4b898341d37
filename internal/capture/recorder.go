package capture

import "inkboard/internal/state"

// Tool identifies what the pointer lays down while captured.
type Tool int

const (
	ToolMarker Tool = iota
	ToolHighlighter
	ToolEraser
)

func (t Tool) String() string {
	switch t {
	case ToolMarker:
		return "marker"
	case ToolHighlighter:
		return "highlighter"
	case ToolEraser:
		return "eraser"
	default:
		return "unknown"
	}
}

// Drawing reports whether the tool commits strokes (as opposed to erasing).
func (t Tool) Drawing() bool { return t == ToolMarker || t == ToolHighlighter }

// Gesture is one captured pointer sequence together with the tool state it
// was captured under.
type Gesture struct {
	Tool   Tool
	Color  string
	Width  float64
	Points []state.Point
}

// Recorder is the stroke-capture state machine: Idle until a pointer-down,
// Capturing while the pointer is held, back to Idle on Finish or Cancel.
// Every pointer-move appends exactly one point; no deduplication or
// simplification happens here, trading size for fidelity.
type Recorder struct {
	capturing bool
	gesture   Gesture
}

// Begin starts a capture with the current tool state and the mapped position
// of the pointer-down event. A capture already in progress is discarded.
func (r *Recorder) Begin(tool Tool, color string, width float64, p state.Point) {
	r.capturing = true
	r.gesture = Gesture{
		Tool:   tool,
		Color:  color,
		Width:  width,
		Points: []state.Point{p},
	}
}

// Extend appends one mapped point while capturing. Reports false, and does
// nothing, when no capture is in progress (stray move events).
func (r *Recorder) Extend(p state.Point) bool {
	if !r.capturing {
		return false
	}
	r.gesture.Points = append(r.gesture.Points, p)
	return true
}

// Finish ends the capture on pointer-up (or pointer-leave, which callers
// treat identically) and returns the gesture. ok is false when nothing was
// captured: no capture in progress, or a capture that never recorded a
// point. A single-point gesture is legal; it commits as a dot stroke that
// draws nothing, which is expected, not a bug.
func (r *Recorder) Finish() (g Gesture, ok bool) {
	if !r.capturing {
		return Gesture{}, false
	}
	g = r.gesture
	r.capturing = false
	r.gesture = Gesture{}
	if len(g.Points) == 0 {
		return Gesture{}, false
	}
	return g, true
}

// Cancel discards any capture in progress.
func (r *Recorder) Cancel() {
	r.capturing = false
	r.gesture = Gesture{}
}

// Capturing reports whether a capture is in progress.
func (r *Recorder) Capturing() bool { return r.capturing }

// InProgress returns the gesture being captured for preview rendering.
// ok is false when idle. The returned gesture shares the live point slice;
// render it, don't keep it.
func (r *Recorder) InProgress() (Gesture, bool) {
	if !r.capturing {
		return Gesture{}, false
	}
	return r.gesture, true
}
