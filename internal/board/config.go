package board

import (
	"inkboard/internal/capture"
	"inkboard/internal/state"
)

// Config parameterizes one engine instance. The standalone image markup tool
// and the embedded whiteboard run the same engine with different presets
// instead of duplicating the state machine.
type Config struct {
	Name string

	// Tool defaults applied when the session opens.
	DefaultTool  capture.Tool
	DefaultColor string
	DefaultWidth float64

	// EraserRadius is the whole-stroke removal distance in logical units.
	// One documented value; see state.DefaultEraserRadius.
	EraserRadius float64

	// EraserColor is the background-matching color the eraser gesture
	// previews in while captured. The preview is visual only.
	EraserColor string

	// CanvasW/CanvasH size the surface when no background image supplies
	// intrinsic dimensions (the whiteboard case).
	CanvasW, CanvasH int
}

// MarkupConfig is the preset for the standalone image markup tool. The
// canvas dimensions are provisional: opening an image re-derives them from
// its intrinsic size.
func MarkupConfig() Config {
	return Config{
		Name:         "markup",
		DefaultTool:  capture.ToolMarker,
		DefaultColor: "#d32f2f",
		DefaultWidth: 4,
		EraserRadius: state.DefaultEraserRadius,
		EraserColor:  "#ffffff",
		CanvasW:      1024,
		CanvasH:      768,
	}
}

// WhiteboardConfig is the preset for the project whiteboard embedded in the
// note editor.
func WhiteboardConfig() Config {
	return Config{
		Name:         "whiteboard",
		DefaultTool:  capture.ToolMarker,
		DefaultColor: "#000000",
		DefaultWidth: 3,
		EraserRadius: state.DefaultEraserRadius,
		EraserColor:  "#ffffff",
		CanvasW:      1600,
		CanvasH:      1000,
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultColor == "" {
		c.DefaultColor = "#000000"
	}
	if c.DefaultWidth <= 0 {
		c.DefaultWidth = 3
	}
	if c.EraserRadius <= 0 {
		c.EraserRadius = state.DefaultEraserRadius
	}
	if c.EraserColor == "" {
		c.EraserColor = "#ffffff"
	}
	if c.CanvasW <= 0 {
		c.CanvasW = 1024
	}
	if c.CanvasH <= 0 {
		c.CanvasH = 768
	}
	return c
}
