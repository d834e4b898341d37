// Package render is the raster side of the engine: a pure clear-and-redraw
// pipeline from (background, committed strokes, in-progress gesture) to
// canvas pixels, and the compositor flattening the same canvas to PNG bytes
// for persistence or document embedding.
package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"inkboard/internal/capture"
	"inkboard/internal/state"
)

// Frame is everything one redraw needs. Later items draw on top of earlier
// ones: background, then committed strokes in order, then the in-progress
// gesture.
type Frame struct {
	Surface   *state.Surface
	Committed []state.Stroke

	// InProgress, when non-nil, is the capture being drawn right now. An
	// eraser gesture renders as a preview in EraserColor at EraserWidth; the
	// actual removal only happens at commit.
	InProgress  *capture.Gesture
	EraserColor string
	EraserWidth float64
}

// Renderer owns the drawing context for one surface and the mark-dirty /
// redraw-on-tick contract: state changes call MarkDirty, the next display
// tick calls Redraw, and clean frames cost nothing.
type Renderer struct {
	dc    *gg.Context
	dirty bool

	// background conversion cache; the image is immutable once decoded
	bgSrc image.Image
	bgBuf *gg.ImageBuf
}

// New creates a renderer for a surface of the given logical dimensions.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid renderer dimensions %dx%d", width, height)
	}
	return &Renderer{dc: gg.NewContext(width, height), dirty: true}, nil
}

// MarkDirty records that the canvas needs redrawing on the next tick.
func (r *Renderer) MarkDirty() { r.dirty = true }

// Dirty reports whether a redraw is pending.
func (r *Renderer) Dirty() bool { return r.dirty }

// Image returns the most recently drawn canvas pixels.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// Redraw runs the full pipeline if a redraw is pending and returns the
// canvas pixels either way. A full clear-and-redraw every time is fine at
// the stroke counts a surface holds; there is no dirty-region tracking.
func (r *Renderer) Redraw(f Frame) (image.Image, error) {
	if !r.dirty {
		return r.dc.Image(), nil
	}
	if err := r.draw(f); err != nil {
		return nil, err
	}
	r.dirty = false
	return r.dc.Image(), nil
}

func (r *Renderer) draw(f Frame) error {
	dc := r.dc
	dc.Clear()

	// Background stretched to fill the logical canvas exactly. No
	// letterboxing: the logical dimensions were derived from this image, so
	// any aspect mismatch is the caller replacing backgrounds without
	// rebuilding the surface.
	if f.Surface != nil {
		if bg := f.Surface.Background(); bg != nil {
			dc.DrawImage(r.backgroundBuf(bg), 0, 0)
		}
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, s := range f.Committed {
		if err := strokePath(dc, s.Points, s.Color, s.Width, s.Alpha()); err != nil {
			return fmt.Errorf("draw stroke %s: %w", s.ID, err)
		}
	}

	if g := f.InProgress; g != nil {
		color, width, alpha := g.Color, g.Width, 1.0
		switch g.Tool {
		case capture.ToolHighlighter:
			alpha = state.HighlighterAlpha
		case capture.ToolEraser:
			color, width = f.EraserColor, f.EraserWidth
		}
		if err := strokePath(dc, g.Points, color, width, alpha); err != nil {
			return fmt.Errorf("draw in-progress gesture: %w", err)
		}
	}
	return nil
}

// backgroundBuf scales the decoded background to the canvas dimensions once
// and caches the result; the decoded image is immutable, so the cache only
// invalidates when the surface adopts a new background.
func (r *Renderer) backgroundBuf(bg image.Image) *gg.ImageBuf {
	if r.bgBuf == nil || r.bgSrc != bg {
		r.bgSrc = bg
		scaled := image.NewRGBA(image.Rect(0, 0, r.dc.Width(), r.dc.Height()))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), bg, bg.Bounds(), draw.Src, nil)
		r.bgBuf = gg.ImageBufFromImage(scaled)
	}
	return r.bgBuf
}

// strokePath connects the points with straight line segments under round
// caps and joins, a deliberate approximation of a pen stroke from discrete
// samples with no curve fitting. Fewer than two points draws nothing.
// Unparseable colors fall back to black rather than refusing to draw.
func strokePath(dc *gg.Context, points []state.Point, hex string, width, alpha float64) error {
	if len(points) < 2 || width <= 0 {
		return nil
	}
	c := gg.Hex(hex)
	dc.SetRGBA(c.R, c.G, c.B, alpha)
	dc.SetLineWidth(width)
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	return dc.Stroke()
}

// Composite flattens background plus committed strokes into PNG bytes at the
// surface's exact logical dimensions. In-progress gestures are never
// included. It fails, producing nothing, on a torn-down or degenerate
// surface.
func Composite(surface *state.Surface, committed []state.Stroke) ([]byte, error) {
	if surface == nil {
		return nil, fmt.Errorf("composite: no surface")
	}
	if surface.Closed() {
		return nil, fmt.Errorf("composite: %w", state.ErrSurfaceClosed)
	}
	w, h := surface.Size()
	r, err := New(w, h)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	if _, err := r.Redraw(Frame{Surface: surface, Committed: committed}); err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("composite: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
