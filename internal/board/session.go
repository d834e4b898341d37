// Package board hosts the annotation engine session: one Surface, its stroke
// history, the capture state machine and the renderer, wired together behind
// the pointer/undo/save operations the surrounding application calls.
package board

import (
	"fmt"
	"image"
	"io"
	"sync"

	"inkboard/internal/capture"
	"inkboard/internal/render"
	"inkboard/internal/state"
)

const (
	minZoom = 0.3
	maxZoom = 3.0
)

// Session is one live annotation surface. All pointer and history mutation
// happens on the single interaction goroutine; the one asynchronous edge is
// background decoding, which is guarded by the mutex and by surface
// liveness.
type Session struct {
	cfg Config

	mu       sync.Mutex
	surface  *state.Surface
	history  *state.History
	rec      capture.Recorder
	renderer *render.Renderer
	mapper   capture.Mapper
	closed   bool

	tool  capture.Tool
	color string
	width float64

	decodeWG sync.WaitGroup

	// OnChange fires after any state change that needs a redraw; the UI
	// schedules a refresh from it. OnDecodeError surfaces a failed
	// background decode; the session keeps rendering strokes over a blank
	// canvas either way.
	OnChange      func()
	OnDecodeError func(error)
}

// NewSession opens a surface with the config's canvas dimensions and an
// optional pre-seeded stroke list from persisted state.
func NewSession(cfg Config, initial []state.Stroke) (*Session, error) {
	cfg = cfg.withDefaults()
	surface, err := state.NewSurface(cfg.CanvasW, cfg.CanvasH)
	if err != nil {
		return nil, fmt.Errorf("open %s session: %w", cfg.Name, err)
	}
	renderer, err := render.New(cfg.CanvasW, cfg.CanvasH)
	if err != nil {
		return nil, fmt.Errorf("open %s session: %w", cfg.Name, err)
	}
	s := &Session{
		cfg:      cfg,
		surface:  surface,
		history:  state.NewHistory(initial),
		renderer: renderer,
		tool:     cfg.DefaultTool,
		color:    cfg.DefaultColor,
		width:    cfg.DefaultWidth,
	}
	s.mapper = capture.Mapper{
		LogicalW: float64(cfg.CanvasW),
		LogicalH: float64(cfg.CanvasH),
		Zoom:     1,
	}
	return s, nil
}

// NewSessionFromImage opens a surface sized to an already-decoded background
// raster, with an optional pre-seeded stroke list captured against that same
// image's logical space.
func NewSessionFromImage(cfg Config, img image.Image, initial []state.Stroke) (*Session, error) {
	cfg = cfg.withDefaults()
	surface, err := state.NewSurfaceFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("open %s session: %w", cfg.Name, err)
	}
	w, h := surface.Size()
	renderer, err := render.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("open %s session: %w", cfg.Name, err)
	}
	s := &Session{
		cfg:      cfg,
		surface:  surface,
		history:  state.NewHistory(initial),
		renderer: renderer,
		tool:     cfg.DefaultTool,
		color:    cfg.DefaultColor,
		width:    cfg.DefaultWidth,
	}
	s.mapper = capture.Mapper{LogicalW: float64(w), LogicalH: float64(h), Zoom: 1}
	return s, nil
}

// LoadBackground decodes a background image off the interaction goroutine
// and, once decoded, replaces the surface with one sized to the image.
// Rendering in the meantime draws strokes over a blank canvas; the
// completion re-renders automatically. A session closed while the decode is
// in flight makes the completion a no-op. A failed decode leaves the surface
// backgroundless and reports through OnDecodeError.
func (s *Session) LoadBackground(r io.Reader) {
	s.decodeWG.Add(1)
	go func() {
		defer s.decodeWG.Done()
		img, err := state.DecodeImage(r)
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		if err != nil {
			if s.OnDecodeError != nil {
				s.OnDecodeError(err)
			}
			return
		}
		s.adoptBackground(img)
	}()
}

// ReplaceBackground swaps in a new background image. The stroke list is
// discarded: strokes are defined in the old surface's logical space and a
// new background means a new surface, not a mutation of the old one.
func (s *Session) ReplaceBackground(r io.Reader) {
	s.mu.Lock()
	if !s.closed {
		s.history = state.NewHistory(nil)
		s.rec.Cancel()
	}
	s.mu.Unlock()
	s.LoadBackground(r)
}

func (s *Session) adoptBackground(img image.Image) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	surface, err := state.NewSurfaceFromImage(img)
	if err != nil {
		s.mu.Unlock()
		if s.OnDecodeError != nil {
			s.OnDecodeError(err)
		}
		return
	}
	w, h := surface.Size()
	renderer, err := render.New(w, h)
	if err != nil {
		s.mu.Unlock()
		if s.OnDecodeError != nil {
			s.OnDecodeError(err)
		}
		return
	}
	s.surface.Close()
	s.surface = surface
	s.renderer = renderer
	s.mapper.LogicalW = float64(w)
	s.mapper.LogicalH = float64(h)
	s.renderer.MarkDirty()
	s.mu.Unlock()
	s.notify()
}

// SetViewport tells the mapper the canvas element's current on-screen size.
func (s *Session) SetViewport(displayW, displayH float64) {
	s.mu.Lock()
	s.mapper.DisplayW = displayW
	s.mapper.DisplayH = displayH
	s.mu.Unlock()
}

// SetZoom sets the display zoom factor, clamped to a sane range.
func (s *Session) SetZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	s.mu.Lock()
	s.mapper.Zoom = z
	s.renderer.MarkDirty()
	s.mu.Unlock()
	s.notify()
}

// Zoom returns the current display zoom factor.
func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapper.Zoom <= 0 {
		return 1
	}
	return s.mapper.Zoom
}

// SetTool selects the tool applied to the next capture.
func (s *Session) SetTool(t capture.Tool) {
	s.mu.Lock()
	s.tool = t
	s.mu.Unlock()
}

// Tool returns the currently selected tool.
func (s *Session) Tool() capture.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// SetColor selects the stroke color (RGB hex) for the next capture.
func (s *Session) SetColor(hex string) {
	s.mu.Lock()
	s.color = hex
	s.mu.Unlock()
}

// Color returns the currently selected stroke color.
func (s *Session) Color() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// SetWidth selects the stroke width for the next capture.
func (s *Session) SetWidth(w float64) {
	if w <= 0 {
		return
	}
	s.mu.Lock()
	s.width = w
	s.mu.Unlock()
}

// Width returns the currently selected stroke width.
func (s *Session) Width() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// PointerDown starts a capture at a screen-space position.
func (s *Session) PointerDown(screenX, screenY float64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	p := s.mapper.Map(screenX, screenY)
	s.rec.Begin(s.tool, s.color, s.width, p)
	s.renderer.MarkDirty()
	s.mu.Unlock()
	s.notify()
}

// PointerMove extends the capture in progress; stray moves are ignored.
func (s *Session) PointerMove(screenX, screenY float64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	p := s.mapper.Map(screenX, screenY)
	extended := s.rec.Extend(p)
	if extended {
		s.renderer.MarkDirty()
	}
	s.mu.Unlock()
	if extended {
		s.notify()
	}
}

// PointerUp ends the capture. A marker or highlighter gesture commits as a
// new immutable stroke; an eraser gesture removes every stroke it touched.
// Either way the redo buffer is gone: redo validity does not survive
// interleaved edits.
func (s *Session) PointerUp() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.finishCaptureLocked()
	s.mu.Unlock()
	s.notify()
}

// PointerLeave is pointer-leave while capturing, treated identically to
// pointer-up at the last captured position.
func (s *Session) PointerLeave() {
	s.mu.Lock()
	if s.closed || !s.rec.Capturing() {
		s.mu.Unlock()
		return
	}
	s.finishCaptureLocked()
	s.mu.Unlock()
	s.notify()
}

// finishCaptureLocked commits the captured gesture: drawing tools append an
// immutable stroke, the eraser removes everything its path touched. Both
// are commits, so the redo buffer clears regardless of whether the eraser
// actually removed anything.
func (s *Session) finishCaptureLocked() {
	g, ok := s.rec.Finish()
	if ok {
		if g.Tool.Drawing() {
			stroke := state.NewStroke(g.Points, g.Color, g.Width, g.Tool == capture.ToolHighlighter)
			s.history.Commit(stroke)
		} else {
			surviving := state.Erase(s.history.Strokes(), g.Points, s.cfg.EraserRadius)
			s.history.ReplaceCommitted(surviving)
		}
	}
	s.renderer.MarkDirty()
}

// Undo removes the newest committed stroke, keeping it available for redo.
func (s *Session) Undo() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := s.history.Undo()
	if changed {
		s.renderer.MarkDirty()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Redo re-commits the most recently undone stroke, if still valid.
func (s *Session) Redo() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := s.history.Redo()
	if changed {
		s.renderer.MarkDirty()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Strokes returns the committed stroke list in order.
func (s *Session) Strokes() []state.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Strokes()
}

// Restore replaces the committed stroke list from persisted state, the same
// as re-opening the surface pre-seeded. Undo history does not survive it.
func (s *Session) Restore(strokes []state.Stroke) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.history = state.NewHistory(strokes)
	s.rec.Cancel()
	s.renderer.MarkDirty()
	s.mu.Unlock()
	s.notify()
}

// Save returns deep-copied snapshots of the committed strokes for the caller
// to persist in its own document model.
func (s *Session) Save() []state.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.CloneStrokes(s.history.Strokes())
}

// Frame redraws the canvas if anything changed and returns its pixels.
// The in-progress gesture, when one exists, draws on top with the current
// tool state; the eraser previews in the configured background-matching
// color.
func (s *Session) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := render.Frame{
		Surface:     s.surface,
		Committed:   s.history.Strokes(),
		EraserColor: s.cfg.EraserColor,
		EraserWidth: s.cfg.EraserRadius,
	}
	if g, ok := s.rec.InProgress(); ok {
		f.InProgress = &g
	}
	img, err := s.renderer.Redraw(f)
	if err != nil {
		return nil, fmt.Errorf("render %s session: %w", s.cfg.Name, err)
	}
	return img, nil
}

// Snapshot flattens background plus committed strokes into PNG bytes.
// It waits for any in-flight background decode first so an export can never
// race the decode into a stale or blank background.
func (s *Session) Snapshot() ([]byte, error) {
	s.decodeWG.Wait()
	s.mu.Lock()
	surface := s.surface
	committed := s.history.Strokes()
	s.mu.Unlock()
	return render.Composite(surface, committed)
}

// Size returns the surface's logical dimensions.
func (s *Session) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Size()
}

// Cancel discards the session without returning strokes: the caller keeps
// whatever it last persisted.
func (s *Session) Cancel() { s.Close() }

// Close tears the session down. In-flight decode completions and later
// pointer or export calls observe this and become no-ops or errors.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.rec.Cancel()
	s.surface.Close()
	s.mu.Unlock()
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
