package ui

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"inkboard/internal/board"
)

// BoardWidget hosts one annotation session inside Fyne: it forwards pointer
// events into the engine and displays the engine's rendered raster. All
// drawing happens in the engine; the widget itself is just an image plus
// event plumbing.
type BoardWidget struct {
	widget.BaseWidget
	session *board.Session
	img     *canvas.Image

	// zoomEnabled turns mouse-wheel zoom on (the whiteboard preset).
	zoomEnabled bool
	drawing     bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *board.Session, zoomEnabled bool) *BoardWidget {
	w, h := s.Size()
	b := &BoardWidget{
		session:     s,
		zoomEnabled: zoomEnabled,
		img:         canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, w, h))),
	}
	b.img.FillMode = canvas.ImageFillStretch
	b.ExtendBaseWidget(b)

	// State changes arrive from the interaction path and, once, from the
	// background decode goroutine; fyne.Do keeps the refresh on the UI
	// thread either way.
	s.OnChange = func() {
		fyne.Do(b.redraw)
	}
	s.OnDecodeError = func(err error) {
		log.Printf("background image failed to decode, keeping blank canvas: %v", err)
	}

	// Paint the first frame now. A change that landed before the handler
	// was attached, a pre-seeded stroke list included, would otherwise stay
	// invisible until the first pointer event.
	b.redraw()
	return b
}

// redraw pulls the next frame out of the engine. The engine only re-renders
// when something marked the canvas dirty.
func (b *BoardWidget) redraw() {
	frame, err := b.session.Frame()
	if err != nil {
		log.Printf("render failed: %v", err)
		return
	}
	b.img.Image = frame
	canvas.Refresh(b.img)
}

// syncViewport tells the mapper the widget's current on-screen size so
// screen positions land in logical coordinates whatever the display scale.
func (b *BoardWidget) syncViewport() {
	size := b.Size()
	b.session.SetViewport(float64(size.Width), float64(size.Height))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.drawing = true
	b.syncViewport()
	b.session.PointerDown(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.drawing {
		return
	}
	b.drawing = false
	b.session.PointerUp()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.drawing {
		return
	}
	b.syncViewport()
	b.session.PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut is pointer-leave; while drawing it commits the capture exactly
// like a pointer-up.
func (b *BoardWidget) MouseOut() {
	if !b.drawing {
		return
	}
	b.drawing = false
	b.session.PointerLeave()
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	if !b.zoomEnabled {
		return
	}
	if e.Scrolled.DY > 0 {
		b.session.SetZoom(b.session.Zoom() * 1.2)
	} else {
		b.session.SetZoom(b.session.Zoom() / 1.2)
	}
	b.applyZoom()
}

// applyZoom sizes the displayed raster to the widget's size times the zoom
// factor, anchored at the top-left corner. The mapper divides pointer
// positions by the same factor, so the cursor stays over the ink it lays
// down.
func (b *BoardWidget) applyZoom() {
	z := float32(b.session.Zoom())
	size := b.Size()
	b.img.Move(fyne.NewPos(0, 0))
	b.img.Resize(fyne.NewSize(size.Width*z, size.Height*z))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b, bg: canvas.NewRectangle(color.White)}
}

type boardRenderer struct {
	board *BoardWidget
	bg    *canvas.Rectangle
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.board.applyZoom()
}

func (r *boardRenderer) MinSize() fyne.Size { return r.board.MinSize() }

func (r *boardRenderer) Refresh() {
	r.bg.Refresh()
	canvas.Refresh(r.board.img)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.board.img}
}

func (r *boardRenderer) Destroy() {}

func (b *BoardWidget) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
