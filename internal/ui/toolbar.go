package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"inkboard/internal/board"
	"inkboard/internal/capture"
)

// swatch is one tappable color square in the palette.
type swatch struct {
	widget.BaseWidget
	hex      string
	fill     color.Color
	OnTapped func(hex string)
}

func newSwatch(hex string, fill color.Color, tapped func(string)) *swatch {
	s := &swatch{hex: hex, fill: fill, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.fill)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *swatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.hex)
	}
}

// NewToolbar builds the tool strip: marker/highlighter/eraser, the color
// palette and the width slider, all driving one session.
func NewToolbar(session *board.Session) fyne.CanvasObject {
	// Remember the drawing color across a trip through the eraser.
	lastColor := session.Color()
	lastWidth := session.Width()

	widthSlider := widget.NewSlider(1.0, 50.0)
	widthSlider.SetValue(session.Width())
	widthSlider.OnChanged = func(val float64) {
		session.SetWidth(val)
		if session.Tool().Drawing() {
			lastWidth = val
		}
	}

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			session.SetTool(capture.ToolMarker)
			session.SetColor(lastColor)
			session.SetWidth(lastWidth)
			widthSlider.SetValue(lastWidth)
		}),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() {
			session.SetTool(capture.ToolHighlighter)
			session.SetColor(lastColor)
			// Highlighters lay down broad translucent bands.
			session.SetWidth(20)
			widthSlider.SetValue(20)
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			session.SetTool(capture.ToolEraser)
		}),
	)

	onColorTapped := func(hex string) {
		lastColor = hex
		session.SetColor(hex)
		if !session.Tool().Drawing() {
			session.SetTool(capture.ToolMarker)
		}
	}
	palette := container.NewHBox(
		newSwatch("#000000", color.Black, onColorTapped),
		newSwatch("#d32f2f", color.NRGBA{R: 211, G: 47, B: 47, A: 255}, onColorTapped),
		newSwatch("#388e3c", color.NRGBA{R: 56, G: 142, B: 60, A: 255}, onColorTapped),
		newSwatch("#1976d2", color.NRGBA{R: 25, G: 118, B: 210, A: 255}, onColorTapped),
		newSwatch("#fbc02d", color.NRGBA{R: 251, G: 192, B: 45, A: 255}, onColorTapped),
	)

	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		palette,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}
