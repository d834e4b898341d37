package ui

import (
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"inkboard/internal/board"
	"inkboard/internal/export"
)

// RunWhiteboard opens the embedded project whiteboard on a blank surface.
func RunWhiteboard() {
	session, err := board.NewSession(board.WhiteboardConfig(), nil)
	if err != nil {
		log.Fatalf("Failed to open whiteboard: %v", err)
	}
	runWindow("Whiteboard", session, true, false, nil)
}

// RunMarkup opens the standalone image markup tool on the given image file.
// The surface sizes itself to the image once the decode completes; until
// then strokes draw over a blank canvas. The decode only starts once the
// board widget's change handler is attached, so a fast decode cannot
// complete into the void and leave the image invisible.
func RunMarkup(path string) {
	session, err := board.NewSession(board.MarkupConfig(), nil)
	if err != nil {
		log.Fatalf("Failed to open markup tool: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open image %s: %v", path, err)
	}
	runWindow("Image Markup", session, false, true, func() {
		session.ReplaceBackground(f)
	})
}

// runWindow builds the window around the session's board widget. onReady,
// when non-nil, runs after the widget exists and is listening for changes.
func runWindow(title string, session *board.Session, zoomEnabled, markup bool, onReady func()) {
	a := app.New()
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(1024, 768))

	boardWidget := NewBoardWidget(session, zoomEnabled)
	toolbar := NewToolbar(session)
	actions := newActionBar(w, session, markup)
	if onReady != nil {
		onReady()
	}

	content := container.NewBorder(
		container.NewVBox(toolbar, actions), nil, nil, nil,
		boardWidget,
	)
	w.SetContent(content)
	w.SetOnClosed(func() {
		session.Close()
	})
	w.ShowAndRun()
}

// newActionBar builds undo/redo, stroke-list save/load and the two export
// paths (PNG download, PDF embedding).
func newActionBar(win fyne.Window, session *board.Session, markup bool) fyne.CanvasObject {
	items := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.ContentUndoIcon(), session.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), session.Redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			saveStrokesDialog(win, session)
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			loadStrokesDialog(win, session)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			exportPNGDialog(win, session)
		}),
		widget.NewToolbarAction(theme.FileTextIcon(), func() {
			exportPDFDialog(win, session)
		}),
	}
	if markup {
		items = append(items,
			widget.NewToolbarSeparator(),
			widget.NewToolbarAction(theme.MediaPhotoIcon(), func() {
				replaceImageDialog(win, session)
			}),
		)
	}
	return widget.NewToolbar(items...)
}

func saveStrokesDialog(win fyne.Window, session *board.Session) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		strokes := session.Save()
		if err := SaveStrokes(writer, strokes); err != nil {
			log.Printf("Save failed: %v", err)
			dialog.ShowError(err, win)
			return
		}
		log.Printf("Saved %d strokes to %s", len(strokes), writer.URI())
	}, win)
}

func loadStrokesDialog(win fyne.Window, session *board.Session) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		strokes, err := LoadStrokes(reader)
		if err != nil {
			log.Printf("Load failed: %v", err)
			dialog.ShowError(err, win)
			return
		}
		// Loading persisted strokes replaces the session's history
		// wholesale, same as opening the surface pre-seeded.
		session.Restore(strokes)
		log.Printf("Loaded %d strokes from %s", len(strokes), reader.URI())
	}, win)
}

func exportPNGDialog(win fyne.Window, session *board.Session) {
	snapshot, err := session.Snapshot()
	if err != nil {
		log.Printf("Export failed: %v", err)
		dialog.ShowError(err, win)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WritePNG(writer, snapshot); err != nil {
			log.Printf("Export failed: %v", err)
			dialog.ShowError(err, win)
		}
	}, win)
}

func exportPDFDialog(win fyne.Window, session *board.Session) {
	snapshot, err := session.Snapshot()
	if err != nil {
		log.Printf("Export failed: %v", err)
		dialog.ShowError(err, win)
		return
	}
	w, h := session.Size()
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WritePDF(writer, snapshot, w, h); err != nil {
			log.Printf("Export failed: %v", err)
			dialog.ShowError(err, win)
		}
	}, win)
}

func replaceImageDialog(win fyne.Window, session *board.Session) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		// The decode goroutine closes the reader when it finishes.
		session.ReplaceBackground(reader)
	}, win)
}
