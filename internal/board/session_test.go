package board

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"

	"inkboard/internal/capture"
	"inkboard/internal/state"
)

func testConfig() Config {
	return Config{
		Name:         "test",
		DefaultTool:  capture.ToolMarker,
		DefaultColor: "#d32f2f",
		DefaultWidth: 4,
		EraserRadius: 20,
		EraserColor:  "#ffffff",
		CanvasW:      200,
		CanvasH:      150,
	}
}

// newTestSession opens a session with the viewport matching the logical
// size, so screen and logical coordinates are identical.
func newTestSession(t *testing.T, initial []state.Stroke) *Session {
	t.Helper()
	s, err := NewSession(testConfig(), initial)
	if err != nil {
		t.Fatal(err)
	}
	s.SetViewport(200, 150)
	return s
}

func drawStroke(s *Session, pts ...state.Point) {
	s.PointerDown(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.PointerMove(p.X, p.Y)
	}
	s.PointerUp()
}

func strokeIDs(strokes []state.Stroke) []string {
	out := make([]string, len(strokes))
	for i, s := range strokes {
		out[i] = s.ID
	}
	return out
}

// The full interaction sequence through the pointer surface: draw A and B,
// undo, draw C (B permanently lost), erase near A.
func TestSession_EndToEndScenario(t *testing.T) {
	s := newTestSession(t, nil)

	// Stroke A: 3 points, marker, red, width 4.
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20}, state.Point{X: 30, Y: 30})
	got := s.Strokes()
	if len(got) != 1 {
		t.Fatalf("committed = %d strokes, want 1", len(got))
	}
	a := got[0]
	if a.Color != "#d32f2f" || a.Width != 4 || a.Highlighter || len(a.Points) != 3 {
		t.Fatalf("stroke A = %+v, want red marker width 4 with 3 points", a)
	}

	// Stroke B: highlighter, yellow, width 20.
	s.SetTool(capture.ToolHighlighter)
	s.SetColor("#fbc02d")
	s.SetWidth(20)
	drawStroke(s, state.Point{X: 100, Y: 100}, state.Point{X: 110, Y: 100})
	got = s.Strokes()
	if len(got) != 2 {
		t.Fatalf("committed = %d strokes, want 2", len(got))
	}
	b := got[1]
	if !b.Highlighter || b.Color != "#fbc02d" || b.Width != 20 {
		t.Fatalf("stroke B = %+v, want yellow highlighter width 20", b)
	}

	s.Undo()
	if got := strokeIDs(s.Strokes()); !reflect.DeepEqual(got, []string{a.ID}) {
		t.Fatalf("after undo committed = %v, want [A]", got)
	}

	// Stroke C: a new commit clears the redo buffer; B is permanently lost.
	s.SetTool(capture.ToolMarker)
	s.SetColor("#000000")
	s.SetWidth(3)
	drawStroke(s, state.Point{X: 150, Y: 100}, state.Point{X: 160, Y: 110})
	got = s.Strokes()
	if len(got) != 2 {
		t.Fatalf("committed = %d strokes, want [A, C]", len(got))
	}
	c := got[1]
	s.Redo()
	if got := strokeIDs(s.Strokes()); !reflect.DeepEqual(got, []string{a.ID, c.ID}) {
		t.Fatalf("redo after commit changed state: %v, want [A, C]", got)
	}

	// Erase near A: the eraser path passes within radius of A only.
	s.SetTool(capture.ToolEraser)
	drawStroke(s, state.Point{X: 12, Y: 12})
	if got := strokeIDs(s.Strokes()); !reflect.DeepEqual(got, []string{c.ID}) {
		t.Errorf("after erase committed = %v, want [C]", got)
	}
}

func TestSession_ClickCommitsSinglePointStroke(t *testing.T) {
	s := newTestSession(t, nil)
	s.PointerDown(50, 50)
	s.PointerUp()
	got := s.Strokes()
	if len(got) != 1 || len(got[0].Points) != 1 {
		t.Fatalf("committed = %v, want one single-point stroke", got)
	}
}

func TestSession_EraseClearsRedoEvenWhenNothingRemoved(t *testing.T) {
	s := newTestSession(t, nil)
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20})
	drawStroke(s, state.Point{X: 100, Y: 100}, state.Point{X: 110, Y: 110})
	s.Undo()

	// Eraser pass far away from everything: removes nothing, still commits.
	s.SetTool(capture.ToolEraser)
	drawStroke(s, state.Point{X: 190, Y: 10})
	before := strokeIDs(s.Strokes())
	s.Redo()
	if got := strokeIDs(s.Strokes()); !reflect.DeepEqual(got, before) {
		t.Errorf("redo after an eraser commit changed state: %v, want %v", got, before)
	}
}

func TestSession_PointerLeaveCommitsLikePointerUp(t *testing.T) {
	s := newTestSession(t, nil)
	s.PointerDown(10, 10)
	s.PointerMove(20, 20)
	s.PointerLeave()
	if got := s.Strokes(); len(got) != 1 || len(got[0].Points) != 2 {
		t.Fatalf("committed = %v, want one 2-point stroke", got)
	}
}

func TestSession_PreseededStrokes(t *testing.T) {
	seed := []state.Stroke{
		state.NewStroke([]state.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, "#000000", 3, false),
	}
	s := newTestSession(t, seed)
	if got := s.Strokes(); len(got) != 1 || got[0].ID != seed[0].ID {
		t.Fatalf("pre-seeded strokes = %v, want %v", got, seed)
	}
}

func TestSession_SaveReturnsDetachedCopies(t *testing.T) {
	s := newTestSession(t, nil)
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20})
	saved := s.Save()
	saved[0].Points[0] = state.Point{X: 999, Y: 999}
	if got := s.Strokes()[0].Points[0]; got != (state.Point{X: 10, Y: 10}) {
		t.Errorf("mutating a saved snapshot reached committed state: %v", got)
	}
}

func TestSession_Restore(t *testing.T) {
	s := newTestSession(t, nil)
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20})
	loaded := []state.Stroke{
		state.NewStroke([]state.Point{{X: 5, Y: 5}}, "#1976d2", 2, false),
	}
	s.Restore(loaded)
	got := s.Strokes()
	if len(got) != 1 || got[0].ID != loaded[0].ID {
		t.Fatalf("after Restore committed = %v, want the loaded list", got)
	}
	s.Undo()
	s.Undo()
	if s.Strokes() == nil {
		// Undo history starts fresh after a restore; just exercise the path.
		t.Log("restore reset history")
	}
}

func TestSession_SnapshotMatchesLogicalSize(t *testing.T) {
	s := newTestSession(t, nil)
	data, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("snapshot is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("snapshot bounds = %v, want 200x150", b)
	}
}

func TestSession_SnapshotExcludesInProgress(t *testing.T) {
	s := newTestSession(t, nil)
	s.PointerDown(10, 75)
	s.PointerMove(190, 75)
	// Capture still open: the snapshot must only contain committed strokes.
	data, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	c := color.NRGBAModel.Convert(img.At(100, 75)).(color.NRGBA)
	if c.A != 0 {
		t.Errorf("snapshot contains the in-progress stroke: %v", c)
	}
}

func TestSession_SnapshotAfterCloseFails(t *testing.T) {
	s := newTestSession(t, nil)
	s.Close()
	if _, err := s.Snapshot(); err == nil {
		t.Error("Snapshot() on closed session succeeded, want error")
	}
}

func TestSession_ClosedIgnoresPointerInput(t *testing.T) {
	s := newTestSession(t, nil)
	s.Close()
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20})
	if got := s.Strokes(); len(got) != 0 {
		t.Errorf("closed session committed strokes: %v", got)
	}
}

func TestSession_ClosedIgnoresUndoRedo(t *testing.T) {
	s := newTestSession(t, nil)
	drawStroke(s, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20})
	drawStroke(s, state.Point{X: 30, Y: 30}, state.Point{X: 40, Y: 40})
	s.Undo()
	s.Close()

	// A late toolbar callback must not mutate history on a torn-down
	// session.
	s.Undo()
	s.Redo()
	if got := len(s.history.Strokes()); got != 1 {
		t.Errorf("committed = %d strokes after undo/redo on closed session, want 1", got)
	}
	if got := s.history.RedoLen(); got != 1 {
		t.Errorf("redo buffer = %d after undo/redo on closed session, want 1", got)
	}
}

func TestSession_DecodeCompletionAfterCloseIsNoop(t *testing.T) {
	s := newTestSession(t, nil)
	s.Close()

	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	s.LoadBackground(&buf)
	s.decodeWG.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface.Background() != nil {
		t.Error("decode completion installed a background into a closed session")
	}
	if w, h := s.surface.Size(); w != 200 || h != 150 {
		t.Errorf("closed session surface resized to %dx%d", w, h)
	}
}

func TestSession_LoadBackgroundResizesSurface(t *testing.T) {
	s := newTestSession(t, nil)
	src := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 8)
	s.OnChange = func() { changed <- struct{}{} }
	s.LoadBackground(&buf)
	s.decodeWG.Wait()

	if w, h := s.Size(); w != 400 || h != 100 {
		t.Errorf("surface = %dx%d after decode, want 400x100", w, h)
	}
	select {
	case <-changed:
	default:
		t.Error("decode completion did not fire OnChange for the re-render")
	}
}

func TestSession_DecodeFailureKeepsBlankCanvas(t *testing.T) {
	s := newTestSession(t, nil)
	errs := make(chan error, 1)
	s.OnDecodeError = func(err error) { errs <- err }
	s.LoadBackground(bytes.NewReader([]byte("junk")))
	s.decodeWG.Wait()

	select {
	case err := <-errs:
		if err == nil {
			t.Error("OnDecodeError fired with nil error")
		}
	default:
		t.Error("OnDecodeError did not fire for an undecodable background")
	}
	// The surface still works without a background.
	if _, err := s.Snapshot(); err != nil {
		t.Errorf("Snapshot() after decode failure: %v", err)
	}
}

func TestSession_ZoomAffectsMapping(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetZoom(2)
	drawStroke(s, state.Point{X: 100, Y: 100})
	got := s.Strokes()
	if len(got) != 1 {
		t.Fatal("no stroke committed")
	}
	if p := got[0].Points[0]; p != (state.Point{X: 50, Y: 50}) {
		t.Errorf("point under 2x zoom = %v, want (50, 50)", p)
	}
}

func TestSession_ZoomClamped(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetZoom(100)
	if got := s.Zoom(); got != maxZoom {
		t.Errorf("Zoom() = %v, want clamped to %v", got, maxZoom)
	}
	s.SetZoom(0.001)
	if got := s.Zoom(); got != minZoom {
		t.Errorf("Zoom() = %v, want clamped to %v", got, minZoom)
	}
}
