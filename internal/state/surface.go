package state

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	// Background images come from the surrounding application as files of
	// whatever format the user had; register the decoders up front.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxSurfaceDim caps the logical canvas resolution derived from a background
// image. Larger images keep their aspect ratio and scale down.
const MaxSurfaceDim = 2048

// ErrSurfaceClosed is returned by operations on a torn-down surface.
var ErrSurfaceClosed = errors.New("surface is closed")

// Surface is the fixed-resolution logical canvas strokes are defined on.
// Its dimensions are derived once, at creation, and never change; replacing
// the background image means building a new surface, because existing stroke
// coordinates would silently go stale otherwise.
//
// The background may arrive after creation: decoding happens off the
// interaction goroutine, so access is mutex-guarded and the completion path
// checks liveness before touching a surface the user may have closed.
type Surface struct {
	width  int
	height int

	mu         sync.RWMutex
	background image.Image
	closed     bool
}

// NewSurface creates a blank surface with the given logical dimensions.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface dimensions %dx%d", width, height)
	}
	return &Surface{width: width, height: height}, nil
}

// NewSurfaceFromImage creates a surface sized to the image's intrinsic
// dimensions, capped to MaxSurfaceDim with aspect ratio preserved, and with
// the image installed as the background.
func NewSurfaceFromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	w, h := FitDimensions(b.Dx(), b.Dy(), MaxSurfaceDim)
	s, err := NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("derive surface from image: %w", err)
	}
	s.background = img
	return s, nil
}

// FitDimensions caps w×h to max on the longer side, preserving aspect ratio.
// Dimensions already within the bound pass through unchanged.
func FitDimensions(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		return max, h * max / w
	}
	return w * max / h, max
}

// Size returns the fixed logical dimensions.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Background returns the background image, or nil while none is set
// (not yet decoded, decode failed, or a plain whiteboard surface).
func (s *Surface) Background() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

// SetBackground installs a decoded background. It reports false, without
// installing anything, when the surface was closed while the decode was in
// flight; the caller's completion path must treat that as a no-op.
func (s *Surface) SetBackground(img image.Image) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.background = img
	return true
}

// Close marks the surface as torn down. Pending decode completions and
// export calls observe this and bail out.
func (s *Surface) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether the surface has been torn down.
func (s *Surface) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// DecodeImage decodes a background image in any registered format.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode background image: %w", err)
	}
	return img, nil
}
