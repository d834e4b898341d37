package capture

import (
	"math"
	"testing"

	"inkboard/internal/state"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMapper_HalfScaleCenter(t *testing.T) {
	// Canvas displayed at half its logical resolution: the visual center
	// maps to the logical center.
	m := Mapper{DisplayW: 400, DisplayH: 300, LogicalW: 800, LogicalH: 600}
	p := m.Map(200, 150)
	if !approx(p.X, 400) || !approx(p.Y, 300) {
		t.Errorf("Map(200, 150) = %v, want (400, 300)", p)
	}
}

func TestMapper_AspectMismatch(t *testing.T) {
	// The displayed element is squashed: X and Y scale independently.
	m := Mapper{DisplayW: 800, DisplayH: 200, LogicalW: 800, LogicalH: 600}
	p := m.Map(400, 100)
	if !approx(p.X, 400) || !approx(p.Y, 300) {
		t.Errorf("Map(400, 100) = %v, want (400, 300)", p)
	}
}

func TestMapper_Zoom(t *testing.T) {
	tests := []struct {
		name             string
		zoom             float64
		screenX, screenY float64
		wantX, wantY     float64
	}{
		{"zoomed in 2x", 2, 100, 100, 50, 50},
		{"zoomed out", 0.5, 100, 100, 200, 200},
		{"zero zoom treated as 1", 0, 100, 100, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mapper{DisplayW: 500, DisplayH: 500, LogicalW: 500, LogicalH: 500, Zoom: tt.zoom}
			p := m.Map(tt.screenX, tt.screenY)
			if !approx(p.X, tt.wantX) || !approx(p.Y, tt.wantY) {
				t.Errorf("Map(%v, %v) = %v, want (%v, %v)",
					tt.screenX, tt.screenY, p, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMapper_UnmountedFallsBackToOrigin(t *testing.T) {
	m := Mapper{LogicalW: 800, LogicalH: 600}
	if p := m.Map(123, 456); p != (state.Point{}) {
		t.Errorf("Map() with zero display size = %v, want origin", p)
	}
}
