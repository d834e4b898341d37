package state

// Erase returns the strokes that survive an eraser pass. A stroke is removed
// in its entirety when any of its points lies within radius (Euclidean
// distance in logical coordinates) of any point of the eraser path; there is
// no partial trimming, since that would require path splitting. The radius is
// a tool constant, independent of the width of the strokes being erased.
//
// Complexity is O(strokes × pointsPerStroke × eraserPoints), fine at the low
// hundreds of strokes a surface is expected to hold.
func Erase(strokes []Stroke, eraser []Point, radius float64) []Stroke {
	if len(eraser) == 0 || radius <= 0 {
		out := make([]Stroke, len(strokes))
		copy(out, strokes)
		return out
	}
	r2 := radius * radius
	surviving := make([]Stroke, 0, len(strokes))
	for _, s := range strokes {
		if !touched(s, eraser, r2) {
			surviving = append(surviving, s)
		}
	}
	return surviving
}

func touched(s Stroke, eraser []Point, r2 float64) bool {
	for _, p := range s.Points {
		for _, e := range eraser {
			dx := p.X - e.X
			dy := p.Y - e.Y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	return false
}
