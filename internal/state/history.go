package state

// History is the ordered list of committed strokes plus the undo/redo stacks.
//
// The redo buffer is only ever non-empty between an undo and the next commit:
// every commit, whether a new stroke or an eraser pass, clears it. Undo moves
// the newest committed stroke to the front of the buffer (most recently
// undone first) and redo re-appends from the front, so an undo followed
// immediately by a redo restores the committed sequence exactly.
//
// History is not safe for concurrent use; all stroke-state transitions run on
// the single interaction goroutine.
type History struct {
	committed []Stroke
	redo      []Stroke
}

// NewHistory creates a history, optionally pre-seeded with persisted strokes.
func NewHistory(initial []Stroke) *History {
	return &History{committed: CloneStrokes(initial)}
}

// Commit appends a stroke and invalidates any pending redo state.
func (h *History) Commit(s Stroke) {
	h.committed = append(h.committed, s)
	h.redo = nil
}

// Undo moves the most recent committed stroke into the redo buffer.
// Reports whether anything changed.
func (h *History) Undo() bool {
	if len(h.committed) == 0 {
		return false
	}
	last := h.committed[len(h.committed)-1]
	h.committed = h.committed[:len(h.committed)-1]
	h.redo = append([]Stroke{last}, h.redo...)
	return true
}

// Redo re-commits the most recently undone stroke.
// Reports whether anything changed.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	front := h.redo[0]
	h.redo = h.redo[1:]
	h.committed = append(h.committed, front)
	return true
}

// ReplaceCommitted swaps in the strokes surviving an eraser pass. The redo
// buffer is cleared even when the pass removed nothing: the erase still
// counts as a commit.
func (h *History) ReplaceCommitted(strokes []Stroke) {
	h.committed = strokes
	h.redo = nil
}

// Strokes returns the committed strokes in order. The slice is a copy; the
// strokes themselves are immutable and shared.
func (h *History) Strokes() []Stroke {
	out := make([]Stroke, len(h.committed))
	copy(out, h.committed)
	return out
}

// Len returns the number of committed strokes.
func (h *History) Len() int { return len(h.committed) }

// RedoLen returns the number of strokes available to redo.
func (h *History) RedoLen() int { return len(h.redo) }
