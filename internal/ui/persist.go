package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"inkboard/internal/state"
)

// The engine's save/load boundary: the caller owns persistence, the engine
// only hands over ordered immutable stroke snapshots. The on-disk form is
// plain JSON of the stroke list.

// SaveStrokes writes a stroke list as indented JSON.
func SaveStrokes(w io.Writer, strokes []state.Stroke) error {
	data, err := json.MarshalIndent(strokes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal strokes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write strokes: %w", err)
	}
	return nil
}

// LoadStrokes reads a stroke list previously written by SaveStrokes.
func LoadStrokes(r io.Reader) ([]state.Stroke, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read strokes: %w", err)
	}
	var strokes []state.Stroke
	if err := json.Unmarshal(data, &strokes); err != nil {
		return nil, fmt.Errorf("parse strokes: %w", err)
	}
	return strokes, nil
}
