package ui

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"inkboard/internal/state"
)

func TestSaveLoadStrokes(t *testing.T) {
	strokes := []state.Stroke{
		state.NewStroke([]state.Point{{X: 1.5, Y: 2.25}, {X: 3, Y: 4}}, "#d32f2f", 4, false),
		state.NewStroke([]state.Point{{X: 10, Y: 10}}, "#fbc02d", 20, true),
	}

	var buf bytes.Buffer
	if err := SaveStrokes(&buf, strokes); err != nil {
		t.Fatalf("SaveStrokes() error: %v", err)
	}

	loaded, err := LoadStrokes(&buf)
	if err != nil {
		t.Fatalf("LoadStrokes() error: %v", err)
	}
	if !reflect.DeepEqual(loaded, strokes) {
		t.Errorf("round trip = %v, want %v", loaded, strokes)
	}
}

func TestLoadStrokes_InvalidJSON(t *testing.T) {
	if _, err := LoadStrokes(strings.NewReader("{not json")); err == nil {
		t.Error("LoadStrokes() on garbage succeeded, want error")
	}
}

func TestLoadStrokes_Empty(t *testing.T) {
	got, err := LoadStrokes(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("LoadStrokes() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadStrokes([]) = %v, want empty", got)
	}
}
