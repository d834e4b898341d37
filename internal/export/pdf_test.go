package export

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func snapshotPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 800, 600},
		{"portrait", 600, 1200},
		{"very wide", 2048, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := WritePDF(&out, snapshotPNG(t, tt.w, tt.h), tt.w, tt.h)
			if err != nil {
				t.Fatalf("WritePDF() error: %v", err)
			}
			if out.Len() == 0 {
				t.Fatal("WritePDF() wrote nothing")
			}
			if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
				t.Errorf("output does not start with %%PDF header")
			}
		})
	}
}

func TestWritePDF_RejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	if err := WritePDF(&out, nil, 100, 100); err == nil {
		t.Error("WritePDF() with empty snapshot succeeded, want error")
	}
	if err := WritePDF(&out, snapshotPNG(t, 10, 10), 0, 10); err == nil {
		t.Error("WritePDF() with zero width succeeded, want error")
	}
	if out.Len() != 0 {
		t.Error("failed export produced partial output")
	}
}

func TestWritePNG(t *testing.T) {
	data := snapshotPNG(t, 10, 10)
	var out bytes.Buffer
	if err := WritePNG(&out, data); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Error("WritePNG() altered the snapshot bytes")
	}
	if err := WritePNG(&out, nil); err == nil {
		t.Error("WritePNG() with empty snapshot succeeded, want error")
	}
}
