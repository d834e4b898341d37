// Package export hands composited snapshots to external document formats.
// The engine's contract ends at one flat raster image per call; page layout
// and pagination belong to the document side.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF embeds a composited PNG snapshot as the single image block of an
// A4 page and writes the document to w. The snapshot is scaled to fit inside
// the page margins with its aspect ratio preserved.
func WritePDF(w io.Writer, snapshot []byte, widthPx, heightPx int) error {
	if len(snapshot) == 0 {
		return fmt.Errorf("write pdf: empty snapshot")
	}
	if widthPx <= 0 || heightPx <= 0 {
		return fmt.Errorf("write pdf: invalid snapshot dimensions %dx%d", widthPx, heightPx)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("annotation", opts, bytes.NewReader(snapshot))
	if pdf.Err() {
		return fmt.Errorf("write pdf: register snapshot: %v", pdf.Error())
	}

	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	availW := pageW - left - right
	availH := pageH - top - bottom

	imgW := availW
	imgH := imgW * float64(heightPx) / float64(widthPx)
	if imgH > availH {
		imgH = availH
		imgW = imgH * float64(widthPx) / float64(heightPx)
	}
	x := left + (availW-imgW)/2

	pdf.ImageOptions("annotation", x, top, imgW, imgH, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePNG writes the snapshot bytes as-is for a local download.
func WritePNG(w io.Writer, snapshot []byte) error {
	if len(snapshot) == 0 {
		return fmt.Errorf("write png: empty snapshot")
	}
	if _, err := w.Write(snapshot); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
