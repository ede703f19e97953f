// Package pdf reads page geometry from PDF documents and burns text and
// images into their pages.
//
// Functions:
//   - Inspect: parses a document and reports its page sizes.
//     Input: PDF bytes.
//     Output: page sizes in PDF units, or an ErrDocumentParse error.
//   - StampText: draws a line of text on one page.
//   - StampImage: draws a PNG on one page.
//     Inputs: PDF bytes, stamp description (1-based page, lower-left corner in points).
//     Output: new PDF bytes; the input slice is never modified.
//
// These functions are used by the annotate package to commit overlays.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"math"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"go-pdfstamp/internal/coords"
)

const magic = "%PDF-"

// Color is an RGB fill colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

var Black = Color{}

// TextStamp describes a single line of text. X and Y are the lower-left
// corner of the text box in points.
type TextStamp struct {
	Page  int
	X     float64
	Y     float64
	Size  float64
	Text  string
	Color Color
}

// ImageStamp describes a PNG placed with its lower-left corner at X, Y.
// Scale multiplies the image's pixel size to get its size in points.
type ImageStamp struct {
	Page  int
	X     float64
	Y     float64
	Scale float64
	PNG   []byte
}

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magic))
}

// Inspect parses data and returns the size of every page.
func Inspect(data []byte) ([]coords.PageSize, error) {
	if !IsPDF(data) {
		return nil, newError(ErrDocumentParse, "inspect", fmt.Errorf("missing %s header", magic))
	}
	config := model.NewDefaultConfiguration()
	dims, err := pdfapi.PageDims(bytes.NewReader(data), config)
	if err != nil {
		return nil, newError(ErrDocumentParse, "inspect", err)
	}
	if len(dims) == 0 {
		return nil, newError(ErrDocumentParse, "inspect", fmt.Errorf("document has no pages"))
	}
	pages := make([]coords.PageSize, len(dims))
	for i, d := range dims {
		pages[i] = coords.PageSize{Width: d.Width, Height: d.Height}
	}
	return pages, nil
}

// StampText burns s into data and returns the new document. pdfcpu only takes
// whole font sizes, so Size is rounded to the nearest point.
func StampText(data []byte, s TextStamp) ([]byte, error) {
	if !IsPDF(data) {
		return nil, newError(ErrDocumentParse, "stamp text", fmt.Errorf("missing %s header", magic))
	}
	wm, err := textWatermark(s)
	if err != nil {
		return nil, err
	}
	return apply(data, s.Page, s.X, s.Y, wm, ErrSerialize, "stamp text")
}

// FontPoints is the font size pdfcpu draws for a requested size.
func FontPoints(size float64) int {
	return max(1, int(math.Round(size)))
}

func textWatermark(s TextStamp) (*model.Watermark, error) {
	if s.Size <= 0 || math.IsNaN(s.Size) || math.IsInf(s.Size, 0) {
		return nil, fmt.Errorf("stamp text: invalid font size %.2f", s.Size)
	}
	// Absolute positioning from the lower-left corner, no rotation, fully opaque.
	desc := fmt.Sprintf("font:Helvetica, points:%d, scale:1 abs, pos:bl, rot:0, op:1, fillc:%.3f %.3f %.3f",
		FontPoints(s.Size), s.Color.R, s.Color.G, s.Color.B)

	wm, err := pdfapi.TextWatermark(s.Text, desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("stamp text: failed to parse text watermark: %w", err)
	}
	return wm, nil
}

// StampImage burns the PNG in s into data and returns the new document.
func StampImage(data []byte, s ImageStamp) ([]byte, error) {
	if !IsPDF(data) {
		return nil, newError(ErrDocumentParse, "stamp image", fmt.Errorf("missing %s header", magic))
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(s.PNG)); err != nil {
		return nil, newError(ErrImageEmbed, "stamp image", err)
	}
	if s.Scale <= 0 {
		return nil, newError(ErrImageEmbed, "stamp image", fmt.Errorf("invalid scale %.4f", s.Scale))
	}
	desc := fmt.Sprintf("scale:%.4f abs, pos:bl, rot:0, op:1", s.Scale)

	wm, err := pdfapi.ImageWatermarkForReader(bytes.NewReader(s.PNG), desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("stamp image: failed to parse image watermark: %w", err)
	}
	return apply(data, s.Page, s.X, s.Y, wm, ErrImageEmbed, "stamp image")
}

func apply(data []byte, page int, x, y float64, wm *model.Watermark, kind error, op string) ([]byte, error) {
	if !IsPDF(data) {
		return nil, newError(ErrDocumentParse, op, fmt.Errorf("missing %s header", magic))
	}
	if page < 1 {
		return nil, newError(kind, op, fmt.Errorf("invalid page %d", page))
	}

	// Manually override positioning: the offset is taken from the
	// lower-left anchor, so it is the absolute position on the page.
	wm.Dx = x
	wm.Dy = y

	config := model.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(page)}

	var out bytes.Buffer
	if err := pdfapi.AddWatermarks(bytes.NewReader(data), &out, pages, wm, config); err != nil {
		return nil, newError(kind, op, err)
	}
	if out.Len() == 0 || !IsPDF(out.Bytes()) {
		return nil, newError(ErrSerialize, op, fmt.Errorf("empty output"))
	}
	return out.Bytes(), nil
}
