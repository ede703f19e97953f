// Package pdftest builds small, valid PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"regexp"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Letter is the US Letter page size in points.
var Letter = [2]float64{612, 792}

// Document returns a PDF with one empty page per size. With no sizes it
// produces a single Letter page.
func Document(sizes ...[2]float64) []byte {
	if len(sizes) == 0 {
		sizes = [][2]float64{Letter}
	}

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	var kids bytes.Buffer
	for i := range sizes {
		fmt.Fprintf(&kids, "%d 0 R ", 3+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", bytes.TrimSpace(kids.Bytes()), len(sizes)))

	content := "0.9 g 10 10 20 20 re f\n"
	for i, s := range sizes {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Contents %d 0 R /Resources << >> >>",
			s[0], s[1], 4+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// PNG returns a w×h PNG with a horizontal stroke through the middle.
func PNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PageContent returns the decoded content stream of a 1-based page.
func PageContent(doc []byte, page int) (string, error) {
	ctx, err := pdfapi.ReadContext(bytes.NewReader(doc), model.NewDefaultConfiguration())
	if err != nil {
		return "", err
	}
	if err := pdfapi.ValidateContext(ctx); err != nil {
		return "", err
	}
	r, err := pdfcpu.ExtractPageContent(ctx, page)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var cmOp = regexp.MustCompile(`(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+cm`)

// Translations returns the translation part of every cm operator in content,
// in drawing order.
func Translations(content string) [][2]float64 {
	var out [][2]float64
	for _, m := range cmOp.FindAllStringSubmatch(content, -1) {
		x, errX := strconv.ParseFloat(m[5], 64)
		y, errY := strconv.ParseFloat(m[6], 64)
		if errX == nil && errY == nil {
			out = append(out, [2]float64{x, y})
		}
	}
	return out
}

// LastTranslation returns the translation of the last cm operator in content,
// which is where the most recent stamp was placed.
func LastTranslation(content string) (x, y float64, ok bool) {
	all := Translations(content)
	if len(all) == 0 {
		return 0, 0, false
	}
	last := all[len(all)-1]
	return last[0], last[1], true
}
