// Package annotate turns a dropped overlay into stamps on a PDF page.
//
// Plan maps the drop into PDF space and decides what to draw; Commit runs the
// plan against the document bytes. Both are pure with respect to their
// inputs: the caller owns the document buffer and decides what to do with
// the result.
package annotate

import (
	"context"
	"fmt"
	"time"

	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/pdf"
	"go-pdfstamp/internal/signature"
	"go-pdfstamp/internal/stamp"
)

type Kind string

const (
	KindText      Kind = "text"
	KindDate      Kind = "date"
	KindSignature Kind = "signature"
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindDate, KindSignature:
		return true
	}
	return false
}

// Sizes in screen pixels, scaled into PDF units at commit time.
const (
	TextDisplaySize    = 20
	CaptionDisplaySize = 14
	// CaptionGap is in PDF units below the signature's lower edge.
	CaptionGap = 10

	legacySignatureScale = 0.3
)

// CaptionColor is the green used for the "Signed ..." caption.
var CaptionColor = pdf.Color{R: 0.074, G: 0.545, B: 0.262}

// Overlay is the content being placed.
type Overlay struct {
	Kind      Kind
	Text      string
	Signature *signature.Image
	AutoDate  bool
}

// Request is everything needed to place one overlay.
type Request struct {
	Document  []byte
	Page      int // 0-based
	PageSize  coords.PageSize
	Container coords.Container
	Drop      drag.Drop
	Overlay   Overlay
	Now       time.Time
}

// Plan is the concrete set of stamps for a request.
type Plan struct {
	Point coords.Point
	Image *pdf.ImageStamp
	Texts []pdf.TextStamp
}

// NewPlan maps the drop into PDF space and lays out the stamps.
func NewPlan(req Request) (*Plan, error) {
	scale, err := coords.Scale(req.PageSize, req.Container)
	if err != nil {
		return nil, err
	}

	var correction coords.Correction
	switch {
	case req.Drop.Measured():
		correction = coords.Measured(req.Drop.Height)
	case req.Overlay.Kind == KindSignature:
		correction = coords.LegacyImage()
	default:
		correction = coords.LegacyText(scale)
	}

	pt, err := coords.Map(coords.Input{
		Container:  req.Container,
		Page:       req.PageSize,
		Release:    req.Drop.Release,
		Correction: correction,
	})
	if err != nil {
		return nil, err
	}

	page := req.Page + 1
	plan := &Plan{Point: pt}

	switch req.Overlay.Kind {
	case KindText, KindDate:
		plan.Texts = append(plan.Texts, pdf.TextStamp{
			Page:  page,
			X:     pt.X,
			Y:     pt.Y,
			Size:  pt.Size(TextDisplaySize),
			Text:  req.Overlay.Text,
			Color: pdf.Black,
		})
	case KindSignature:
		sig := req.Overlay.Signature
		if sig == nil || sig.Width == 0 {
			return nil, fmt.Errorf("annotate: signature overlay has no image")
		}
		imgScale := scale * legacySignatureScale
		if req.Drop.Measured() {
			// Keep the size the user saw on screen.
			imgScale = pt.Size(req.Drop.Width) / float64(sig.Width)
		}
		plan.Image = &pdf.ImageStamp{Page: page, X: pt.X, Y: pt.Y, Scale: imgScale, PNG: sig.PNG}
		if req.Overlay.AutoDate {
			plan.Texts = append(plan.Texts, pdf.TextStamp{
				Page:  page,
				X:     pt.X,
				Y:     pt.Y - CaptionGap,
				Size:  pt.Size(CaptionDisplaySize),
				Text:  stamp.Signed(req.Now),
				Color: CaptionColor,
			})
		}
	default:
		return nil, fmt.Errorf("annotate: unknown overlay kind %q", req.Overlay.Kind)
	}
	return plan, nil
}

// Commit applies the request to its document and returns the new bytes.
// Document failures are *pdf.Error values. Layout errors come from the
// mapper, and a stamp pdfcpu cannot describe is a plain error.
func Commit(ctx context.Context, req Request) ([]byte, error) {
	plan, err := NewPlan(req)
	if err != nil {
		return nil, err
	}
	return plan.Apply(ctx, req.Document)
}

// Apply draws the image first so the caption ends up on top of it.
func (p *Plan) Apply(ctx context.Context, doc []byte) ([]byte, error) {
	out := doc
	if p.Image != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := pdf.StampImage(out, *p.Image)
		if err != nil {
			return nil, err
		}
		out = next
	}
	for _, t := range p.Texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := pdf.StampText(out, t)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
