// Package coords maps on-screen drop positions onto PDF user space.
//
// The browser renders a page into a container of some pixel width; the page
// itself has its own size in PDF units with the origin at the bottom-left.
// Map converts a drag release inside that container into the point a PDF
// drawing operation needs so the result lands where the overlay was dropped.
//
// Expected outputs:
// - Scale is originalWidth / renderedWidth, recomputed on every call
// - Y grows upwards in the result
// - Nothing is clamped; drops outside the container produce off-page points
package coords

import "errors"

// ErrNotLaidOut is returned when the container has no rendered width yet.
var ErrNotLaidOut = errors.New("coords: container has not been laid out")

// Legacy overlay anchors, in screen pixels. They were tuned by hand against
// one particular page layout and are only used when the client does not send
// the overlay's measured size.
const (
	legacyTextX  = 166
	legacyTextY  = 12 // multiplied by the scale
	legacyImageX = 160
	legacyImageY = 64
)

// Container is the bounding box of the rendered page element.
type Container struct {
	OffsetTop    float64 `json:"offsetTop"`
	OffsetLeft   float64 `json:"offsetLeft"`
	ClientWidth  float64 `json:"clientWidth"`
	ClientHeight float64 `json:"clientHeight"`
}

// PageSize is a page's true size in PDF units.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Release is where a drag ended, plus where inside the element the pointer
// grabbed it.
type Release struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	GrabOffsetX float64 `json:"grabOffsetX"`
	GrabOffsetY float64 `json:"grabOffsetY"`
}

// Correction shifts the release point onto the overlay's PDF anchor.
type Correction struct {
	X float64
	Y float64
}

// Input is the snapshot consumed by Map.
type Input struct {
	Container  Container
	Page       PageSize
	Release    Release
	Correction Correction
}

// Point is a location in PDF user space along with the scale that produced it.
type Point struct {
	X     float64
	Y     float64
	Scale float64
}

// Size converts a length measured on screen into PDF units.
func (p Point) Size(display float64) float64 {
	return display * p.Scale
}

// Scale returns the ratio of the page's true width to its rendered width.
func Scale(page PageSize, c Container) (float64, error) {
	if c.ClientWidth <= 0 {
		return 0, ErrNotLaidOut
	}
	return page.Width / c.ClientWidth, nil
}

// Map converts a drop into PDF user-space coordinates.
func Map(in Input) (Point, error) {
	scale, err := Scale(in.Page, in.Container)
	if err != nil {
		return Point{}, err
	}
	c, r := in.Container, in.Release

	y := c.ClientHeight - (r.Y - c.OffsetTop - r.GrabOffsetY + in.Correction.Y)
	x := r.X - c.OffsetLeft - r.GrabOffsetX - in.Correction.X

	return Point{X: x * scale, Y: y * scale, Scale: scale}, nil
}

// Measured derives the correction from the overlay's rendered size. Text
// baselines and image lower-left corners both sit on the overlay's bottom
// edge, so only the height matters.
func Measured(height float64) Correction {
	return Correction{X: 0, Y: height}
}

// LegacyText is the hand-tuned correction for text overlays.
func LegacyText(scale float64) Correction {
	return Correction{X: legacyTextX, Y: legacyTextY * scale}
}

// LegacyImage is the hand-tuned correction for signature overlays.
func LegacyImage() Correction {
	return Correction{X: legacyImageX, Y: legacyImageY}
}
