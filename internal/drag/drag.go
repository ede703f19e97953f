// Package drag tracks a single pointer gesture over an overlay element.
//
// The client forwards pointer down/move/up events; the tracker remembers where
// inside the element the pointer grabbed it, and on release reports the final
// position together with that grab offset and the element's measured size.
package drag

import (
	"errors"

	"go-pdfstamp/internal/coords"
)

var ErrNotDragging = errors.New("drag: no gesture in progress")

// Down is a pointer-down event on the overlay. ElementLeft/ElementTop are the
// overlay's top-left corner in the same viewport coordinates as X/Y.
type Down struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	ElementLeft   float64 `json:"elementLeft"`
	ElementTop    float64 `json:"elementTop"`
	ElementWidth  float64 `json:"elementWidth"`
	ElementHeight float64 `json:"elementHeight"`
}

// Drop is the outcome of a finished gesture.
type Drop struct {
	Release coords.Release
	// Width and Height are the overlay's rendered size at grab time, zero
	// when the client did not measure it.
	Width  float64
	Height float64
}

// Measured reports whether the client sent the overlay's size.
func (d Drop) Measured() bool {
	return d.Width > 0 && d.Height > 0
}

type Tracker struct {
	active bool
	down   Down
	x, y   float64
}

func (t *Tracker) Active() bool {
	return t.active
}

// Down starts a gesture. A Down during a gesture restarts it, since the
// browser may never have delivered the previous pointer-up.
func (t *Tracker) Down(ev Down) {
	t.active = true
	t.down = ev
	t.x, t.y = ev.X, ev.Y
}

func (t *Tracker) Move(x, y float64) error {
	if !t.active {
		return ErrNotDragging
	}
	t.x, t.y = x, y
	return nil
}

// Up ends the gesture and reports where the overlay was released.
func (t *Tracker) Up(x, y float64) (Drop, error) {
	if !t.active {
		return Drop{}, ErrNotDragging
	}
	t.x, t.y = x, y
	drop := Drop{
		Release: coords.Release{
			X:           t.x,
			Y:           t.y,
			GrabOffsetX: t.down.X - t.down.ElementLeft,
			GrabOffsetY: t.down.Y - t.down.ElementTop,
		},
		Width:  t.down.ElementWidth,
		Height: t.down.ElementHeight,
	}
	t.Cancel()
	return drop, nil
}

// Cancel forgets any gesture in progress.
func (t *Tracker) Cancel() {
	*t = Tracker{}
}
