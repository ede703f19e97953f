package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go-pdfstamp/internal/annotate"
	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/signature"
	"go-pdfstamp/internal/stamp"
	"go-pdfstamp/internal/utils"
)

// State is the annotation lifecycle state:
//
//	Idle → DialogOpen → Positioning → Committing → Idle
//
// Cancel returns to Idle from DialogOpen or Positioning; a failed commit
// returns to Positioning; Reset returns to Idle from anywhere.
type State string

const (
	StateIdle        State = "idle"
	StateDialogOpen  State = "dialog_open"
	StatePositioning State = "positioning"
	StateCommitting  State = "committing"
)

var (
	ErrNoDocument        = errors.New("no document loaded")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrCommitInFlight    = errors.New("commit already in progress")
	ErrNoRelease         = errors.New("overlay has not been dropped on the page")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrStaleCommit       = errors.New("commit result is stale")
)

// Document is the PDF a session works on. Original is kept so Reset can go
// back to it.
type Document struct {
	Original []byte
	Current  []byte
	Pages    []coords.PageSize
	Source   string
	Revision int
	Digest   string
}

type overlay struct {
	annotate.Overlay
	drop *drag.Drop
}

// Session holds one document and at most one overlay in progress.
type Session struct {
	ID        string
	CreatedAt time.Time
	Mutex     sync.Mutex

	seen atomic.Int64

	doc        *Document
	page       int
	layout     *coords.Container
	state      State
	overlay    *overlay
	tracker    drag.Tracker
	generation uint64
}

func newSession(id string, now time.Time) *Session {
	s := &Session{ID: id, CreatedAt: now, state: StateIdle}
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) {
	s.seen.Store(now.UnixNano())
}

func (s *Session) lastSeen() time.Time {
	return time.Unix(0, s.seen.Load())
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, s.state)
}

// clearOverlay drops any overlay and gesture and returns to Idle. The caller
// holds the lock.
func (s *Session) clearOverlay() {
	s.overlay = nil
	s.tracker.Cancel()
	s.state = StateIdle
}

// Load replaces the session's document. Any overlay in progress is dropped.
func (s *Session) Load(data []byte, pages []coords.PageSize, source string) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state == StateCommitting {
		return ErrCommitInFlight
	}
	s.generation++
	s.clearOverlay()
	s.doc = &Document{
		Original: data,
		Current:  data,
		Pages:    pages,
		Source:   source,
		Digest:   utils.Digest(data),
	}
	s.page = 0
	s.layout = nil
	return nil
}

// Unload forgets the document entirely.
func (s *Session) Unload() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.generation++
	s.clearOverlay()
	s.doc = nil
	s.page = 0
	s.layout = nil
}

// Clear releases everything the session holds.
func (s *Session) Clear() {
	s.Unload()
}

// Reset discards any annotation in progress, restores the document as it was
// first loaded and goes back to page 0. A commit still running when Reset is
// called will be rejected by FinishCommit.
func (s *Session) Reset() error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.doc == nil {
		return ErrNoDocument
	}
	s.generation++
	s.clearOverlay()
	s.doc.Current = s.doc.Original
	s.doc.Revision = 0
	s.doc.Digest = utils.Digest(s.doc.Original)
	s.page = 0
	s.layout = nil
	return nil
}

// Current returns the latest document bytes.
func (s *Session) Current() (*Document, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	doc := *s.doc
	return &doc, nil
}

// SetPage selects the 0-based page. The stored layout and any drop belong to
// the previous page and are discarded.
func (s *Session) SetPage(page int) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.doc == nil {
		return ErrNoDocument
	}
	if s.state == StateCommitting {
		return ErrCommitInFlight
	}
	if page < 0 || page >= len(s.doc.Pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, len(s.doc.Pages))
	}
	if page != s.page {
		s.page = page
		s.layout = nil
		s.tracker.Cancel()
		if s.overlay != nil {
			s.overlay.drop = nil
		}
	}
	return nil
}

// SetLayout records the rendered container box for the current page.
func (s *Session) SetLayout(c coords.Container) error {
	if c.ClientWidth <= 0 {
		return coords.ErrNotLaidOut
	}
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.doc == nil {
		return ErrNoDocument
	}
	s.layout = &c
	return nil
}

// OpenDialog starts a new annotation. For date overlays the returned text is
// the pre-filled date stamp.
func (s *Session) OpenDialog(kind annotate.Kind, now time.Time) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown overlay kind %q", kind)
	}
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.doc == nil {
		return "", ErrNoDocument
	}
	if s.state != StateIdle {
		return "", s.invalid("open dialog")
	}
	o := &overlay{Overlay: annotate.Overlay{Kind: kind}}
	if kind == annotate.KindDate {
		o.Text = stamp.Date(now)
	}
	s.overlay = o
	s.state = StateDialogOpen
	return o.Text, nil
}

// SupplyText sets the text of a text or date overlay. An empty text keeps the
// pre-filled date and is rejected for free text. It may also be called while positioning to edit the text
// in place.
func (s *Session) SupplyText(text string) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state != StateDialogOpen && s.state != StatePositioning {
		return s.invalid("supply text")
	}
	if s.overlay.Kind == annotate.KindSignature {
		return s.invalid("supply text to a signature")
	}
	if text == "" && s.overlay.Kind == annotate.KindDate {
		text = s.overlay.Text
	}
	clean, err := stamp.Normalize(text)
	if err != nil {
		return err
	}
	s.overlay.Text = clean
	s.state = StatePositioning
	return nil
}

// SupplySignature attaches the signature image and moves to positioning.
func (s *Session) SupplySignature(img *signature.Image, autoDate bool) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state != StateDialogOpen {
		return s.invalid("supply signature")
	}
	if s.overlay.Kind != annotate.KindSignature {
		return s.invalid("supply signature to a text overlay")
	}
	s.overlay.Signature = img
	s.overlay.AutoDate = autoDate
	s.state = StatePositioning
	return nil
}

func (s *Session) DragDown(ev drag.Down) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state != StatePositioning {
		return s.invalid("drag")
	}
	s.tracker.Down(ev)
	return nil
}

func (s *Session) DragMove(x, y float64) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state != StatePositioning {
		return s.invalid("drag")
	}
	return s.tracker.Move(x, y)
}

// DragUp finishes the gesture and remembers where the overlay landed.
func (s *Session) DragUp(x, y float64) (drag.Drop, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.state != StatePositioning {
		return drag.Drop{}, s.invalid("drag")
	}
	drop, err := s.tracker.Up(x, y)
	if err != nil {
		return drag.Drop{}, err
	}
	s.overlay.drop = &drop
	return drop, nil
}

// Cancel abandons the overlay without touching the document. Cancelling when
// nothing is in progress is a no-op.
func (s *Session) Cancel() error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	switch s.state {
	case StateCommitting:
		return ErrCommitInFlight
	case StateDialogOpen, StatePositioning:
		s.clearOverlay()
	}
	return nil
}

// Ticket identifies one commit attempt.
type Ticket struct {
	Request    annotate.Request
	generation uint64
}

// BeginCommit snapshots everything needed to burn the overlay into the
// document and moves to Committing.
func (s *Session) BeginCommit(now time.Time) (*Ticket, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	switch {
	case s.state == StateCommitting:
		return nil, ErrCommitInFlight
	case s.state != StatePositioning:
		return nil, s.invalid("commit")
	case s.tracker.Active():
		return nil, s.invalid("commit during drag")
	case s.overlay.drop == nil:
		return nil, ErrNoRelease
	case s.layout == nil:
		return nil, coords.ErrNotLaidOut
	}

	s.state = StateCommitting
	return &Ticket{
		Request: annotate.Request{
			Document:  s.doc.Current,
			Page:      s.page,
			PageSize:  s.doc.Pages[s.page],
			Container: *s.layout,
			Drop:      *s.overlay.drop,
			Overlay:   s.overlay.Overlay,
			Now:       now,
		},
		generation: s.generation,
	}, nil
}

// FinishCommit replaces the document with the committed bytes and returns to
// Idle.
func (s *Session) FinishCommit(t *Ticket, data []byte) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if t.generation != s.generation || s.state != StateCommitting {
		return ErrStaleCommit
	}
	s.doc.Current = data
	s.doc.Revision++
	s.doc.Digest = utils.Digest(data)
	s.clearOverlay()
	return nil
}

// FailCommit returns to Positioning so the user can try again or cancel.
func (s *Session) FailCommit(t *Ticket) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if t.generation != s.generation || s.state != StateCommitting {
		return
	}
	s.state = StatePositioning
}

// View is a read-only snapshot for API responses.
type View struct {
	ID         string            `json:"sessionId"`
	State      State             `json:"state"`
	Loaded     bool              `json:"loaded"`
	Source     string            `json:"source,omitempty"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Pages      []coords.PageSize `json:"pages,omitempty"`
	Layout     *coords.Container `json:"layout,omitempty"`
	Revision   int               `json:"revision"`
	Digest     string            `json:"digest,omitempty"`
	Overlay    *OverlayView      `json:"overlay,omitempty"`
}

type OverlayView struct {
	Kind            annotate.Kind   `json:"kind"`
	Text            string          `json:"text,omitempty"`
	AutoDate        bool            `json:"autoDate"`
	SignatureWidth  int             `json:"signatureWidth,omitempty"`
	SignatureHeight int             `json:"signatureHeight,omitempty"`
	Dragging        bool            `json:"dragging"`
	Release         *coords.Release `json:"release,omitempty"`
}

func (s *Session) View() View {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	v := View{ID: s.ID, State: s.state, Page: s.page}
	if s.doc != nil {
		v.Loaded = true
		v.Source = s.doc.Source
		v.TotalPages = len(s.doc.Pages)
		v.Pages = s.doc.Pages
		v.Revision = s.doc.Revision
		v.Digest = s.doc.Digest
	}
	if s.layout != nil {
		layout := *s.layout
		v.Layout = &layout
	}
	if o := s.overlay; o != nil {
		ov := &OverlayView{
			Kind:     o.Kind,
			Text:     o.Text,
			AutoDate: o.AutoDate,
			Dragging: s.tracker.Active(),
		}
		if o.Signature != nil {
			ov.SignatureWidth = o.Signature.Width
			ov.SignatureHeight = o.Signature.Height
		}
		if o.drop != nil {
			r := o.drop.Release
			ov.Release = &r
		}
		v.Overlay = ov
	}
	return v
}
