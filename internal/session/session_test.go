package session

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go-pdfstamp/internal/annotate"
	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/signature"
	"go-pdfstamp/internal/stamp"
)

var (
	now    = time.Date(2025, time.March, 7, 14, 5, 9, 0, time.UTC)
	pages  = []coords.PageSize{{Width: 612, Height: 792}, {Width: 612, Height: 792}}
	layout = coords.Container{OffsetTop: 20, OffsetLeft: 10, ClientWidth: 800, ClientHeight: 1035}
)

func loaded(t *testing.T) *Session {
	t.Helper()
	s := newSession("test", now)
	if err := s.Load([]byte("%PDF-original"), pages, "upload.pdf"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

// positioned returns a session with a dropped text overlay and a layout.
func positioned(t *testing.T) *Session {
	t.Helper()
	s := loaded(t)
	if _, err := s.OpenDialog(annotate.KindText, now); err != nil {
		t.Fatalf("OpenDialog failed: %v", err)
	}
	if err := s.SupplyText("hello"); err != nil {
		t.Fatalf("SupplyText failed: %v", err)
	}
	if err := s.SetLayout(layout); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}
	if err := s.DragDown(drag.Down{X: 100, Y: 100, ElementLeft: 90, ElementTop: 95, ElementWidth: 80, ElementHeight: 20}); err != nil {
		t.Fatalf("DragDown failed: %v", err)
	}
	if err := s.DragMove(150, 150); err != nil {
		t.Fatalf("DragMove failed: %v", err)
	}
	if _, err := s.DragUp(200, 300); err != nil {
		t.Fatalf("DragUp failed: %v", err)
	}
	return s
}

func TestCreateAndGetSession(t *testing.T) {
	sm := NewSessionManager()
	s := sm.CreateSession()
	got, ok := sm.GetSession(s.ID)
	if !ok || got != s {
		t.Fatal("Expected to find the created session")
	}
	sm.DeleteSession(s.ID)
	if _, ok := sm.GetSession(s.ID); ok {
		t.Error("Expected session to be deleted")
	}
}

func TestSweep(t *testing.T) {
	sm := NewSessionManager()
	old := sm.CreateSession()
	old.touch(now.Add(-time.Hour))
	fresh := sm.CreateSession()
	fresh.touch(now)

	if removed := sm.Sweep(now, 30*time.Minute); removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, ok := sm.Sessions[old.ID]; ok {
		t.Error("Expected stale session to be swept")
	}
	if _, ok := sm.Sessions[fresh.ID]; !ok {
		t.Error("Expected fresh session to survive")
	}

	sm.Close()
	if sm.Len() != 0 {
		t.Errorf("Expected no sessions after Close, got %d", sm.Len())
	}
}

func TestRequiresDocument(t *testing.T) {
	s := newSession("test", now)
	if _, err := s.OpenDialog(annotate.KindText, now); !errors.Is(err, ErrNoDocument) {
		t.Errorf("OpenDialog: expected ErrNoDocument, got %v", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Reset: expected ErrNoDocument, got %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Current: expected ErrNoDocument, got %v", err)
	}
}

func TestDateDialogPrefillsText(t *testing.T) {
	s := loaded(t)
	text, err := s.OpenDialog(annotate.KindDate, now)
	if err != nil {
		t.Fatalf("OpenDialog failed: %v", err)
	}
	if text != "3/7/2025" {
		t.Errorf("Expected pre-filled date '3/7/2025', got '%s'", text)
	}
	if err := s.SupplyText(""); err != nil {
		t.Fatalf("SupplyText failed: %v", err)
	}
	v := s.View()
	if v.State != StatePositioning || v.Overlay.Text != "3/7/2025" {
		t.Errorf("Unexpected view after accepting date: %+v", v)
	}
}

func TestEmptyFreeTextRejected(t *testing.T) {
	s := positioned(t)
	if err := s.SupplyText(""); !errors.Is(err, stamp.ErrEmptyText) {
		t.Fatalf("Expected ErrEmptyText while positioning, got %v", err)
	}
	if v := s.View(); v.State != StatePositioning || v.Overlay.Text != "hello" {
		t.Errorf("Rejected text should leave the overlay alone: %+v", v)
	}

	fresh := loaded(t)
	if _, err := fresh.OpenDialog(annotate.KindText, now); err != nil {
		t.Fatalf("OpenDialog failed: %v", err)
	}
	if err := fresh.SupplyText(""); !errors.Is(err, stamp.ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText in the dialog, got %v", err)
	}
	if v := fresh.View(); v.State != StateDialogOpen {
		t.Errorf("Expected the dialog to stay open, got %s", v.State)
	}
}

func TestDragDownTwice(t *testing.T) {
	s := positioned(t)
	for i := 0; i < 2; i++ {
		if err := s.DragDown(drag.Down{X: 100, Y: 100, ElementLeft: 90, ElementTop: 95}); err != nil {
			t.Fatalf("DragDown %d: %v", i+1, err)
		}
	}
	if _, err := s.DragUp(300, 300); err != nil {
		t.Errorf("DragUp after a repeated down failed: %v", err)
	}
}

func TestOnlyOneOverlay(t *testing.T) {
	s := loaded(t)
	if _, err := s.OpenDialog(annotate.KindSignature, now); err != nil {
		t.Fatalf("OpenDialog failed: %v", err)
	}
	if _, err := s.OpenDialog(annotate.KindText, now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
	if err := s.SupplyText("hi"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Text on a signature overlay: expected ErrInvalidTransition, got %v", err)
	}
}

func TestSignatureFlow(t *testing.T) {
	s := loaded(t)
	if _, err := s.OpenDialog(annotate.KindSignature, now); err != nil {
		t.Fatalf("OpenDialog failed: %v", err)
	}
	img := &signature.Image{PNG: []byte("png"), Width: 200, Height: 50}
	if err := s.SupplySignature(img, true); err != nil {
		t.Fatalf("SupplySignature failed: %v", err)
	}
	v := s.View()
	want := &OverlayView{Kind: annotate.KindSignature, AutoDate: true, SignatureWidth: 200, SignatureHeight: 50}
	if diff := cmp.Diff(want, v.Overlay); diff != "" {
		t.Errorf("Unexpected overlay (-want +got):\n%s", diff)
	}
}

func TestDragOutsidePositioning(t *testing.T) {
	s := loaded(t)
	if err := s.DragDown(drag.Down{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestCommitSuccess(t *testing.T) {
	s := positioned(t)
	ticket, err := s.BeginCommit(now)
	if err != nil {
		t.Fatalf("BeginCommit failed: %v", err)
	}
	req := ticket.Request
	if req.Page != 0 || req.Container != layout || req.Overlay.Text != "hello" {
		t.Errorf("Unexpected request snapshot: %+v", req)
	}
	wantRelease := coords.Release{X: 200, Y: 300, GrabOffsetX: 10, GrabOffsetY: 5}
	if diff := cmp.Diff(wantRelease, req.Drop.Release); diff != "" {
		t.Errorf("Unexpected release (-want +got):\n%s", diff)
	}

	if _, err := s.BeginCommit(now); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("Second commit: expected ErrCommitInFlight, got %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("Cancel during commit: expected ErrCommitInFlight, got %v", err)
	}

	if err := s.FinishCommit(ticket, []byte("%PDF-stamped")); err != nil {
		t.Fatalf("FinishCommit failed: %v", err)
	}
	v := s.View()
	if v.State != StateIdle || v.Overlay != nil || v.Revision != 1 {
		t.Errorf("Unexpected view after commit: %+v", v)
	}
	doc, _ := s.Current()
	if !bytes.Equal(doc.Current, []byte("%PDF-stamped")) {
		t.Errorf("Expected document to be replaced, got %q", doc.Current)
	}
}

func TestCommitFailureReturnsToPositioning(t *testing.T) {
	s := positioned(t)
	ticket, err := s.BeginCommit(now)
	if err != nil {
		t.Fatalf("BeginCommit failed: %v", err)
	}
	s.FailCommit(ticket)
	v := s.View()
	if v.State != StatePositioning || v.Overlay == nil || v.Overlay.Release == nil {
		t.Errorf("Expected overlay to stay positioned, got %+v", v)
	}
	doc, _ := s.Current()
	if !bytes.Equal(doc.Current, []byte("%PDF-original")) || doc.Revision != 0 {
		t.Error("Failed commit must not touch the document")
	}
}

func TestCommitPreconditions(t *testing.T) {
	s := loaded(t)
	if _, err := s.BeginCommit(now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Idle: expected ErrInvalidTransition, got %v", err)
	}

	_, _ = s.OpenDialog(annotate.KindText, now)
	_ = s.SupplyText("hello")
	if _, err := s.BeginCommit(now); !errors.Is(err, ErrNoRelease) {
		t.Errorf("Not dropped: expected ErrNoRelease, got %v", err)
	}

	_ = s.DragDown(drag.Down{X: 1, Y: 1})
	if _, err := s.BeginCommit(now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Mid-drag: expected ErrInvalidTransition, got %v", err)
	}
	_, _ = s.DragUp(5, 5)
	if _, err := s.BeginCommit(now); !errors.Is(err, coords.ErrNotLaidOut) {
		t.Errorf("No layout: expected ErrNotLaidOut, got %v", err)
	}
}

func TestCancelLeavesDocument(t *testing.T) {
	s := positioned(t)
	if err := s.Cancel(); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	v := s.View()
	if v.State != StateIdle || v.Overlay != nil || v.Revision != 0 {
		t.Errorf("Unexpected view after cancel: %+v", v)
	}
	if err := s.Cancel(); err != nil {
		t.Errorf("Cancel when idle should be a no-op, got %v", err)
	}
}

func TestResetRestoresOriginal(t *testing.T) {
	s := positioned(t)
	ticket, _ := s.BeginCommit(now)
	_ = s.FinishCommit(ticket, []byte("%PDF-stamped"))
	_ = s.SetPage(1)

	// Start a second annotation, then reset mid-way.
	_, _ = s.OpenDialog(annotate.KindSignature, now)
	_ = s.SupplySignature(&signature.Image{PNG: []byte("png"), Width: 1, Height: 1}, false)

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	v := s.View()
	if v.State != StateIdle || v.Overlay != nil || v.Page != 0 || v.Layout != nil || v.Revision != 0 {
		t.Errorf("Unexpected view after reset: %+v", v)
	}
	doc, _ := s.Current()
	if !bytes.Equal(doc.Current, []byte("%PDF-original")) {
		t.Errorf("Expected original bytes after reset, got %q", doc.Current)
	}
}

func TestResetDiscardsInFlightCommit(t *testing.T) {
	s := positioned(t)
	ticket, _ := s.BeginCommit(now)
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := s.FinishCommit(ticket, []byte("%PDF-late")); !errors.Is(err, ErrStaleCommit) {
		t.Errorf("Expected ErrStaleCommit, got %v", err)
	}
	doc, _ := s.Current()
	if !bytes.Equal(doc.Current, []byte("%PDF-original")) {
		t.Error("Stale commit must not replace the document")
	}
}

func TestSetPage(t *testing.T) {
	s := positioned(t)
	if err := s.SetPage(2); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("Expected ErrPageOutOfRange, got %v", err)
	}
	if err := s.SetPage(1); err != nil {
		t.Fatalf("SetPage failed: %v", err)
	}
	v := s.View()
	if v.Page != 1 || v.Layout != nil || v.Overlay.Release != nil {
		t.Errorf("Changing page should drop layout and release: %+v", v)
	}
}

func TestSetLayoutRejectsZeroWidth(t *testing.T) {
	s := loaded(t)
	if err := s.SetLayout(coords.Container{}); !errors.Is(err, coords.ErrNotLaidOut) {
		t.Errorf("Expected ErrNotLaidOut, got %v", err)
	}
}

func TestUnload(t *testing.T) {
	s := positioned(t)
	s.Unload()
	v := s.View()
	if v.Loaded || v.Overlay != nil || v.State != StateIdle {
		t.Errorf("Unexpected view after unload: %+v", v)
	}
}
