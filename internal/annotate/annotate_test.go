package annotate

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/pdf"
	"go-pdfstamp/internal/pdf/pdftest"
	"go-pdfstamp/internal/signature"
)

func TestMain(m *testing.M) {
	pdfapi.DisableConfigDir()
	os.Exit(m.Run())
}

var (
	letter    = coords.PageSize{Width: 612, Height: 792}
	container = coords.Container{ClientWidth: 800, ClientHeight: 1035}
	now       = time.Date(2025, time.March, 7, 14, 5, 9, 0, time.UTC)
)

func testSignature(t *testing.T) *signature.Image {
	t.Helper()
	img, err := signature.Decode(pdftest.PNG(200, 50), 0)
	if err != nil {
		t.Fatalf("Failed to decode test signature: %v", err)
	}
	return img
}

func TestPlanLegacyText(t *testing.T) {
	c := coords.Container{ClientWidth: 789, ClientHeight: 1200}
	plan, err := NewPlan(Request{
		Page:      0,
		PageSize:  letter,
		Container: c,
		Drop:      drag.Drop{Release: coords.Release{X: 400, Y: 300}},
		Overlay:   Overlay{Kind: KindDate, Text: "3/7/2025"},
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	scale := 612.0 / 789.0
	want := []pdf.TextStamp{{
		Page:  1,
		X:     (400 - 166) * scale,
		Y:     (1200 - (300 + 12*scale)) * scale,
		Size:  20 * scale,
		Text:  "3/7/2025",
		Color: pdf.Black,
	}}
	if diff := cmp.Diff(want, plan.Texts, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Unexpected text stamps (-want +got):\n%s", diff)
	}
	if plan.Image != nil {
		t.Error("Text plan should not carry an image")
	}
}

func TestPlanMeasuredText(t *testing.T) {
	plan, err := NewPlan(Request{
		Page:      2,
		PageSize:  letter,
		Container: container,
		Drop: drag.Drop{
			Release: coords.Release{X: 110, Y: 230, GrabOffsetX: 10, GrabOffsetY: 10},
			Width:   150,
			Height:  20,
		},
		Overlay: Overlay{Kind: KindText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	scale := 612.0 / 800.0
	got := plan.Texts[0]
	if got.Page != 3 {
		t.Errorf("Expected 1-based page 3, got %d", got.Page)
	}
	// Overlay top-left at (100, 220), bottom edge at 240.
	if math.Abs(got.X-100*scale) > 1e-9 || math.Abs(got.Y-(1035-240)*scale) > 1e-9 {
		t.Errorf("Unexpected position (%f, %f)", got.X, got.Y)
	}
}

func TestPlanSignatureWithCaption(t *testing.T) {
	sig := testSignature(t)
	plan, err := NewPlan(Request{
		PageSize:  letter,
		Container: container,
		Drop: drag.Drop{
			Release: coords.Release{X: 300, Y: 500},
			Width:   100,
			Height:  25,
		},
		Overlay: Overlay{Kind: KindSignature, Signature: sig, AutoDate: true},
		Now:     now,
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	if plan.Image == nil {
		t.Fatal("Expected an image stamp")
	}
	scale := 612.0 / 800.0
	if want := 100 * scale / 200; math.Abs(plan.Image.Scale-want) > 1e-9 {
		t.Errorf("Expected image scale %f, got %f", want, plan.Image.Scale)
	}
	if len(plan.Texts) != 1 {
		t.Fatalf("Expected one caption, got %d", len(plan.Texts))
	}
	caption := plan.Texts[0]
	if caption.Text != "Signed 3/7/2025 14:05:09 +0000" {
		t.Errorf("Unexpected caption %q", caption.Text)
	}
	if caption.Y != plan.Image.Y-CaptionGap || caption.X != plan.Image.X {
		t.Errorf("Caption should sit %d units below the image", CaptionGap)
	}
	if caption.Color != CaptionColor {
		t.Errorf("Unexpected caption colour %+v", caption.Color)
	}
}

func TestPlanLegacySignature(t *testing.T) {
	plan, err := NewPlan(Request{
		PageSize:  letter,
		Container: container,
		Drop:      drag.Drop{Release: coords.Release{X: 300, Y: 500}},
		Overlay:   Overlay{Kind: KindSignature, Signature: testSignature(t)},
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	scale := 612.0 / 800.0
	if math.Abs(plan.Image.Scale-scale*0.3) > 1e-9 {
		t.Errorf("Expected legacy image scale %f, got %f", scale*0.3, plan.Image.Scale)
	}
	if math.Abs(plan.Point.X-(300-160)*scale) > 1e-9 {
		t.Errorf("Expected legacy x correction, got %f", plan.Point.X)
	}
	if len(plan.Texts) != 0 {
		t.Error("No caption expected without auto date")
	}
}

func TestPlanNotLaidOut(t *testing.T) {
	_, err := NewPlan(Request{PageSize: letter, Overlay: Overlay{Kind: KindText, Text: "x"}})
	if !errors.Is(err, coords.ErrNotLaidOut) {
		t.Errorf("Expected ErrNotLaidOut, got %v", err)
	}
}

func TestCommit(t *testing.T) {
	req := Request{
		Document:  pdftest.Document(),
		PageSize:  letter,
		Container: container,
		Drop:      drag.Drop{Release: coords.Release{X: 300, Y: 500}, Width: 100, Height: 25},
		Overlay:   Overlay{Kind: KindSignature, Signature: testSignature(t), AutoDate: true},
		Now:       now,
	}
	plan, err := NewPlan(req)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	out, err := Commit(context.Background(), req)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	content, err := pdftest.PageContent(out, 1)
	if err != nil {
		t.Fatalf("Committed document does not parse: %v", err)
	}
	placed := pdftest.Translations(content)
	if len(placed) != 2 {
		t.Fatalf("Expected image and caption stamps, got %v", placed)
	}
	// Image first, then the caption on top of it.
	img, caption := placed[0], placed[1]
	if math.Abs(img[0]-plan.Point.X) > 1e-3 || math.Abs(img[1]-plan.Point.Y) > 1e-3 {
		t.Errorf("Expected image at (%.3f, %.3f), got %v", plan.Point.X, plan.Point.Y, img)
	}
	if math.Abs(caption[0]-plan.Point.X) > 1e-3 {
		t.Errorf("Expected caption at x=%.3f, got %v", plan.Point.X, caption)
	}
	if caption[1] >= img[1] {
		t.Errorf("Expected caption below the image, got image %v caption %v", img, caption)
	}
}

func TestCommitDate(t *testing.T) {
	req := Request{
		Document:  pdftest.Document(),
		PageSize:  letter,
		Container: container,
		Drop: drag.Drop{
			Release: coords.Release{X: 110, Y: 230, GrabOffsetX: 10, GrabOffsetY: 10},
			Width:   150,
			Height:  20,
		},
		Overlay: Overlay{Kind: KindDate, Text: "3/7/2025"},
	}
	out, err := Commit(context.Background(), req)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	content, err := pdftest.PageContent(out, 1)
	if err != nil {
		t.Fatalf("Committed document does not parse: %v", err)
	}
	x, y, ok := pdftest.LastTranslation(content)
	if !ok {
		t.Fatalf("No stamp found in content:\n%s", content)
	}
	scale := 612.0 / 800.0
	if math.Abs(x-100*scale) > 1e-3 {
		t.Errorf("Expected x=%.3f, got %.3f", 100*scale, x)
	}
	size := float64(pdf.FontPoints(20 * scale))
	if math.Abs(y-(1035-240)*scale) > size {
		t.Errorf("Expected y near %.3f, got %.3f", (1035-240)*scale, y)
	}
}

func TestCommitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Commit(ctx, Request{
		Document:  pdftest.Document(),
		PageSize:  letter,
		Container: container,
		Overlay:   Overlay{Kind: KindText, Text: "x"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCommitBadDocument(t *testing.T) {
	_, err := Commit(context.Background(), Request{
		Document:  []byte("garbage"),
		PageSize:  letter,
		Container: container,
		Overlay:   Overlay{Kind: KindText, Text: "x"},
	})
	if !errors.Is(err, pdf.ErrDocumentParse) {
		t.Errorf("Expected ErrDocumentParse, got %v", err)
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindText, KindDate, KindSignature} {
		if !k.Valid() {
			t.Errorf("Expected %q to be valid", k)
		}
	}
	if Kind("stamp").Valid() {
		t.Error("Expected unknown kind to be invalid")
	}
}
