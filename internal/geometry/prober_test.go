package geometry

import "testing"

func TestProberWaitsForReady(t *testing.T) {
	p := NewProber(&stubElement{size: Size{300, 1}}, &stubElement{size: Size{80, 1}}, Options{Speed: 60}, true)

	if p.Recalc() {
		t.Fatal("expected measurement to be deferred until ready")
	}
	if !p.Pending() || p.Result().Valid {
		t.Fatal("expected pending, invalid result")
	}

	if !p.Ready() {
		t.Fatal("expected ready signal to run the deferred measurement")
	}
	if !p.Result().Valid || p.Result().Fits {
		t.Fatalf("unexpected result %s", p.Result())
	}
	if p.Epoch() != 1 {
		t.Fatalf("expected epoch 1, got %d", p.Epoch())
	}

	if p.Ready() {
		t.Fatal("a second ready signal without pending work should not re-measure")
	}
}

func TestProberRecalcInvalidatesAndRemeasures(t *testing.T) {
	content := &stubElement{size: Size{300, 1}}
	p := NewProber(content, &stubElement{size: Size{80, 1}}, Options{}, false)

	if !p.Recalc() {
		t.Fatal("expected immediate measurement")
	}
	content.size = Size{20, 1}
	if !p.Recalc() {
		t.Fatal("expected re-measure")
	}
	if !p.Result().Fits {
		t.Fatal("shrunk content should fit")
	}
	if p.Epoch() != 2 {
		t.Fatalf("expected epoch 2, got %d", p.Epoch())
	}
}

func TestProberFailedMeasurementStaysInvalid(t *testing.T) {
	p := NewProber(&stubElement{panics: true}, &stubElement{size: Size{80, 1}}, Options{}, false)
	if p.Recalc() {
		t.Fatal("expected failure")
	}
	if p.Result().Valid {
		t.Fatal("failed measurement must leave the result invalid")
	}
}
