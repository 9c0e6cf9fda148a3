package export

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"spiralsim/internal/trace"
)

func sampleTrace(n int, freq float64) trace.Trace {
	tr := make(trace.Trace, n)
	for i := range tr {
		t := float64(i) * 0.1
		tr[i] = trace.Sample{
			T: t,
			S: math.Sin(2 * math.Pi * freq * t),
			C: math.Exp(-0.05 * t),
			R: 1.618 + 0.05*math.Sin(2*math.Pi*0.1*t),
		}
	}
	return tr
}

func TestFigureDeterministic(t *testing.T) {
	tr := sampleTrace(201, 0.5)

	a := Figure(tr)
	b := Figure(tr)
	if !bytes.Equal(a, b) {
		t.Error("expected identical bytes for identical traces")
	}

	hash := FigureHash(a)
	if len(hash) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(hash))
	}
	if hash != FigureHash(b) {
		t.Error("expected stable figure hash")
	}
}

func TestFigureLayout(t *testing.T) {
	svg := string(Figure(sampleTrace(50, 0.5)))

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected XML declaration")
	}
	if got := strings.Count(svg, "<path"); got != 3 {
		t.Errorf("expected 3 series paths, got %d", got)
	}
	for _, label := range []string{"S(t)", "C(t)", "r(t)"} {
		if !strings.Contains(svg, label) {
			t.Errorf("expected panel label %s", label)
		}
	}
}

func TestFigureShortTrace(t *testing.T) {
	if Figure(nil) != nil {
		t.Error("expected nil figure for empty trace")
	}
	if Figure(sampleTrace(1, 0.5)) != nil {
		t.Error("expected nil figure for single sample")
	}
}

func TestFigureDiffersAcrossTraces(t *testing.T) {
	a := Figure(sampleTrace(201, 0.5))
	b := Figure(sampleTrace(201, 0.7))
	if FigureHash(a) == FigureHash(b) {
		t.Error("expected different figures for different traces")
	}
}

func TestRenderAndDiffIdentical(t *testing.T) {
	dir := t.TempDir()
	tr := sampleTrace(201, 0.5)

	pathA := filepath.Join(dir, "a.png")
	pathB := filepath.Join(dir, "b.png")
	if err := WritePNG(pathA, RenderPNG(tr)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WritePNG(pathB, RenderPNG(tr)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frac, err := DiffPNG(pathA, pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frac != 0 {
		t.Errorf("expected identical renders, got %.4f differing", frac)
	}
}

func TestDiffDetectsChange(t *testing.T) {
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.png")
	pathB := filepath.Join(dir, "b.png")
	if err := WritePNG(pathA, RenderPNG(sampleTrace(201, 0.5))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WritePNG(pathB, RenderPNG(sampleTrace(201, 0.9))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frac, err := DiffPNG(pathA, pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frac <= 0 {
		t.Error("expected differing renders to report a nonzero fraction")
	}
	if frac > 0.2 {
		t.Errorf("expected localized differences, got %.4f", frac)
	}
}

func TestDiffSizeMismatch(t *testing.T) {
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.png")
	pathB := filepath.Join(dir, "b.png")
	if err := WritePNG(pathA, RenderPNG(sampleTrace(201, 0.5))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	small := RenderPNG(sampleTrace(10, 0.5))
	cropped := small.SubImage(small.Bounds().Inset(10))
	if err := WritePNG(pathB, cropped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frac, err := DiffPNG(pathA, pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frac != 1.0 {
		t.Errorf("expected size mismatch to count as fully different, got %.4f", frac)
	}
}

func TestDiffMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := DiffPNG(filepath.Join(dir, "nope.png"), filepath.Join(dir, "also-nope.png")); err == nil {
		t.Error("expected error for missing files")
	}
}
