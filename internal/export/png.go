package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"spiralsim/internal/trace"
)

var panelRGBA = [panelCount]color.RGBA{
	{0x00, 0xff, 0x00, 0xff},
	{0x00, 0xbf, 0xff, 0xff},
	{0xff, 0xbf, 0x00, 0xff},
}

// RenderPNG rasterizes the same three panels as [Figure] into an RGBA
// image. Traces shorter than two samples render nothing.
func RenderPNG(tr trace.Trace) *image.RGBA {
	if len(tr) < 2 {
		return nil
	}

	times := tr.Times()
	series := [panelCount][]float64{tr.Signal(), tr.Coherence(), tr.Ratio()}

	height := panelCount * panelHeight
	img := image.NewRGBA(image.Rect(0, 0, figureWidth, height))
	bg := color.RGBA{0x0a, 0x0a, 0x0a, 0xff}
	for y := 0; y < height; y++ {
		for x := 0; x < figureWidth; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	for p := 0; p < panelCount; p++ {
		drawSeries(img, times, series[p], p*panelHeight, panelRGBA[p])
	}
	return img
}

// drawSeries plots one series into its panel band with the same
// bounds and padding as the SVG path.
func drawSeries(img *image.RGBA, xs, ys []float64, top int, c color.RGBA) {
	minX, maxX := xs[0], xs[len(xs)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(i int) (int, int) {
		x := int((xs[i] - minX) / rangeX * float64(figureWidth-1))
		y := top + panelHeight - 1 - int((ys[i]-minY)/rangeY*float64(panelHeight-1))
		return x, y
	}

	x0, y0 := px(0)
	for i := 1; i < len(xs); i++ {
		x1, y1 := px(i)
		drawLine(img, x0, y0, x1, y1, c)
		x0, y0 = x1, y1
	}
}

// drawLine plots a segment by stepping along its longer axis.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for s := 0; s <= steps; s++ {
		x := x0 + dx*s/steps
		y := y0 + dy*s/steps
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WritePNG encodes an image to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// DiffPNG decodes two PNG files and returns the fraction of pixels
// whose RGBA values differ exactly. Mismatched dimensions count as
// fully different.
func DiffPNG(pathA, pathB string) (float64, error) {
	imgA, err := loadPNG(pathA)
	if err != nil {
		return 0, err
	}
	imgB, err := loadPNG(pathB)
	if err != nil {
		return 0, err
	}

	ba, bb := imgA.Bounds(), imgB.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return 1.0, nil
	}

	total := ba.Dx() * ba.Dy()
	if total == 0 {
		return 0, nil
	}

	differing := 0
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			ra, ga, bA, aa := imgA.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			rb, gb, bB, ab := imgB.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ra != rb || ga != gb || bA != bB || aa != ab {
				differing++
			}
		}
	}
	return float64(differing) / float64(total), nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
