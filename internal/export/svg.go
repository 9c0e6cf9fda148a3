// Package export renders run traces into figures and compares rendered
// figures against stored references. Rendering depends only on the
// trace bytes, never on the clock, so figure fingerprints are stable
// across machines.
package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"spiralsim/internal/trace"
)

const (
	figureWidth = 800
	panelHeight = 200
	panelCount  = 3
)

var panelColors = [panelCount]string{"#00ff00", "#00bfff", "#ffbf00"}
var panelLabels = [panelCount]string{"S(t)", "C(t)", "r(t)"}

// Figure renders the three trace panels (signal, coherence, ratio) as
// a fixed-size SVG. Traces shorter than two samples render nothing.
func Figure(tr trace.Trace) []byte {
	if len(tr) < 2 {
		return nil
	}

	times := tr.Times()
	series := [panelCount][]float64{tr.Signal(), tr.Coherence(), tr.Ratio()}

	height := panelCount * panelHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, figureWidth, height, figureWidth, height))

	for p := 0; p < panelCount; p++ {
		top := p * panelHeight
		if p > 0 {
			sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#333333" stroke-width="1"/>
`, top, figureWidth, top))
		}
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="#888888" font-family="monospace" font-size="12">%s</text>
`, top+16, panelLabels[p]))
		writePath(&sb, times, series[p], top, panelColors[p])
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// writePath maps one series onto its panel and emits a polyline path.
// The vertical range is padded by 10% so extremes stay off the panel
// edge; a flat series sits on the panel midline.
func writePath(sb *strings.Builder, xs, ys []float64, top int, stroke string) {
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

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(figureWidth)
		y := float64(top) + float64(panelHeight) - (ys[i]-minY)/rangeY*float64(panelHeight)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// FigureHash returns the SHA-256 fingerprint of rendered figure bytes.
func FigureHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
