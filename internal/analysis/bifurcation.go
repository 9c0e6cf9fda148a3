package analysis

// BifurcationPoint records the distinct values a series keeps visiting
// for one value of a swept parameter.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// StableValues reduces a post-transient series to the distinct values
// it visits, quantized to the given resolution. A fixed point yields
// one value, a period-2 orbit two, chaos many.
func StableValues(series []float64, quantum float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	if quantum <= 0 {
		quantum = 1e-3
	}

	values := make([]float64, 0, 16)
	seen := make(map[int64]bool)
	for _, v := range series {
		key := int64(v / quantum)
		if !seen[key] {
			seen[key] = true
			values = append(values, v)
		}
	}
	return values
}

// RenderBifurcation draws a bifurcation diagram on a character canvas,
// parameter on the x axis and visited values on the y axis.
func RenderBifurcation(points []BifurcationPoint, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minVal, maxVal := 0.0, 0.0
	found := false
	for _, p := range points {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range points {
		col := i * width / len(points)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	result := ""
	for _, row := range canvas {
		result += string(row) + "\n"
	}
	return result
}
