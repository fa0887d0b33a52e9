package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Profile plots the mass along grid row y, a horizontal cross section of
// the coating. Columns are averaged down to at most width points.
func Profile(grid [][]float64, y, width, height int) (string, error) {
	if len(grid) == 0 {
		return "", fmt.Errorf("empty grid")
	}
	if y < 0 || y >= len(grid[0]) {
		return "", fmt.Errorf("row %d outside 0..%d", y, len(grid[0])-1)
	}

	row := make([]float64, len(grid))
	for x := range grid {
		row[x] = grid[x][y]
	}

	return asciigraph.Plot(downsample(row, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption(fmt.Sprintf("mass along row %d", y)),
	), nil
}

func downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(values) / n
		hi := (i + 1) * len(values) / n
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
