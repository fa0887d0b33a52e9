package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/etchsim/internal/vmath"
)

// CellRecord is one grid cell in the CSV dump.
type CellRecord struct {
	X     int     `csv:"x"`
	Y     int     `csv:"y"`
	RealX float64 `csv:"real_x"`
	RealY float64 `csv:"real_y"`
	Mass  float64 `csv:"mass"`
}

// WriteGridCSV writes every cell of grid, column by column, with its
// real-space position on a screen of the given extent.
func WriteGridCSV(w io.Writer, grid [][]float64, extent vmath.Vec2) error {
	records := GridRecords(grid, extent)
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}
	return nil
}

func GridRecords(grid [][]float64, extent vmath.Vec2) []CellRecord {
	nx := len(grid)
	if nx == 0 {
		return nil
	}
	ny := len(grid[0])

	records := make([]CellRecord, 0, nx*ny)
	for x := range grid {
		for y, m := range grid[x] {
			records = append(records, CellRecord{
				X:     x,
				Y:     y,
				RealX: axis(x, nx, extent.X),
				RealY: axis(y, ny, extent.Y),
				Mass:  m,
			})
		}
	}
	return records
}

func axis(i, n int, extent float64) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1) * extent
}
