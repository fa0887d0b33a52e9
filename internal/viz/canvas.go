package viz

import (
	"strings"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/vmath"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y), counted from the top-left corner.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawGrid marks every dot whose nearest grid cell holds less than
// threshold mass: the lines scraped into the coating. The top row of the
// canvas is the largest y.
func (c *Canvas) DrawGrid(grid [][]float64, threshold float64) {
	nx := len(grid)
	if nx == 0 {
		return
	}
	c.drawSampled(nx, len(grid[0]), func(x, y int) float64 { return grid[x][y] }, threshold)
}

// DrawScreen is DrawGrid reading straight from a live screen.
func (c *Canvas) DrawScreen(s *etch.Screen, threshold float64) {
	size := s.Size()
	c.drawSampled(size.X, size.Y, func(x, y int) float64 { return s.Mass(vmath.I(x, y)) }, threshold)
}

func (c *Canvas) drawSampled(nx, ny int, at func(x, y int) float64, threshold float64) {
	if nx == 0 || ny == 0 {
		return
	}
	w, h := c.Dots()
	for dy := 0; dy < h; dy++ {
		gy := ny - 1 - sample(dy, h, ny)
		for dx := 0; dx < w; dx++ {
			if at(sample(dx, w, nx), gy) < threshold {
				c.Set(dx, dy)
			}
		}
	}
}

// DrawPoint marks the dot nearest to p on a screen of the given extent.
func (c *Canvas) DrawPoint(p, extent vmath.Vec2) {
	c.Set(c.project(p, extent))
}

// DrawPath connects points with lines.
func (c *Canvas) DrawPath(points []vmath.Vec2, extent vmath.Vec2) {
	for i := 1; i < len(points); i++ {
		x0, y0 := c.project(points[i-1], extent)
		x1, y1 := c.project(points[i], extent)
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) project(p, extent vmath.Vec2) (int, int) {
	w, h := c.Dots()
	if extent.X <= 0 || extent.Y <= 0 {
		return -1, -1
	}
	x := int(p.X / extent.X * float64(w-1))
	y := h - 1 - int(p.Y/extent.Y*float64(h-1))
	return x, y
}

// sample maps dot i of n onto the center of one of cells cells.
func sample(i, n, cells int) int {
	j := (2*i + 1) * cells / (2 * n)
	if j >= cells {
		j = cells - 1
	}
	return j
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
