// Package export writes simulation results as images, SVG paths and CSV.
package export

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"runtime"
	"sync"
)

const (
	maxIntensity = 0.7
	gain         = 0.8
	floor        = 0.3
)

// Intensity maps a cell mass to a gray level in [0.3, 0.86]. Scraped glass
// is dark; coating at or above 0.7 of its nominal thickness is brightest.
func Intensity(mass, thickness float64) float64 {
	v := 0.0
	if thickness > 0 {
		v = mass / thickness
	}
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > maxIntensity {
		v = maxIntensity
	}
	return v*gain + floor
}

// Render rasterises a column-major grid, one pixel per cell, with the y axis
// flipped so the top row of the image is the largest y.
func Render(grid [][]float64, thickness float64) *image.Gray {
	w := len(grid)
	if w == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	h := len(grid[0])
	img := image.NewGray(image.Rect(0, 0, w, h))

	parallelFor(w, 64, func(start, end int) {
		for x := start; x < end; x++ {
			col := grid[x]
			for y := 0; y < h && y < len(col); y++ {
				g := Intensity(col[y], thickness)
				img.Pix[(h-1-y)*img.Stride+x] = uint8(math.Round(g * 255))
			}
		}
	})
	return img
}

func WritePNG(path string, grid [][]float64, thickness float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, Render(grid, thickness)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// parallelFor splits [0, n) into contiguous ranges handled concurrently.
// Work smaller than minChunk runs on the calling goroutine.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
