// Package etch simulates the coating of a drawing toy being scraped by a
// stylus.
//
// The coating is a grid of non-negative mass values covering the toy's
// physical extent. Moving the stylus pushes the material under it outwards,
// and that motion drags neighbouring material along in attenuated layers:
//
//   - [Screen]: the grid, the stylus position and the scratch state
//   - [Screen.DiskQuery]: cells intersecting a circle, with coverage
//   - [Screen.MoveTo]: walks the stylus along a straight segment in
//     micro-steps of one cell width
//
// # Example
//
//	scr, err := etch.New(etch.Params{
//	    Thickness: 0.01,
//	    Extent:    vmath.V(2, 2),
//	    Density:   2000,
//	    Start:     vmath.V(1, 1),
//	    Radius:    0.0025,
//	})
//	scr.MoveTo(vmath.V(1.1, 1))
//	grid := scr.Grid()
//
// # Determinism
//
// A Screen is single-threaded and fully deterministic: replaying the same
// targets on a freshly built Screen yields a bit-identical grid. Screen
// instances are NOT safe for concurrent use.
package etch
