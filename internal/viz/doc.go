// Package viz renders etch screens in the terminal.
//
// The package provides:
//
//   - [Canvas]: Braille dot canvas; [Canvas.DrawGrid] marks scraped cells
//   - [Profile]: asciigraph plot of one grid row
//   - [LiveModel]: Bubble Tea program replaying a command file on a screen
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	+/-   - Commands per frame
//	Q     - Quit
package viz
