package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/etchsim/internal/vmath"
)

// PathSVG draws the stylus path from start through targets on a canvas of
// the screen's extent, widthPx pixels wide. The height keeps the extent's
// aspect ratio and y grows upwards as on the screen.
func PathSVG(start vmath.Vec2, targets []vmath.Vec2, extent vmath.Vec2, widthPx int) string {
	if extent.X <= 0 || extent.Y <= 0 || widthPx <= 0 {
		return ""
	}
	scale := float64(widthPx) / extent.X
	width := widthPx
	height := int(extent.Y*scale + 0.5)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#8a8a8a"/>
<path fill="none" stroke="#262626" stroke-width="1.5" stroke-linejoin="round" d="M`,
		width, height, width, height))

	point := func(p vmath.Vec2) (float64, float64) {
		return p.X * scale, float64(height) - p.Y*scale
	}

	x, y := point(start)
	sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	for _, p := range targets {
		x, y = point(p)
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
