package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lqrplan/internal/dynamo"
)

// PhaseSVG draws the predicted trajectory in the (x[xAxis], x[yAxis]) plane
// as a single SVG path. The start is marked with a circle, the origin (the
// regulation target) with a cross when it falls inside the frame.
func PhaseSVG(tr dynamo.Trajectory, xAxis, yAxis, width, height int) (string, error) {
	if len(tr.States) < 2 {
		return "", fmt.Errorf("export: need at least 2 states, got %d", len(tr.States))
	}
	dim := len(tr.States[0])
	if xAxis < 0 || yAxis < 0 || xAxis >= dim || yAxis >= dim {
		return "", fmt.Errorf("export: axes (%d, %d) out of range for %d states: %w", xAxis, yAxis, dim, dynamo.ErrDimensionMismatch)
	}

	minX, maxX := tr.States[0][xAxis], tr.States[0][xAxis]
	minY, maxY := tr.States[0][yAxis], tr.States[0][yAxis]
	for _, x := range tr.States {
		minX, maxX = min(minX, x[xAxis]), max(maxX, x[xAxis])
		minY, maxY = min(minY, x[yAxis]), max(maxY, x[yAxis])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(px, py float64) (float64, float64) {
		return (px - minX) / rangeX * float64(width),
			float64(height) - (py-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ffff" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, x := range tr.States {
		px, py := project(x[xAxis], x[yAxis])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := project(tr.States[0][xAxis], tr.States[0][yAxis])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#00ff88"/>
`, sx, sy))

	if minX <= 0 && 0 <= maxX && minY <= 0 && 0 <= maxY {
		ox, oy := project(0, 0)
		sb.WriteString(fmt.Sprintf(`<path stroke="#ff4444" stroke-width="1.5" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>
`, ox-5, oy-5, ox+5, oy+5, ox-5, oy+5, ox+5, oy-5))
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}
