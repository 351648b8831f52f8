package termdom

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Layer is one floating box to paint over the base view: pre-rendered
// lines and the cell position of their top-left corner.
type Layer struct {
	X, Y  int
	Lines []string
}

// Compose splices layers over the base view in order, so later layers
// cover earlier ones. Lines are cut ANSI-aware on both sides of each
// layer, keeping styled background intact around styled overlay boxes.
func Compose(base string, layers []Layer, width, height int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for _, layer := range layers {
		layerWidth := maxLineWidth(layer.Lines)
		for i, line := range layer.Lines {
			row := layer.Y + i
			if row < 0 || row >= len(lines) || row >= height {
				continue
			}
			lines[row] = splice(lines[row], line, layer.X, layerWidth, width)
		}
	}
	return strings.Join(lines, "\n")
}

// splice overwrites the cells [x, x+overlayWidth) of target with the
// overlay line, preserving the styled remainder on both sides.
func splice(target, overlay string, x, overlayWidth, width int) string {
	target = padRight(target, width)
	left := ansi.Truncate(target, x, "")
	if leftWidth := ansi.StringWidth(left); leftWidth < x {
		left += strings.Repeat(" ", x-leftWidth)
	}

	overlay = padRight(overlay, overlayWidth)
	pos := x + ansi.StringWidth(overlay)
	right := ""
	if width > 0 {
		right = ansi.TruncateLeft(target, pos, "")
		if gap := width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
	}
	return left + overlay + right
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
