// Package position computes anchored placement for floating overlay
// content: below the anchor by default, flipped above when the space
// under it runs out. The flip decision uses a fixed estimated content
// height rather than a measurement; that keeps placement a pure function
// of anchor and viewport geometry, at the cost of occasionally flipping a
// short overlay that would have fit. Hosts that need exact collision
// handling can measure and recompute, the contract allows it.
package position

import "github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"

// Side is the vertical side of the anchor the content attaches to.
type Side string

const (
	SideBottom Side = "bottom"
	SideTop    Side = "top"
)

// Align is the horizontal alignment against the anchor.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// DefaultEstimatedHeight is the content height assumed by the flip
// heuristic when a spec does not provide one.
const DefaultEstimatedHeight = 200

// Spec describes the requested placement.
type Spec struct {
	Side  Side
	Align Align
	// Offset is the gap between anchor and content edge.
	Offset float64
	// EstimatedHeight feeds the flip heuristic; zero means
	// DefaultEstimatedHeight.
	EstimatedHeight float64
	// MatchWidth sizes the content to the anchor (Select-style triggers).
	MatchWidth bool
	// MinWidth is a floor applied when MatchWidth is set.
	MinWidth float64
}

// Placement is the computed result. Y carries the content's top edge for
// SideBottom and its bottom edge for SideTop; X carries the left edge for
// AlignStart, the right edge for AlignEnd and the anchor midpoint for
// AlignCenter. The renderer finishes the translate-style correction with
// the actual rendered size, which the engine never measures. Width is the
// forced content width, zero meaning intrinsic.
type Placement struct {
	X     float64
	Y     float64
	Side  Side
	Align Align
	Width float64
}

// Compute resolves spec against the anchor and viewport rectangles.
func Compute(anchor, viewport dom.Rect, spec Spec) Placement {
	side := spec.Side
	if side == "" {
		side = SideBottom
	}
	align := spec.Align
	if align == "" {
		align = AlignStart
	}
	est := spec.EstimatedHeight
	if est <= 0 {
		est = DefaultEstimatedHeight
	}

	spaceBelow := viewport.Bottom() - anchor.Bottom()
	spaceAbove := anchor.Y - viewport.Y
	if side == SideBottom && spaceBelow < est && spaceAbove > spaceBelow {
		side = SideTop
	}

	p := Placement{Side: side, Align: align}
	switch side {
	case SideBottom:
		p.Y = anchor.Bottom() + spec.Offset
	case SideTop:
		p.Y = anchor.Y - spec.Offset
	}
	switch align {
	case AlignStart:
		p.X = anchor.X
	case AlignEnd:
		p.X = anchor.Right()
	case AlignCenter:
		p.X = anchor.MidX()
	}
	if spec.MatchWidth {
		p.Width = anchor.Width
		if spec.MinWidth > p.Width {
			p.Width = spec.MinWidth
		}
	}
	return p
}
