// Package geom implements the dynamic-anchor geometry used to try
// alternate label placements around a feature's anchor point.
package geom

import (
	"math"

	"symbolplace.dev/f32"
)

// Anchor names the side or corner of a label that points at the
// feature anchor.
type Anchor int

// Anchor values, in the fixed order used to expand "auto".
const (
	Center Anchor = iota
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// AutoAnchors is the fixed search order used when a layer's
// dynamic-text-anchor list starts with "auto".
var AutoAnchors = []Anchor{Center, Top, Bottom, Left, Right, TopLeft, TopRight, BottomLeft, BottomRight}

// Justification is the horizontal text justification implied by an
// anchor.
type Justification int

// Justifications.
const (
	JustifyCenter Justification = iota
	JustifyLeft
	JustifyRight
)

// AnchorJustification returns the justification a label placed at a
// the given anchor should use.
func AnchorJustification(a Anchor) Justification {
	switch a {
	case Left, TopLeft, BottomLeft:
		return JustifyRight // the label extends to the right of a left-side anchor
	case Right, TopRight, BottomRight:
		return JustifyLeft
	default:
		return JustifyCenter
	}
}

// Alignment is the fractional position (0, 0.5 or 1) of the anchor
// along one axis of the label box, used to compute alignment shifts.
type Alignment float32

// Alignment values.
const (
	AlignStart  Alignment = 0
	AlignMiddle Alignment = 0.5
	AlignEnd    Alignment = 1
)

// AnchorAlignment returns the horizontal and vertical alignment
// implied by an anchor.
func AnchorAlignment(a Anchor) (horizontal, vertical Alignment) {
	horizontal, vertical = AlignMiddle, AlignMiddle
	switch a {
	case Left, TopLeft, BottomLeft:
		horizontal = AlignStart
	case Right, TopRight, BottomRight:
		horizontal = AlignEnd
	}
	switch a {
	case Top, TopLeft, TopRight:
		vertical = AlignStart
	case Bottom, BottomLeft, BottomRight:
		vertical = AlignEnd
	}
	return
}

// DynamicOffset returns the label-center displacement, in ems, for an
// anchor and a radial offset magnitude. Diagonal anchors split the
// offset across both axes so the total displacement length is r; the
// sign is chosen so the anchor names the corner the label points
// from (e.g. TopRight sits below-left of the feature anchor).
func DynamicOffset(a Anchor, r float32) f32.Point {
	const sqrt2inv = 1 / math.Sqrt2
	h := r * sqrt2inv
	switch a {
	case Center:
		return f32.Point{}
	case Top:
		return f32.Point{X: 0, Y: r}
	case Bottom:
		return f32.Point{X: 0, Y: -r}
	case Left:
		return f32.Point{X: r, Y: 0}
	case Right:
		return f32.Point{X: -r, Y: 0}
	case TopLeft:
		return f32.Point{X: h, Y: h}
	case TopRight:
		return f32.Point{X: -h, Y: h}
	case BottomLeft:
		return f32.Point{X: h, Y: -h}
	case BottomRight:
		return f32.Point{X: -h, Y: -h}
	default:
		return f32.Point{}
	}
}

// ShiftCollisionBox translates box by (shift + offsetEms*textBoxScale),
// preserving its width and height. The anchor point that box is
// expressed relative to is unchanged by this call; the caller applies
// the same translation to the anchor separately if needed.
func ShiftCollisionBox(box f32.Rectangle, textBoxScale float32, shift, offsetEms f32.Point) f32.Rectangle {
	d := f32.Point{
		X: shift.X + offsetEms.X*textBoxScale,
		Y: shift.Y + offsetEms.Y*textBoxScale,
	}
	return box.Add(d)
}

// AnchorSpec is one entry of a layer's configured dynamic-text-anchor
// list: either the literal keyword "auto" or a concrete Anchor.
type AnchorSpec struct {
	Auto   bool
	Anchor Anchor
}

// ResolveAnchors expands a layer's configured dynamic-text-anchor
// list, replacing a leading "auto" entry with AutoAnchors. warn is
// invoked for every later "auto" entry ("auto" is only valid as the
// first entry); the caller is expected to only log the first such
// call. Each offending entry is skipped.
func ResolveAnchors(configured []AnchorSpec, warn func()) []Anchor {
	if len(configured) == 0 {
		return nil
	}
	out := make([]Anchor, 0, len(configured)+len(AutoAnchors))
	if configured[0].Auto {
		out = append(out, AutoAnchors...)
	} else {
		out = append(out, configured[0].Anchor)
	}
	for _, a := range configured[1:] {
		if a.Auto {
			if warn != nil {
				warn()
			}
			continue
		}
		out = append(out, a.Anchor)
	}
	return out
}
