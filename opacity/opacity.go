// Package opacity implements the per-symbol fade animation state and
// the 32-bit vertex encoding used to upload it to the GPU.
package opacity

// State is the fade animation state of one half (text or icon) of a
// symbol: a scalar opacity and the last placement decision.
type State struct {
	Opacity float32
	Placed  bool
}

// Hidden reports whether s contributes nothing to the render: fully
// faded out and not currently placed.
func (s State) Hidden() bool {
	return s.Opacity == 0 && !s.Placed
}

// New constructs the initial state for a symbol seen for the first
// time. When skipFade is set and the symbol is placed, the state
// starts fully visible instead of fading in.
func New(placed, skipFade bool) State {
	if skipFade && placed {
		return State{Opacity: 1, Placed: placed}
	}
	return State{Opacity: 0, Placed: placed}
}

// Advance builds the next state from prev, an elapsed increment
// (fraction of fadeDuration, in [0,1]) and the new placement
// decision. Opacity moves toward 1 while prev was placed, toward 0
// while it was not; it never leaves [0,1].
func Advance(prev State, increment float32, placed bool) State {
	sign := float32(-1)
	if prev.Placed {
		sign = 1
	}
	o := prev.Opacity + sign*increment
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	return State{Opacity: o, Placed: placed}
}

// PackOpacity encodes s into the 32-bit vertex attribute shared by
// all four vertices of a glyph or icon quad: four repeated bytes of
// (floor(opacity*127)<<1 | placed). The all-zero and all-one fast
// paths are exact regardless of float rounding.
func PackOpacity(s State) uint32 {
	switch {
	case s.Opacity == 0 && !s.Placed:
		return 0
	case s.Opacity == 1 && s.Placed:
		return 0xFFFFFFFF
	}
	o := uint32(s.Opacity * 127)
	if o > 127 {
		o = 127
	}
	var p uint32
	if s.Placed {
		p = 1
	}
	b := (o << 1) | p
	return b<<24 | b<<16 | b<<8 | b
}

// JointState is the fade state of a symbol's text and icon halves,
// advanced coherently by the same commit pass.
type JointState struct {
	Text State
	Icon State
}

// Hidden reports whether both halves are hidden.
func (j JointState) Hidden() bool {
	return j.Text.Hidden() && j.Icon.Hidden()
}

// Placement is one frame's placement decision for a symbol: whether
// its text and icon were placed, and whether the decision should
// skip the fade-in animation.
type Placement struct {
	Text     bool
	Icon     bool
	SkipFade bool
}

// NewJointState seeds a JointState for a symbol placed for the first
// time this pass.
func NewJointState(p Placement) JointState {
	return JointState{
		Text: New(p.Text, p.SkipFade),
		Icon: New(p.Icon, p.SkipFade),
	}
}

// AdvanceJoint advances both halves of prev toward the decisions in
// p, given the elapsed fade increment. placementChanged reports
// whether either half's placed bit flipped.
func AdvanceJoint(prev JointState, increment float32, p Placement) (next JointState, placementChanged bool) {
	next.Text = Advance(prev.Text, increment, p.Text)
	next.Icon = Advance(prev.Icon, increment, p.Icon)
	placementChanged = next.Text.Placed != prev.Text.Placed || next.Icon.Placed != prev.Icon.Placed
	return
}
