package opacity

import "testing"

func TestHiddenInvariant(t *testing.T) {
	cases := []State{
		{Opacity: 0, Placed: false},
		{Opacity: 0, Placed: true},
		{Opacity: 1, Placed: false},
		{Opacity: 0.5, Placed: true},
	}
	for _, s := range cases {
		want := s.Opacity == 0 && !s.Placed
		if got := s.Hidden(); got != want {
			t.Errorf("State{%v,%v}.Hidden() = %v, want %v", s.Opacity, s.Placed, got, want)
		}
	}
}

func TestPackOpacityFastPaths(t *testing.T) {
	if got := PackOpacity(State{Opacity: 0, Placed: false}); got != 0 {
		t.Errorf("PackOpacity(hidden) = %#x, want 0", got)
	}
	if got := PackOpacity(State{Opacity: 1, Placed: true}); got != 0xFFFFFFFF {
		t.Errorf("PackOpacity(fully placed) = %#x, want 0xFFFFFFFF", got)
	}
}

func TestPackOpacityGeneralCase(t *testing.T) {
	s := State{Opacity: 0.5, Placed: true}
	got := PackOpacity(s)
	o := uint32(63) // floor(0.5 * 127)
	want := (o << 1) | 1
	wantPacked := want<<24 | want<<16 | want<<8 | want
	if got != wantPacked {
		t.Errorf("PackOpacity(0.5, true) = %#x, want %#x", got, wantPacked)
	}
	// All four bytes must be equal.
	b0 := got & 0xFF
	b1 := (got >> 8) & 0xFF
	b2 := (got >> 16) & 0xFF
	b3 := (got >> 24) & 0xFF
	if b0 != b1 || b1 != b2 || b2 != b3 {
		t.Errorf("PackOpacity bytes not uniform: %#x %#x %#x %#x", b0, b1, b2, b3)
	}
}

// TestFadeInFromScratch covers a fresh symbol placed with no
// previous state: it fades in linearly over fadeDuration.
func TestFadeInFromScratch(t *testing.T) {
	s := New(true, false)
	if s.Opacity != 0 || !s.Placed {
		t.Fatalf("New(true,false) = %+v, want {0 true}", s)
	}
	const fadeDuration = 300.0
	half := Advance(s, 150.0/fadeDuration, true)
	if half.Opacity != 0.5 {
		t.Errorf("opacity at t=150/300 = %v, want 0.5", half.Opacity)
	}
	full := Advance(half, 150.0/fadeDuration, true)
	if full.Opacity != 1 {
		t.Errorf("opacity at t=300/300 = %v, want 1", full.Opacity)
	}
}

// TestFadeOutCarry covers a symbol placed last frame but undecided
// this frame: the sign of the fade comes from the previous placed
// bit, so the first step still moves toward fully visible (a
// one-frame lag) before the new, unplaced decision takes over and it
// fades out to hidden.
func TestFadeOutCarry(t *testing.T) {
	prev := State{Opacity: 1, Placed: true}
	const fadeDuration = 300.0
	first := Advance(prev, 150.0/fadeDuration, false)
	if first.Opacity != 1 || first.Placed {
		t.Fatalf("Advance(prev, 0.5, false) = %+v, want {1 false}", first)
	}
	mid := Advance(first, 150.0/fadeDuration, false)
	if mid.Opacity != 0.5 || mid.Placed {
		t.Fatalf("Advance(first, 0.5, false) = %+v, want {0.5 false}", mid)
	}
	gone := Advance(mid, 150.0/fadeDuration, false)
	if !gone.Hidden() {
		t.Fatalf("Advance(mid, 0.5, false) = %+v, want hidden", gone)
	}
}

// TestSkipFadeInitializesVisible covers a symbol whose placement
// decision carries skipFade: it starts fully visible rather than
// fading in.
func TestSkipFadeInitializesVisible(t *testing.T) {
	s := New(true, true)
	if s.Opacity != 1 || !s.Placed {
		t.Fatalf("New(true, skipFade=true) = %+v, want {1 true}", s)
	}
}

func TestAdvanceJointPlacementChanged(t *testing.T) {
	prev := JointState{Text: State{Opacity: 0, Placed: false}, Icon: State{Opacity: 0, Placed: false}}
	_, changed := AdvanceJoint(prev, 1, Placement{Text: true, Icon: false})
	if !changed {
		t.Error("expected placementChanged when text placed bit flips")
	}
	_, changed = AdvanceJoint(prev, 1, Placement{Text: false, Icon: false})
	if changed {
		t.Error("expected no placementChanged when nothing flips")
	}
}
