package placement

import "symbolplace.dev/opacity"

// Commit merges this pass's placement decisions with the previous
// pass's animated opacities, advancing the fade clock by the elapsed
// time since prev committed. prev may be nil for the
// first frame.
func (p *Placement) Commit(prev *Placement, now float64) {
	p.commitTime = now

	increment := 1.0
	if prev != nil && p.fadeDuration != 0 {
		increment = (now - prev.commitTime) / p.fadeDuration
	}

	if p.opacities == nil {
		p.opacities = make(map[uint64]opacity.JointState)
	}

	placementChanged := false

	for cid, decision := range p.placements {
		var (
			next    opacity.JointState
			changed bool
		)
		if prevState, ok := prevOpacity(prev, cid); ok {
			next, changed = opacity.AdvanceJoint(prevState, float32(increment), decision)
		} else {
			next = opacity.NewJointState(decision)
			changed = next.Text.Placed || next.Icon.Placed
		}
		p.opacities[cid] = next
		if changed {
			placementChanged = true
		}
	}

	if prev != nil {
		for cid, prevState := range prev.opacities {
			if _, stillDecided := p.placements[cid]; stillDecided {
				continue
			}
			next, changed := opacity.AdvanceJoint(prevState, float32(increment), opacity.Placement{})
			if !next.Hidden() {
				p.opacities[cid] = next
			}
			if changed {
				placementChanged = true
			}
		}
	}

	switch {
	case placementChanged:
		p.lastPlacementChangeTime = now
	case prev != nil:
		p.lastPlacementChangeTime = prev.lastPlacementChangeTime
	default:
		p.lastPlacementChangeTime = now
	}
}

func prevOpacity(prev *Placement, cid uint64) (opacity.JointState, bool) {
	if prev == nil {
		return opacity.JointState{}, false
	}
	s, ok := prev.opacities[cid]
	return s, ok
}
