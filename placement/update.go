package placement

import (
	"math"

	"golang.org/x/exp/slices"

	"symbolplace.dev/f32"
	"symbolplace.dev/opacity"
	"symbolplace.dev/symbolsize"
	"symbolplace.dev/tile"
)

// UpdateLayerOpacities applies this pass's (or a prior pass's, for
// symbols untouched this frame) opacity state to every bucket of
// layer across tiles, ready for GPU upload.
func (p *Placement) UpdateLayerOpacities(layer *tile.Layer, tiles []*tile.Tile) {
	seen := make(map[uint64]bool)
	for _, t := range tiles {
		bucket, ok := t.GetBucket(layer.ID)
		if !ok || bucket.PrimaryLayerID != layer.ID {
			continue
		}
		p.updateBucketOpacities(bucket, seen, t.ID)
	}
}

func (p *Placement) updateBucketOpacities(bucket *tile.Bucket, seen map[uint64]bool, tileID tile.ID) {
	bucket.ResetOpacityArrays()
	bucket.TextLayoutVertexCount = 0
	bucket.IconLayoutVertexCount = 0

	defaultState := opacity.NewJointState(opacity.Placement{
		Text:     bucket.Layout.TextAllowOverlap || bucket.Layout.TextIgnorePlacement,
		Icon:     bucket.Layout.IconAllowOverlap || bucket.Layout.IconIgnorePlacement,
		SkipFade: true,
	})

	zoomScale := symbolsize.ZoomScale(p.transform.Zoom, float64(tileID.OverscaledZ))
	wrote := false

	order := make([]int, 0, len(bucket.SymbolInstances))

	for i, inst := range bucket.SymbolInstances {
		dup := seen[inst.CrossTileID]

		var state opacity.JointState
		if dup {
			state = opacity.JointState{} // sentinel hidden state
		} else if s, ok := p.opacities[inst.CrossTileID]; ok {
			state = s
		} else {
			state = defaultState
		}

		dynamic := len(bucket.Layout.DynamicTextAnchor) > 0
		if !dup && dynamic {
			if _, remembered := p.dynamicOffsets[inst.CrossTileID]; !remembered {
				var offs [tile.NumJustifications]f32.Point
				for j := range inst.PlacedText {
					offs[j] = f32.Point{X: inst.PlacedText[j].ShiftX, Y: inst.PlacedText[j].ShiftY}
				}
				p.dynamicOffsets[inst.CrossTileID] = offs
			}
		}
		seen[inst.CrossTileID] = true

		if inst.HasGlyphVertices() {
			packed := opacity.PackOpacity(state.Text)
			total := 0
			for _, row := range inst.PlacedText {
				if !row.Valid {
					continue
				}
				total += row.GlyphVertexCount
			}
			for g := 0; g < total/4; g++ {
				bucket.TextOpacityVertexArray = append(bucket.TextOpacityVertexArray, packed)
			}
			bucket.TextLayoutVertexCount += total
			wrote = true

			if state.Text.Hidden() {
				shiftPlacedSymbols(inst)
			} else if dynamic {
				if offs, ok := p.dynamicOffsets[inst.CrossTileID]; ok {
					for j := range inst.PlacedText {
						if !inst.PlacedText[j].Valid {
							continue
						}
						inst.PlacedText[j].ShiftX = offs[j].X
						inst.PlacedText[j].ShiftY = offs[j].Y
					}
				}
			}
		}

		if inst.NumIconVertices > 0 {
			packed := opacity.PackOpacity(state.Icon)
			for g := 0; g < inst.NumIconVertices/4; g++ {
				bucket.IconOpacityVertexArray = append(bucket.IconOpacityVertexArray, packed)
			}
			bucket.IconLayoutVertexCount += inst.NumIconVertices
			wrote = true
		}

		if bucket.HasCollisionData {
			p.writeCollisionDebug(bucket, inst, state, dup, zoomScale)
		}

		order = append(order, i)
	}

	slices.SortFunc(order, func(a, b int) bool {
		return featureSortKey(bucket.SymbolInstances[a], p.transform.Angle) < featureSortKey(bucket.SymbolInstances[b], p.transform.Angle)
	})

	if rqd, ok := p.retainedQueryData[bucket.BucketInstanceID]; ok {
		rqd.FeatureSortOrder = order
	}

	bucket.NeedsUpload = wrote || bucket.HasCollisionData
}

// shiftPlacedSymbols moves every valid justification row off-screen.
func shiftPlacedSymbols(inst *tile.SymbolInstance) {
	for j := range inst.PlacedText {
		if !inst.PlacedText[j].Valid {
			continue
		}
		inst.PlacedText[j].ShiftX = tile.OffscreenShift
		inst.PlacedText[j].ShiftY = tile.OffscreenShift
		inst.PlacedText[j].Hidden = true
	}
}

func (p *Placement) writeCollisionDebug(bucket *tile.Bucket, inst *tile.SymbolInstance, state opacity.JointState, dup bool, zoomScale float64) {
	dynamic := len(bucket.Layout.DynamicTextAnchor) > 0

	if inst.HasTextBox {
		var shiftX, shiftY float32
		if dynamic && state.Text.Placed {
			shiftX, shiftY = firstNonSentinelOffset(inst)
			scale := inst.TextBoxScale / float32(zoomScale)
			shiftX *= scale
			shiftY *= scale
		}
		row := tile.DebugRow{Placed: state.Text.Placed, NotUsed: dup, ShiftX: shiftX, ShiftY: shiftY}
		for i := 0; i < 4; i++ {
			bucket.CollisionDebug = append(bucket.CollisionDebug, row)
		}
	}

	if inst.HasIconBox {
		row := tile.DebugRow{Placed: state.Icon.Placed, NotUsed: dup}
		for i := 0; i < 4; i++ {
			bucket.CollisionDebug = append(bucket.CollisionDebug, row)
		}
	}

	for _, c := range inst.TextCircles {
		row := tile.DebugRow{Placed: state.Text.Placed, NotUsed: dup || !c.Viable}
		for i := 0; i < 4; i++ {
			bucket.CollisionDebug = append(bucket.CollisionDebug, row)
		}
	}
}

// firstNonSentinelOffset returns the first left/center/right
// justification shift that was not pushed off-screen.
func firstNonSentinelOffset(inst *tile.SymbolInstance) (x, y float32) {
	for _, j := range allJustifications {
		row := inst.PlacedText[j]
		if row.Valid && row.ShiftX != tile.OffscreenShift {
			return row.ShiftX, row.ShiftY
		}
	}
	return 0, 0
}

func featureSortKey(inst *tile.SymbolInstance, angle float64) float64 {
	dir := f32.Point{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}
	return float64(inst.TileAnchor.X)*float64(dir.X) + float64(inst.TileAnchor.Y)*float64(dir.Y)
}
