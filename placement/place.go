package placement

import (
	"symbolplace.dev/collision"
	"symbolplace.dev/collisiongroup"
	"symbolplace.dev/f32"
	"symbolplace.dev/geom"
	"symbolplace.dev/opacity"
	"symbolplace.dev/symbolsize"
	"symbolplace.dev/tile"
)

// PlaceLayerTile runs the placement pass for one (symbol layer,
// visible tile) pair. seenCrossTileIDs is shared across
// every call made for this Placement's current frame.
func (p *Placement) PlaceLayerTile(layer *tile.Layer, t *tile.Tile, seenCrossTileIDs map[uint64]bool) {
	bucket, ok := t.GetBucket(layer.ID)
	if !ok || bucket.PrimaryLayerID != layer.ID {
		return
	}

	tilePixelRatio := symbolsize.TilePixelRatio(t.Size)

	if bucket.BucketInstanceID == 0 {
		panic("symbolplace: zero bucketInstanceId")
	}
	p.retainedQueryData[bucket.BucketInstanceID] = &RetainedQueryData{
		BucketInstanceID: bucket.BucketInstanceID,
		FeatureIndex:     t.FeatureIndex,
		TileID:           t.ID,
	}

	p.placeLayerBucket(layer, bucket, t, tilePixelRatio, seenCrossTileIDs)
}

func (p *Placement) placeLayerBucket(layer *tile.Layer, bucket *tile.Bucket, t *tile.Tile, tilePixelRatio float64, seen map[uint64]bool) {
	group := p.CollisionGroup(bucket.SourceID)

	for _, inst := range bucket.SymbolInstances {
		if seen[inst.CrossTileID] {
			continue
		}

		if t.HoldingForFade() {
			// A parent/child tile may still place the same logical
			// symbol later, so the crossTileID is left unseen.
			p.placements[inst.CrossTileID] = opacity.Placement{}
			continue
		}

		placeText, placeIcon, offscreen := p.placeSymbolInstance(layer, bucket, inst, group, tilePixelRatio)

		hasIconData := inst.HasIconBox || inst.NumIconVertices > 0
		hasTextData := inst.HasTextBox || len(inst.TextCircles) > 0 || inst.HasGlyphVertices()

		alwaysShowText := layer.Layout.TextAllowOverlap && (layer.Layout.IconAllowOverlap || !hasIconData || layer.Layout.IconOptional)
		alwaysShowIcon := layer.Layout.IconAllowOverlap && (layer.Layout.TextAllowOverlap || !hasTextData || layer.Layout.TextOptional)

		if inst.CrossTileID == 0 {
			panic("symbolplace: zero crossTileID")
		}
		p.placements[inst.CrossTileID] = opacity.Placement{
			Text:     placeText || alwaysShowText,
			Icon:     placeIcon || alwaysShowIcon,
			SkipFade: offscreen || bucket.JustReloaded,
		}
		seen[inst.CrossTileID] = true
	}

	bucket.JustReloaded = false
}

// placeSymbolInstance implements the text/icon placement branches and
// the text/icon pairing policy.
func (p *Placement) placeSymbolInstance(layer *tile.Layer, bucket *tile.Bucket, inst *tile.SymbolInstance, group collisiongroup.Group, tilePixelRatio float64) (placeText, placeIcon, offscreen bool) {
	offscreen = true // AND-identity: only geometry that is actually queried narrows this.
	textAllowOverlap := layer.Layout.TextAllowOverlap
	iconAllowOverlap := layer.Layout.IconAllowOverlap

	switch {
	case inst.HasTextBox && len(layer.Layout.DynamicTextAnchor) == 0:
		res := p.collisionIndex.PlaceCollisionBox(inst.TextBox, textAllowOverlap, group.Predicate)
		placeText = res.Placed
		offscreen = offscreen && res.Offscreen
		if placeText {
			p.insertBox(inst.TextBox, bucket.BucketInstanceID, inst.FeatureIndex, group, layer.Layout.TextIgnorePlacement)
		}
	case len(layer.Layout.DynamicTextAnchor) > 0:
		var dynOffscreen bool
		placeText, dynOffscreen = p.placeDynamicText(layer, bucket, inst, group, tilePixelRatio)
		offscreen = offscreen && dynOffscreen
	}

	if len(inst.TextCircles) > 0 {
		res := p.collisionIndex.PlaceCollisionCircles(inst.TextCircles, textAllowOverlap, group.Predicate)
		if res.Placed {
			p.insertCircles(inst.TextCircles, bucket.BucketInstanceID, inst.FeatureIndex, group, layer.Layout.TextIgnorePlacement)
		}
		// Known quirk: text-allow-overlap
		// forces placeText true even when zero circles were placed.
		// Preserved as-is.
		placeText = res.Placed || textAllowOverlap
		offscreen = offscreen && res.Offscreen
	}

	if inst.HasIconBox {
		res := p.collisionIndex.PlaceCollisionBox(inst.IconBox, iconAllowOverlap, group.Predicate)
		placeIcon = res.Placed
		offscreen = offscreen && res.Offscreen
		if placeIcon {
			p.insertBox(inst.IconBox, bucket.BucketInstanceID, inst.FeatureIndex, group, layer.Layout.IconIgnorePlacement)
		}
	}

	iconWithoutText := layer.Layout.TextOptional || !inst.HasGlyphVertices()
	textWithoutIcon := layer.Layout.IconOptional || inst.NumIconVertices == 0
	switch {
	case !iconWithoutText && !textWithoutIcon:
		both := placeText && placeIcon
		placeText, placeIcon = both, both
	case iconWithoutText && !textWithoutIcon:
		placeText = placeIcon && placeText
	case textWithoutIcon && !iconWithoutText:
		placeIcon = placeIcon && placeText
	}

	return
}

// placeDynamicText implements the dynamic-text-anchor retry loop.
func (p *Placement) placeDynamicText(layer *tile.Layer, bucket *tile.Bucket, inst *tile.SymbolInstance, group collisiongroup.Group, tilePixelRatio float64) (placed, offscreen bool) {
	hasIcon := inst.HasIconBox
	isAuto := len(layer.Layout.DynamicTextAnchor) > 0 && layer.Layout.DynamicTextAnchor[0].Auto
	anchors := geom.ResolveAnchors(layer.Layout.DynamicTextAnchor, p.warnAutoAnchorOnce)

	offscreen = true
	for _, a := range anchors {
		// A center anchor collocated with an icon is skipped when the
		// configured list starts with "auto" (this also skips a center
		// entry listed explicitly after it); in a list that does not
		// start with "auto", a configured center anchor is tried.
		if a == geom.Center && hasIcon && isAuto {
			continue
		}
		row := justificationIndex(geom.AnchorJustification(a))
		ps := &inst.PlacedText[row]
		if !ps.Valid {
			continue
		}

		hAlign, vAlign := geom.AnchorAlignment(a)
		width, height := inst.TextBox.Dx(), inst.TextBox.Dy()
		shiftX := -float32(hAlign) * width
		shiftY := -float32(vAlign) * height

		offsetEm := geom.DynamicOffset(a, layer.Layout.DynamicTextOffset)
		scale := inst.TextBoxScale
		shifted := geom.ShiftCollisionBox(inst.TextBox, scale, f32.Point{X: shiftX, Y: shiftY}, offsetEm)

		res := p.collisionIndex.PlaceCollisionBox(shifted, false, group.Predicate)
		if res.Placed {
			ps.ShiftX = shiftX/scale + offsetEm.X
			ps.ShiftY = shiftY/scale + offsetEm.Y
			p.insertBox(shifted, bucket.BucketInstanceID, inst.FeatureIndex, group, layer.Layout.TextIgnorePlacement)
			p.hideUnplacedJustifications(inst, row)
			return true, res.Offscreen
		}
	}
	// No reachable justification placed.
	return false, true
}

// hideUnplacedJustifications moves the siblings of the placed
// justification off-screen so the vertex shader culls their quads.
func (p *Placement) hideUnplacedJustifications(inst *tile.SymbolInstance, placed tile.Justification) {
	for _, j := range allJustifications {
		if j == placed {
			continue
		}
		if inst.PlacedText[j].Valid {
			inst.PlacedText[j].ShiftX = tile.OffscreenShift
		}
	}
}

func justificationIndex(j geom.Justification) tile.Justification {
	switch j {
	case geom.JustifyLeft:
		return tile.JustifyLeft
	case geom.JustifyRight:
		return tile.JustifyRight
	default:
		return tile.JustifyCenter
	}
}

func (p *Placement) warnAutoAnchorOnce() {
	if p.warnedAutoAnchor {
		return
	}
	p.warnedAutoAnchor = true
	p.log.Warn("\"auto\" is only valid as the first entry of dynamic-text-anchor; later occurrence ignored")
}

func (p *Placement) insertBox(box f32.Rectangle, bucketInstanceID uint32, featureIndex int, group collisiongroup.Group, ignorePlacement bool) {
	if bucketInstanceID == 0 {
		panic("symbolplace: zero bucketInstanceId inserted into collision index")
	}
	p.collisionIndex.InsertCollisionBox(box, collision.Key{
		IgnorePlacement: ignorePlacement,
		BucketInstance:  bucketInstanceID,
		FeatureIndex:    featureIndex,
		CollisionGroup:  group.ID,
	})
}

func (p *Placement) insertCircles(circles []collision.Circle, bucketInstanceID uint32, featureIndex int, group collisiongroup.Group, ignorePlacement bool) {
	if bucketInstanceID == 0 {
		panic("symbolplace: zero bucketInstanceId inserted into collision index")
	}
	p.collisionIndex.InsertCollisionCircles(circles, collision.Key{
		IgnorePlacement: ignorePlacement,
		BucketInstance:  bucketInstanceID,
		FeatureIndex:    featureIndex,
		CollisionGroup:  group.ID,
	})
}
