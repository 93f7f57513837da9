package collision

import "symbolplace.dev/f32"

// GridIndex is a straightforward, correct CollisionIndex: obstruction
// queries scan the entries inserted so far. It additionally tracks a
// viewport rectangle and a padding band around it, used to compute
// the "offscreen" result that lets an off-screen-but-nearby symbol
// skip its fade-in animation (the skip-fade case).
type GridIndex struct {
	Viewport f32.Rectangle
	Padding  float32

	boxes   []boxEntry
	circles []circleEntry
}

type boxEntry struct {
	box f32.Rectangle
	key Key
}

type circleEntry struct {
	c   Circle
	key Key
}

func (g *GridIndex) paddedViewport() f32.Rectangle {
	p := f32.Point{X: g.Padding, Y: g.Padding}
	return f32.Rectangle{Min: g.Viewport.Min.Sub(p), Max: g.Viewport.Max.Add(p)}
}

// PlaceCollisionBox implements Index.
func (g *GridIndex) PlaceCollisionBox(box f32.Rectangle, allowOverlap bool, predicate func(uint32) bool) BoxResult {
	padded := g.paddedViewport()
	if !box.Overlaps(padded) {
		return BoxResult{Box: box, Placed: false, Offscreen: true}
	}
	offscreen := !box.Overlaps(g.Viewport)
	if allowOverlap {
		return BoxResult{Box: box, Placed: true, Offscreen: offscreen}
	}
	for _, e := range g.boxes {
		if predicate != nil && !predicate(e.key.CollisionGroup) {
			continue
		}
		if e.box.Overlaps(box) {
			return BoxResult{Box: box, Placed: false, Offscreen: offscreen}
		}
	}
	return BoxResult{Box: box, Placed: true, Offscreen: offscreen}
}

// PlaceCollisionCircles implements Index.
func (g *GridIndex) PlaceCollisionCircles(circles []Circle, allowOverlap bool, predicate func(uint32) bool) CircleResult {
	padded := g.paddedViewport()
	anyViable := false
	allOutside := true
	allOffscreen := true
	for _, c := range circles {
		if !c.Viable {
			continue
		}
		anyViable = true
		cb := circleBounds(c)
		if cb.Overlaps(padded) {
			allOutside = false
		}
		if cb.Overlaps(g.Viewport) {
			allOffscreen = false
		}
	}
	if anyViable && allOutside {
		return CircleResult{Circles: circles, Placed: false, Offscreen: true}
	}
	if allowOverlap {
		return CircleResult{Circles: circles, Placed: true, Offscreen: allOffscreen}
	}
	for _, c := range circles {
		if !c.Viable {
			continue
		}
		for _, e := range g.circles {
			if !e.c.Viable {
				continue
			}
			if predicate != nil && !predicate(e.key.CollisionGroup) {
				continue
			}
			if circlesOverlap(c, e.c) {
				return CircleResult{Circles: circles, Placed: false, Offscreen: allOffscreen}
			}
		}
	}
	return CircleResult{Circles: circles, Placed: true, Offscreen: allOffscreen}
}

// InsertCollisionBox implements Index. An entry whose key has
// IgnorePlacement set is discarded: GridIndex keeps no record of it.
func (g *GridIndex) InsertCollisionBox(box f32.Rectangle, key Key) {
	if key.IgnorePlacement {
		return
	}
	g.boxes = append(g.boxes, boxEntry{box: box, key: key})
}

// InsertCollisionCircles implements Index. As with InsertCollisionBox,
// circles whose key has IgnorePlacement set are discarded.
func (g *GridIndex) InsertCollisionCircles(circles []Circle, key Key) {
	if key.IgnorePlacement {
		return
	}
	for _, c := range circles {
		g.circles = append(g.circles, circleEntry{c: c, key: key})
	}
}

func circleBounds(c Circle) f32.Rectangle {
	r := f32.Point{X: c.Radius, Y: c.Radius}
	return f32.Rectangle{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

func circlesOverlap(a, b Circle) bool {
	d := a.Center.Sub(b.Center)
	dist2 := d.X*d.X + d.Y*d.Y
	r := a.Radius + b.Radius
	return dist2 < r*r
}
