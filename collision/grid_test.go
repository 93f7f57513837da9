package collision

import (
	"testing"

	"symbolplace.dev/f32"
)

func newIndex() *GridIndex {
	return &GridIndex{
		Viewport: f32.Rectangle{Min: f32.Point{}, Max: f32.Point{X: 100, Y: 100}},
		Padding:  20,
	}
}

func TestPlaceCollisionBoxAcceptsFirst(t *testing.T) {
	idx := newIndex()
	box := f32.Rectangle{Min: f32.Point{X: 10, Y: 10}, Max: f32.Point{X: 20, Y: 20}}
	res := idx.PlaceCollisionBox(box, false, nil)
	if !res.Placed {
		t.Fatal("first box into an empty index should be accepted")
	}
}

func TestPlaceCollisionBoxRejectsOverlap(t *testing.T) {
	idx := newIndex()
	a := f32.Rectangle{Min: f32.Point{X: 10, Y: 10}, Max: f32.Point{X: 30, Y: 30}}
	idx.InsertCollisionBox(a, Key{BucketInstance: 1, CollisionGroup: 1})

	overlapping := f32.Rectangle{Min: f32.Point{X: 20, Y: 20}, Max: f32.Point{X: 40, Y: 40}}
	res := idx.PlaceCollisionBox(overlapping, false, nil)
	if res.Placed {
		t.Fatal("overlapping box should be rejected")
	}
}

func TestPlaceCollisionBoxGroupPredicateFilters(t *testing.T) {
	idx := newIndex()
	a := f32.Rectangle{Min: f32.Point{X: 10, Y: 10}, Max: f32.Point{X: 30, Y: 30}}
	idx.InsertCollisionBox(a, Key{BucketInstance: 1, CollisionGroup: 1})

	overlapping := f32.Rectangle{Min: f32.Point{X: 20, Y: 20}, Max: f32.Point{X: 40, Y: 40}}
	onlyGroup2 := func(g uint32) bool { return g == 2 }
	res := idx.PlaceCollisionBox(overlapping, false, onlyGroup2)
	if !res.Placed {
		t.Fatal("a predicate excluding the obstruction's group should let the box through")
	}
}

func TestPlaceCollisionBoxAllowOverlap(t *testing.T) {
	idx := newIndex()
	a := f32.Rectangle{Min: f32.Point{X: 10, Y: 10}, Max: f32.Point{X: 30, Y: 30}}
	idx.InsertCollisionBox(a, Key{BucketInstance: 1, CollisionGroup: 1})

	overlapping := f32.Rectangle{Min: f32.Point{X: 20, Y: 20}, Max: f32.Point{X: 40, Y: 40}}
	res := idx.PlaceCollisionBox(overlapping, true, nil)
	if !res.Placed {
		t.Fatal("allowOverlap should always accept")
	}
}

func TestOffscreenOutsidePadding(t *testing.T) {
	idx := newIndex()
	box := f32.Rectangle{Min: f32.Point{X: 1000, Y: 1000}, Max: f32.Point{X: 1010, Y: 1010}}
	res := idx.PlaceCollisionBox(box, false, nil)
	if res.Placed {
		t.Fatal("box entirely outside the padded viewport should not be placed")
	}
	if !res.Offscreen {
		t.Fatal("box entirely outside the padded viewport should be reported offscreen")
	}
}

func TestOffscreenWithinPadding(t *testing.T) {
	idx := newIndex()
	// Outside the 100x100 viewport, but within the 20px padding band.
	box := f32.Rectangle{Min: f32.Point{X: 105, Y: 10}, Max: f32.Point{X: 115, Y: 20}}
	res := idx.PlaceCollisionBox(box, false, nil)
	if !res.Placed {
		t.Fatal("box within the padding band should still be placeable")
	}
	if !res.Offscreen {
		t.Fatal("box outside the viewport (even within padding) should be reported offscreen")
	}
}

func TestIgnorePlacementEntryDoesNotObstruct(t *testing.T) {
	idx := newIndex()
	a := f32.Rectangle{Min: f32.Point{X: 10, Y: 10}, Max: f32.Point{X: 30, Y: 30}}
	idx.InsertCollisionBox(a, Key{BucketInstance: 1, CollisionGroup: 1, IgnorePlacement: true})

	overlapping := f32.Rectangle{Min: f32.Point{X: 20, Y: 20}, Max: f32.Point{X: 40, Y: 40}}
	res := idx.PlaceCollisionBox(overlapping, false, nil)
	if !res.Placed {
		t.Fatal("an ignore-placement entry must not block future queries")
	}
}

func TestPlaceCollisionCirclesViability(t *testing.T) {
	idx := newIndex()
	a := Circle{Center: f32.Point{X: 50, Y: 50}, Radius: 5, Viable: true}
	idx.InsertCollisionCircles([]Circle{a}, Key{BucketInstance: 1})

	overlapping := []Circle{{Center: f32.Point{X: 52, Y: 50}, Radius: 5, Viable: false}}
	res := idx.PlaceCollisionCircles(overlapping, false, nil)
	if !res.Placed {
		t.Fatal("a non-viable circle should never be blocked")
	}
}
