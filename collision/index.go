// Package collision implements the screen-space CollisionIndex
// consumed by the placement pass: a spatial acceptor that rejects
// candidate boxes or circles overlapping already-placed entries,
// subject to a per-entry collision-group predicate.
//
// CollisionIndex internals are orthogonal to the placement engine,
// which only needs something that answers these calls, so GridIndex
// (grid.go) is a correct, simple linear scan over the inserted entries
// rather than a production spatial tree, sufficient to exercise and test the
// placement pass end to end.
package collision

import "symbolplace.dev/f32"

// Key tags an inserted entry with the bookkeeping the placement pass
// needs when a later query decides whether the entry is an
// obstruction, and when a hit-test later needs to trace back to its
// owning feature.
type Key struct {
	IgnorePlacement bool
	BucketInstance  uint32
	FeatureIndex    int
	CollisionGroup  uint32
}

// BoxResult is the outcome of a collision-box query.
type BoxResult struct {
	Box       f32.Rectangle
	Placed    bool
	Offscreen bool
}

// Circle is one segment of an along-line label's collision geometry.
type Circle struct {
	Center f32.Point
	Radius float32
	// Viable marks whether this circle is a usable placement (the
	// upstream collision-circle array's fifth, "used", component);
	// a non-viable circle never blocks or is blocked by anything and
	// is always reported "not used" in collision-debug output.
	Viable bool
}

// CircleResult is the outcome of a collision-circle query.
type CircleResult struct {
	Circles   []Circle
	Placed    bool
	Offscreen bool
}

// Index is the screen-space collision acceptor consumed by the
// placement pass.
type Index interface {
	// PlaceCollisionBox tests box against the viewport and all
	// previously inserted, non-filtered entries. It does not insert
	// box; the caller inserts it explicitly on acceptance.
	PlaceCollisionBox(box f32.Rectangle, allowOverlap bool, predicate func(uint32) bool) BoxResult

	// PlaceCollisionCircles is the along-line analogue of
	// PlaceCollisionBox.
	PlaceCollisionCircles(circles []Circle, allowOverlap bool, predicate func(uint32) bool) CircleResult

	// InsertCollisionBox records box as an obstruction (unless
	// key.IgnorePlacement) and retains key for debug/hit-query.
	InsertCollisionBox(box f32.Rectangle, key Key)

	// InsertCollisionCircles is the along-line analogue of
	// InsertCollisionBox.
	InsertCollisionCircles(circles []Circle, key Key)
}
