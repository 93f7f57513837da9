// Package collisiongroup assigns numeric group IDs to symbol sources
// and supplies the acceptance predicate the CollisionIndex uses to
// decide which previously-inserted entries count as obstructions for
// a query from a given source.
package collisiongroup

// Group is a source's collision group: an ID and the predicate that
// decides whether an entry tagged with some other group ID obstructs
// a query from this one.
type Group struct {
	ID        uint32
	Predicate func(entryGroupID uint32) bool
}

// Groups memoizes the Group assigned to each source seen by one
// Placement pass. Its zero value is ready to use.
type Groups struct {
	crossSource bool
	maxGroupID  uint32
	bySource    map[string]uint32
}

// NewGroups constructs a Groups. When crossSource is true, every
// source shares group 0 with a predicate that accepts all entries
// (cross-source collisions enabled); otherwise each distinct source
// is assigned its own monotonically increasing group ID and only
// collides with entries sharing it.
func NewGroups(crossSource bool) *Groups {
	return &Groups{crossSource: crossSource}
}

// Get returns the Group for sourceID, assigning a new one on first
// use. The result is deterministic for the lifetime of one Groups
// value: repeated calls with the same sourceID return equal Groups.
func (g *Groups) Get(sourceID string) Group {
	if g.crossSource {
		return Group{ID: 0, Predicate: nil}
	}
	if g.bySource == nil {
		g.bySource = make(map[string]uint32)
	}
	id, ok := g.bySource[sourceID]
	if !ok {
		g.maxGroupID++
		id = g.maxGroupID
		g.bySource[sourceID] = id
	}
	return Group{ID: id, Predicate: func(entryGroupID uint32) bool { return entryGroupID == id }}
}
