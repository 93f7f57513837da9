// Package placement implements the per-frame symbol placement pass:
// the Placement aggregate that queries the collision index for every
// tile/layer pair, commits decisions into animated opacity state, and
// writes the result into bucket vertex arrays for upload.
package placement

import (
	"github.com/sirupsen/logrus"

	"symbolplace.dev/collision"
	"symbolplace.dev/collisiongroup"
	"symbolplace.dev/f32"
	"symbolplace.dev/opacity"
	"symbolplace.dev/tile"
)

// RetainedQueryData pins the feature-index metadata needed to answer
// post-render hit queries for a bucket placed by this Placement. It
// lives as long as the owning Placement.
type RetainedQueryData struct {
	BucketInstanceID uint32
	FeatureIndex     *tile.FeatureIndex
	SourceLayerIndex int
	TileID           tile.ID
	// FeatureSortOrder is the symbol-instance index order produced by
	// the most recent updateBucketOpacities pass, sorted by current
	// view angle.
	FeatureSortOrder []int
}

// justifications, in iteration order, used by hideUnplacedJustifications.
var allJustifications = [tile.NumJustifications]tile.Justification{tile.JustifyLeft, tile.JustifyCenter, tile.JustifyRight}

// Placement is one frame's placement pass: a cloned transform, a
// fresh collision index, and the crossTileID-keyed fade/placement
// state carried across frames.
type Placement struct {
	transform             tile.Transform
	collisionIndex        collision.Index
	fadeDuration          float64
	crossSourceCollisions bool

	groups *collisiongroup.Groups

	placements     map[uint64]opacity.Placement
	opacities      map[uint64]opacity.JointState
	dynamicOffsets map[uint64][tile.NumJustifications]f32.Point

	commitTime              float64
	lastPlacementChangeTime float64
	stale                   bool

	retainedQueryData map[uint32]*RetainedQueryData

	warnedAutoAnchor bool
	log              *logrus.Entry
}

// New constructs a Placement bound to a snapshot of transform and a
// freshly created collision index owned exclusively by this pass.
func New(transform tile.Transform, index collision.Index, fadeDuration float64, crossSourceCollisions bool) *Placement {
	return &Placement{
		transform:             transform.Clone(),
		collisionIndex:        index,
		fadeDuration:          fadeDuration,
		crossSourceCollisions: crossSourceCollisions,
		groups:                collisiongroup.NewGroups(crossSourceCollisions),
		placements:            make(map[uint64]opacity.Placement),
		dynamicOffsets:        make(map[uint64][tile.NumJustifications]f32.Point),
		retainedQueryData:     make(map[uint32]*RetainedQueryData),
		log:                   logrus.WithField("component", "placement"),
	}
}

// CollisionGroup returns the collision group assigned to sourceID for
// this pass.
func (p *Placement) CollisionGroup(sourceID string) collisiongroup.Group {
	return p.groups.Get(sourceID)
}

// RetainedQueryDataFor returns the retained hit-query metadata for a
// bucket instance placed by this pass.
func (p *Placement) RetainedQueryDataFor(bucketInstanceID uint32) (*RetainedQueryData, bool) {
	d, ok := p.retainedQueryData[bucketInstanceID]
	return d, ok
}

// SetStale marks the pass as advisory-stale: the host should schedule
// a new pass sooner. The engine never self-invalidates.
func (p *Placement) SetStale() { p.stale = true }

// Stale reports the advisory flag set by SetStale.
func (p *Placement) Stale() bool { return p.stale }

// SymbolFadeChange returns how far, in [0,1], the current fade
// transition has progressed as of now.
func (p *Placement) SymbolFadeChange(now float64) float64 {
	if p.fadeDuration <= 0 {
		return 1
	}
	v := (now - p.lastPlacementChangeTime) / p.fadeDuration
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// HasTransitions reports whether any symbol may still be mid-fade as
// of now.
func (p *Placement) HasTransitions(now float64) bool {
	return p.fadeDuration > 0 && now-p.lastPlacementChangeTime < p.fadeDuration
}

// StillRecent reports whether this pass committed recently enough
// (within one fade duration) that the host can reuse it without
// starting a new one.
func (p *Placement) StillRecent(now float64) bool {
	return p.fadeDuration > 0 && now-p.commitTime < p.fadeDuration
}
