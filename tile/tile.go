// Package tile defines the external-collaborator data this module
// consumes: tiles, buckets, symbol instances and layer layout options.
// The tiled data source, tile loader, pyramid manager, and style
// expression evaluation that would normally populate these types are
// out of scope; callers construct them directly.
package tile

import "symbolplace.dev/geom"

// ID identifies a tile in the pyramid: its zoom/x/y and the zoom it
// was actually rendered at when overscaled past the source's max
// zoom.
type ID struct {
	Z, X, Y     int
	OverscaledZ int
}

// FeatureIndex is the handle a Tile hands to RetainedQueryData so a
// later hit-test can look up the source feature. Its internals (the
// vector-tile feature cache) are out of scope; only the handle
// identity matters here.
type FeatureIndex struct {
	SourceLayerIndex int
}

// Tile is one pyramid tile's placement-relevant state.
type Tile struct {
	ID             ID
	Size           float64 // tileSize, in pixels, at native zoom
	holdingForFade bool
	FeatureIndex   *FeatureIndex

	buckets map[string]*Bucket
}

// NewTile constructs an empty Tile.
func NewTile(id ID, size float64, fi *FeatureIndex) *Tile {
	return &Tile{ID: id, Size: size, FeatureIndex: fi, buckets: make(map[string]*Bucket)}
}

// HoldingForFade reports whether the tile is a parent/child standing
// in for a not-yet-loaded tile during a fade transition; its symbols
// are recorded as unplaced without consuming their crossTileIDs
// since the real tile may place them later.
func (t *Tile) HoldingForFade() bool { return t.holdingForFade }

// SetHoldingForFade sets the holding-for-fade flag.
func (t *Tile) SetHoldingForFade(v bool) { t.holdingForFade = v }

// GetBucket returns the bucket for a layer ID, if the tile has one.
func (t *Tile) GetBucket(layerID string) (*Bucket, bool) {
	b, ok := t.buckets[layerID]
	return b, ok
}

// SetBucket installs a layer's bucket.
func (t *Tile) SetBucket(layerID string, b *Bucket) {
	t.buckets[layerID] = b
}

// Alignment selects whether a symbol's pitch/rotation tracks the map
// plane or the viewport plane (a typed enum in place of
// string-valued layout keys).
type Alignment int

// Alignment values.
const (
	AlignMap Alignment = iota
	AlignViewport
)

// LayoutOptions are the already-evaluated layer layout properties the
// placement pass branches on. Style parsing and expression evaluation that would produce
// these values from a stylesheet are out of scope.
type LayoutOptions struct {
	TextOptional        bool
	IconOptional         bool
	TextAllowOverlap     bool
	IconAllowOverlap     bool
	TextIgnorePlacement  bool
	IconIgnorePlacement  bool

	TextPitchAlignment    Alignment
	TextRotationAlignment Alignment
	IconPitchAlignment    Alignment
	IconRotationAlignment Alignment

	// DynamicTextAnchor is the layer's configured anchor search list;
	// nil/empty means dynamic-text-anchor is unset.
	DynamicTextAnchor []geom.AnchorSpec
	// DynamicTextOffset is the radial offset, in ems, applied via
	// geom.DynamicOffset for each candidate anchor.
	DynamicTextOffset float32
	// LayoutTextSize is the evaluated text size, in pixels, at the
	// bucket's zoom (the output of symbolsize.EvaluateSizeForZoom).
	LayoutTextSize float32
}

// Layer is a symbol layer: identity, owning source, and layout.
type Layer struct {
	ID       string
	SourceID string
	Layout   LayoutOptions
}
