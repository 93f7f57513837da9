package tile

import "symbolplace.dev/f32"
import "symbolplace.dev/collision"

// Justification indexes a SymbolInstance's per-justification placed
// text rows.
type Justification int

// Justification values, in left/center/right row order. This differs
// from geom.Justification's ordering; placement converts between the two
// explicitly.
const (
	JustifyLeft Justification = iota
	JustifyCenter
	JustifyRight
	NumJustifications
)

// PlacedSymbol is one justification's row of glyph geometry for a
// symbol instance: how many glyph quads it contributes and the
// per-justification dynamic shift remembered across frames.
type PlacedSymbol struct {
	// Valid reports whether the bucket shaped text for this
	// justification at all; an instance with a single justification
	// (e.g. unset dynamic-text-anchor) leaves the others invalid.
	Valid bool
	// GlyphVertexCount is the number of vertices (4 per glyph) this
	// justification contributes to the bucket's text vertex arrays.
	GlyphVertexCount int
	ShiftX, ShiftY   float32
	// Hidden is set by shiftPlacedSymbols when it moves every row of a
	// hidden label off-screen; hideUnplacedJustifications only sets
	// ShiftX and leaves Hidden unchanged.
	Hidden bool
}

// OffscreenShift is the sentinel shift value the vertex shader reads
// as "cull this quad".
const OffscreenShift = float32(-1 << 30)

// SymbolInstance is one label/icon candidate within a bucket.
type SymbolInstance struct {
	// CrossTileID stably identifies this logical symbol across tiles
	// and zooms; zero is reserved as "not yet assigned" and must
	// never be inserted into a collision index or retained map.
	CrossTileID uint64
	FeatureIndex int

	HasTextBox bool
	TextBox    f32.Rectangle
	// TextBoxScale is the pixels-per-em conversion for this
	// instance's text size, used to scale dynamic-anchor em offsets.
	TextBoxScale float32

	HasIconBox bool
	IconBox    f32.Rectangle

	TextCircles []collision.Circle

	// PlacedText holds the shaped glyph geometry per justification;
	// an entry with Valid == false has no row to place into.
	PlacedText [NumJustifications]PlacedSymbol
	// NumIconVertices is the icon quad's vertex count (0 if none).
	NumIconVertices int

	// TileAnchor is the instance's anchor point in tile coordinates,
	// used only to derive a deterministic feature sort order.
	TileAnchor f32.Point
}

// HasGlyphVertices reports whether any valid justification row carries
// glyph geometry. There is no separate row for text placed without
// dynamic-text-anchor; such text occupies one of the three rows.
func (s *SymbolInstance) HasGlyphVertices() bool {
	for _, p := range s.PlacedText {
		if p.Valid && p.GlyphVertexCount > 0 {
			return true
		}
	}
	return false
}

// Bucket is a tile's per-layer container of symbol instances and
// their GPU-bound vertex arrays.
type Bucket struct {
	BucketInstanceID uint32
	SourceID         string
	PrimaryLayerID   string
	// Layout snapshots the owning layer's layout options at bucket
	// build time; updateBucketOpacities reads it without needing the
	// full Layer (the tile/bucket pair is the unit of GPU upload).
	Layout LayoutOptions

	SymbolInstances []*SymbolInstance

	// JustReloaded is set by the tile loader when this bucket's data
	// was just (re)parsed; it forces offscreen=true on the first
	// placement pass that sees it, then is cleared.
	JustReloaded bool

	// HasCollisionData reports whether this bucket carries the debug
	// geometry collision-debug vertices are written for.
	HasCollisionData bool

	// Vertex arrays: only lengths are tracked, matching the length
	// invariant that opacityVertexArray.length*4 ==
	// layoutVertexArray.length. Actual GPU buffer bytes are an
	// out-of-scope concern; only element counts and the
	// packed opacity values are modeled.
	TextLayoutVertexCount int
	TextOpacityVertexArray []uint32

	IconLayoutVertexCount int
	IconOpacityVertexArray []uint32

	// CollisionDebug holds one DebugRow group (4 identical rows) per
	// emitted box/circle, for tests to inspect.
	CollisionDebug []DebugRow

	// NeedsUpload is set whenever updateBucketOpacities rewrites the
	// vertex arrays; a real renderer would read it to schedule a GPU
	// buffer update and then clear it.
	NeedsUpload bool
}

// DebugRow is the (placed, notUsed, shift) tuple emitted four times
// per collision-debug quad.
type DebugRow struct {
	Placed  bool
	NotUsed bool
	ShiftX  float32
	ShiftY  float32
}

// ResetOpacityArrays clears the bucket's vertex-update outputs ahead
// of a fresh updateBucketOpacities pass.
func (b *Bucket) ResetOpacityArrays() {
	b.TextOpacityVertexArray = b.TextOpacityVertexArray[:0]
	b.IconOpacityVertexArray = b.IconOpacityVertexArray[:0]
	b.CollisionDebug = b.CollisionDebug[:0]
}
