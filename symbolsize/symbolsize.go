// Package symbolsize implements the small scale-conversion helpers
// the placement pass uses to translate between tile units, em units
// and screen pixels. The style-expression evaluation that produces a
// text size for a given zoom/feature is out of scope; this
// package only implements the arithmetic layered on top of its
// result.
package symbolsize

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Extent is the tile coordinate system's unit size.
const Extent = 8192

// ZoomScale returns 2^(viewZoom-tileZoom), the factor that converts a
// length expressed relative to tileZoom into one relative to
// viewZoom.
func ZoomScale(viewZoom, tileZoom float64) float64 {
	return math.Pow(2, viewZoom-tileZoom)
}

// TilePixelRatio returns the ratio between one tile pixel and one CSS
// pixel for a tile rendered at tileSize pixels.
func TilePixelRatio(tileSize float64) float64 {
	return tileSize / Extent
}

// TextBoxScale returns the pixels-per-em conversion factor
// (pixelsPerEm) used to scale an em-denominated dynamic-anchor offset
// into the tile's collision-box coordinate space.
//
// The multiplication is routed through a 26.6 fixed-point
// intermediate so that it is evaluated identically for every symbol
// instance sharing a (tilePixelRatio, layoutTextSize) pair within one
// frame, the same quantization glyph layout itself uses downstream.
func TextBoxScale(tilePixelRatio float64, layoutTextSize float32) float32 {
	px := fixed.Int26_6((tilePixelRatio * float64(layoutTextSize)) * 64)
	return float32(px) / 64
}

// PixelsToTileUnits converts a screen-pixel length into tile units at
// the given tile pixel ratio.
func PixelsToTileUnits(pixels float32, tilePixelRatio float64) float32 {
	if tilePixelRatio == 0 {
		return 0
	}
	return float32(float64(pixels) / tilePixelRatio)
}

// EvaluateSizeForZoom stands in for the style expression evaluator
// resolving a layer's text-size property at a given zoom.
// Interpolation/expression evaluation is out of scope; callers supply
// the already-resolved size.
func EvaluateSizeForZoom(sizeAtZoom float32) float32 { return sizeAtZoom }

// EvaluateSizeForFeature stands in for the per-feature override of a
// data-driven text-size expression; out of scope beyond
// passing the resolved value through.
func EvaluateSizeForFeature(sizeForZoom float32) float32 { return sizeForZoom }
