// Package demo builds a small synthetic scene (two overlapping labels
// in one tile) and drives it through several frames of the placement
// pipeline, for the cmd/symbolplace harness to exercise end to end.
package demo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"symbolplace.dev/collision"
	"symbolplace.dev/config"
	"symbolplace.dev/f32"
	"symbolplace.dev/placement"
	"symbolplace.dev/tile"
)

// Run constructs a synthetic tile with two overlapping symbol
// instances and advances the placement pipeline for n frames,
// logging one line per symbol instance per frame with the frame number
// and crossTileID. The committed opacity values are not logged.
func Run(cfg config.Config, n int, log *logrus.Logger) error {
	if n <= 0 {
		return fmt.Errorf("demo: frames must be positive, got %d", n)
	}

	layer := &tile.Layer{
		ID:       "place-of-interest-label",
		SourceID: "poi",
		Layout: tile.LayoutOptions{
			LayoutTextSize: 16,
		},
	}

	t := tile.NewTile(tile.ID{Z: 10, X: 163, Y: 395, OverscaledZ: 10}, cfg.TileSize, &tile.FeatureIndex{SourceLayerIndex: 0})

	bucket := &tile.Bucket{
		BucketInstanceID: 1,
		SourceID:         layer.SourceID,
		PrimaryLayerID:   layer.ID,
		Layout:           layer.Layout,
		SymbolInstances: []*tile.SymbolInstance{
			{
				CrossTileID:  1001,
				FeatureIndex: 0,
				HasTextBox:   true,
				TextBox:      f32.Rectangle{Min: f32.Point{X: 100, Y: 100}, Max: f32.Point{X: 180, Y: 116}},
				PlacedText:   [tile.NumJustifications]tile.PlacedSymbol{tile.JustifyCenter: {Valid: true, GlyphVertexCount: 16}},
			},
			{
				CrossTileID:  1002,
				FeatureIndex: 1,
				HasTextBox:   true,
				// Overlaps the first label: loses under greedy,
				// insertion-order placement.
				TextBox:    f32.Rectangle{Min: f32.Point{X: 110, Y: 104}, Max: f32.Point{X: 190, Y: 120}},
				PlacedText: [tile.NumJustifications]tile.PlacedSymbol{tile.JustifyCenter: {Valid: true, GlyphVertexCount: 12}},
			},
		},
	}
	t.SetBucket(layer.ID, bucket)

	transform := tile.Transform{Zoom: 10, Angle: 0}
	tiles := []*tile.Tile{t}

	var prev *placement.Placement
	now := 0.0
	for frame := 0; frame < n; frame++ {
		index := &collision.GridIndex{
			Viewport: f32.Rectangle{Min: f32.Point{}, Max: f32.Point{X: 1024, Y: 768}},
			Padding:  cfg.CollisionPadding,
		}
		pass := placement.New(transform, index, cfg.FadeDurationMS, cfg.CrossSourceCollisions)

		seen := make(map[uint64]bool)
		for _, tl := range tiles {
			pass.PlaceLayerTile(layer, tl, seen)
		}
		pass.Commit(prev, now)
		pass.UpdateLayerOpacities(layer, tiles)

		for _, inst := range bucket.SymbolInstances {
			log.WithFields(logrus.Fields{
				"frame":       frame,
				"crossTileID": inst.CrossTileID,
			}).Info("frame processed")
		}

		prev = pass
		now += 100
	}
	return nil
}
