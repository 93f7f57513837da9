// Command symbolplace drives the placement engine over a small
// synthetic multi-frame scene: it is not a renderer, only a harness
// that exercises PlaceLayerTile, Commit and UpdateLayerOpacities the
// way a real frame loop would, logging each symbol instance's
// crossTileID per frame (the opacity values themselves are not logged).
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"symbolplace.dev/config"
	"symbolplace.dev/demo"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults built in if omitted)")
	frames := flag.Int("frames", 5, "number of synthetic frames to run")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load config")
		}
		cfg = loaded
	}

	if err := demo.Run(cfg, *frames, log); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
