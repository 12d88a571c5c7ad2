package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cbodonnell/tilearea/client/viewer"
	"github.com/cbodonnell/tilearea/pkg/game"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	levelsDir := flag.String("levels", "./levels", "directory of level files")
	entityID := flag.String("entity", "hero", "avatar driven by the arrow keys")
	scale := flag.Float64("scale", 2, "screen pixels per world unit")
	phrases := flag.String("phrases", "Hello!,Anyone there?", "comma-separated phrases said with the T key")
	debug := flag.Bool("debug", false, "show entity names and tick rate")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	universe := world.NewUniverse(world.NewUniverseOptions{WarpSound: "warp.ogg"})
	universe.SetAnimatorFactory(game.PatrolAnimators(universe))
	if err := universe.LoadDir(*levelsDir); err != nil {
		panic(fmt.Sprintf("Failed to load levels: %v", err))
	}

	v, err := viewer.NewViewer(viewer.NewViewerOptions{
		Universe: universe,
		EntityID: *entityID,
		Scale:    *scale,
		Phrases:  strings.Split(*phrases, ","),
		Debug:    *debug,
		Width:    screenWidth,
		Height:   screenHeight,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create viewer: %v", err))
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("tilearea")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		log.Error("Viewer stopped: %v", err)
		os.Exit(1)
	}
}
