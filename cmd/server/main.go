package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/tilearea/pkg/api"
	"github.com/cbodonnell/tilearea/pkg/game"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/pathfinding"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/cbodonnell/tilearea/pkg/tilemap"
	"github.com/cbodonnell/tilearea/pkg/workers"
	"github.com/cbodonnell/tilearea/pkg/world"
)

func main() {
	port := flag.Int("port", 9090, "port for the inspection API")
	logLevel := flag.String("log-level", "info", "Log level")
	levelsDir := flag.String("levels", "./levels", "directory of level files")
	migrations := flag.String("migrations", "", "directory of SQL migrations (defaults to ./migrations/<driver>)")
	tickRate := flag.Int("tick-rate", 60, "game loop ticks per second")
	warpSound := flag.String("warp-sound", "warp.ogg", "sound played in the destination of a warp")
	diagonal := flag.Bool("diagonal", false, "allow diagonal steps when pathfinding")
	watch := flag.Bool("watch", true, "reload level files when they change")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connStr := os.Getenv("TILEAREA_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://tilearea.db"
	}
	migrationsDir := *migrations
	if migrationsDir == "" {
		migrationsDir = "./migrations/sqlite"
		if !strings.HasPrefix(connStr, "sqlite:") {
			migrationsDir = "./migrations/postgres"
		}
	}
	repository, err := repositories.NewRepository(ctx, connStr, migrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	neighborhood := pathfinding.Neighborhood4
	if *diagonal {
		neighborhood = pathfinding.Neighborhood8
	}
	bus := signals.NewBus()
	bus.Subscribe(signals.TextEmitted, func(s signals.Signal) {
		log.Info("[%s] %s: %v", s.Area, s.Sender, s.Payload)
	})
	universe := world.NewUniverse(world.NewUniverseOptions{
		Bus:          bus,
		WarpSound:    *warpSound,
		Neighborhood: neighborhood,
	})

	stateManager := state.NewInMemoryStateManager()
	savePlacementChannelSize := 100
	savePlacementChan := make(chan workers.SavePlacementRequest, savePlacementChannelSize)
	broadcastMessageChannelSize := 100
	broadcastMessageChan := make(chan workers.BroadcastMessage, broadcastMessageChannelSize)

	var reloadChan <-chan string
	if *watch {
		watcher, err := tilemap.NewWatcher(*levelsDir)
		if err != nil {
			panic(fmt.Sprintf("Failed to watch levels: %v", err))
		}
		defer watcher.Close()
		reloadChan = watcher.Events
		go func() {
			for err := range watcher.Errors {
				log.Error("Level watcher error: %v", err)
			}
		}()
	}

	gameLoopInterval := time.Second / time.Duration(*tickRate)
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Universe:             universe,
		StateManager:         stateManager,
		ReloadChan:           reloadChan,
		SavePlacementChan:    savePlacementChan,
		BroadcastMessageChan: broadcastMessageChan,
		GameLoopInterval:     gameLoopInterval,
	})

	if err := universe.LoadDir(*levelsDir); err != nil {
		panic(fmt.Sprintf("Failed to load levels: %v", err))
	}
	log.Info("Loaded %d areas from %s", len(universe.Areas()), *levelsDir)
	if err := gameManager.RestorePlacements(ctx, repository); err != nil {
		panic(fmt.Sprintf("Failed to restore placements: %v", err))
	}

	saveLoopInterval := 10 * time.Second
	saveAreaStateWorker := workers.NewSaveAreaStateWorker(workers.NewSaveAreaStateWorkerOptions{
		Repository:        repository,
		SavePlacementChan: savePlacementChan,
		StateManager:      stateManager,
		Interval:          saveLoopInterval,
	})
	go saveAreaStateWorker.Start(ctx)

	broadcastWorker := workers.NewBroadcastSnapshotWorker(workers.NewBroadcastSnapshotWorkerOptions{
		BroadcastMessageChan: broadcastMessageChan,
	})
	go broadcastWorker.Start(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:         *port,
		Token:        os.Getenv("TILEAREA_API_TOKEN"),
		StateManager: stateManager,
		Repository:   repository,
		Pathfinder:   gameManager,
		Subscriber:   broadcastWorker,
	}
	tlsCertFile := os.Getenv("TILEAREA_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("TILEAREA_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	log.Info("Starting game manager at %d ticks per second", *tickRate)
	if err := gameManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start game manager: %v", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
