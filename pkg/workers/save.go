package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/cbodonnell/tilearea/pkg/state"
)

type SaveAreaStateWorker struct {
	repository        repositories.Repository
	savePlacementChan <-chan SavePlacementRequest
	stateManager      state.StateManager
	interval          time.Duration
}

type NewSaveAreaStateWorkerOptions struct {
	Repository        repositories.Repository
	SavePlacementChan <-chan SavePlacementRequest
	StateManager      state.StateManager
	Interval          time.Duration
}

type SavePlacementRequest struct {
	Placement *models.Placement
}

// NewSaveAreaStateWorker creates a new SaveAreaStateWorker.
// The worker saves single placements sent by the game loop, for example
// after a warp, and periodically saves every published area snapshot.
func NewSaveAreaStateWorker(opts NewSaveAreaStateWorkerOptions) *SaveAreaStateWorker {
	return &SaveAreaStateWorker{
		repository:        opts.Repository,
		savePlacementChan: opts.SavePlacementChan,
		stateManager:      opts.StateManager,
		interval:          opts.Interval,
	}
}

func (w *SaveAreaStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.savePlacementChan:
			w.savePlacement(ctx, saveRequest)
		case t := <-ticker.C:
			w.saveAreaStates(ctx, t)
		}
	}
}

func (w *SaveAreaStateWorker) savePlacement(ctx context.Context, saveRequest SavePlacementRequest) {
	if err := w.repository.SavePlacement(ctx, saveRequest.Placement); err != nil {
		log.Error("Failed to save placement of entity %s: %v", saveRequest.Placement.EntityID, err)
	}
}

func (w *SaveAreaStateWorker) saveAreaStates(ctx context.Context, t time.Time) {
	snapshots, err := w.stateManager.List(ctx)
	if err != nil {
		log.Error("Failed to get current area states: %v", err)
		return
	}
	for _, snapshot := range snapshots {
		snapshot.Timestamp = t.UnixMilli()
		if err := w.repository.SaveAreaSnapshot(ctx, snapshot); err != nil {
			log.Error("Failed to save state of area %s: %v", snapshot.AreaID, err)
		}
	}
}
