package game

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/queue"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/cbodonnell/tilearea/pkg/workers"
	"github.com/cbodonnell/tilearea/pkg/world"
)

// Command runs on the game loop between ticks, with exclusive access to the
// universe.
type Command func(u *world.Universe)

type GameManager struct {
	universe             *world.Universe
	stateManager         state.StateManager
	commandQueue         queue.Queue[Command]
	reloadChan           <-chan string
	savePlacementChan    chan<- workers.SavePlacementRequest
	broadcastMessageChan chan<- workers.BroadcastMessage
	gameLoopInterval     time.Duration

	// published are the areas with a snapshot in the state manager.
	published map[string]bool
	// warped collects the entities warped during the current tick.
	warped []warp
}

type warp struct {
	entityID string
	toArea   string
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Universe     *world.Universe
	StateManager state.StateManager
	// ReloadChan receives paths of level files that changed on disk.
	ReloadChan           <-chan string
	SavePlacementChan    chan<- workers.SavePlacementRequest
	BroadcastMessageChan chan<- workers.BroadcastMessage
	GameLoopInterval     time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	gm := &GameManager{
		universe:             opts.Universe,
		stateManager:         opts.StateManager,
		commandQueue:         queue.NewInMemoryQueue[Command](),
		reloadChan:           opts.ReloadChan,
		savePlacementChan:    opts.SavePlacementChan,
		broadcastMessageChan: opts.BroadcastMessageChan,
		gameLoopInterval:     opts.GameLoopInterval,
		published:            make(map[string]bool),
	}
	gm.universe.Bus().Subscribe(signals.BodyWarped, gm.onBodyWarped)
	gm.universe.SetAnimatorFactory(PatrolAnimators(gm.universe))
	return gm
}

// Start runs the game loop until ctx is done.
func (gm *GameManager) Start(ctx context.Context) error {
	if gm.gameLoopInterval <= 0 {
		return fmt.Errorf("game loop interval must be positive, got %s", gm.gameLoopInterval)
	}
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-gm.reloadChan:
			if !ok {
				gm.reloadChan = nil
				continue
			}
			gm.reload(path)
		case t := <-ticker.C:
			if err := gm.gameTick(ctx, t); err != nil {
				log.Error("Failed to run game tick: %v", err)
			}
		}
	}
}

// RestorePlacements puts every loaded entity back where it was last saved.
// It must be called before Start.
func (gm *GameManager) RestorePlacements(ctx context.Context, repository repositories.Repository) error {
	restored := 0
	for _, a := range gm.universe.Areas() {
		placements, err := repository.ListPlacements(ctx, a.ID())
		if err != nil {
			return fmt.Errorf("failed to list placements of area %s: %v", a.ID(), err)
		}
		for _, p := range placements {
			current, ok := gm.universe.Locate(p.EntityID)
			if !ok {
				log.Debug("Skipping placement of unknown entity %s", p.EntityID)
				continue
			}
			e, err := current.Entity(p.EntityID)
			if err != nil {
				return err
			}
			if err := gm.universe.Place(e, a.ID(), p.Position); err != nil {
				return fmt.Errorf("failed to restore entity %s: %v", p.EntityID, err)
			}
			if err := a.SetOrientation(p.EntityID, p.Orientation); err != nil {
				return fmt.Errorf("failed to restore orientation of entity %s: %v", p.EntityID, err)
			}
			restored++
		}
	}
	log.Info("Restored %d placements", restored)
	return nil
}

// Enqueue schedules a command for the next tick.
func (gm *GameManager) Enqueue(cmd Command) {
	gm.commandQueue.Enqueue(cmd)
}

// Pathfind searches a path in an area on the game loop and waits for the
// answer.
func (gm *GameManager) Pathfind(ctx context.Context, areaID string, from, to kinematic.Vector) ([]projection.TileCoord, error) {
	type result struct {
		path []projection.TileCoord
		err  error
	}
	done := make(chan result, 1)
	gm.Enqueue(func(u *world.Universe) {
		a, ok := u.Area(areaID)
		if !ok {
			done <- result{err: fmt.Errorf("%w: %s", area.ErrAreaNotFound, areaID)}
			return
		}
		done <- result{path: a.Pathfind(from, to)}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.path, r.err
	}
}

// ApplyForce pushes an entity on the next tick.
func (gm *GameManager) ApplyForce(entityID string, force kinematic.Vector) {
	gm.Enqueue(func(u *world.Universe) {
		a, ok := u.Locate(entityID)
		if !ok {
			log.Warn("Cannot apply force to entity %s: not in any area", entityID)
			return
		}
		if err := a.ApplyForce(entityID, force); err != nil {
			log.Error("Failed to apply force to entity %s: %v", entityID, err)
		}
	})
}

func (gm *GameManager) reload(path string) {
	logger := log.Default().With("path", path)
	if err := gm.universe.Reload(path); err != nil {
		logger.Error("Failed to reload level: %v", err)
		return
	}
	logger.Info("Reloaded level")
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time) error {
	gm.processCommands()

	err := gm.universe.Update(gm.gameLoopInterval.Seconds())
	if err != nil {
		// a failed warp only affects one body; keep the loop running
		log.Warn("Tick finished with errors: %v", err)
	}

	gm.saveWarped(t)
	return gm.publish(ctx, t)
}

func (gm *GameManager) processCommands() {
	for _, cmd := range gm.commandQueue.Drain() {
		cmd(gm.universe)
	}
}

func (gm *GameManager) onBodyWarped(s signals.Signal) {
	payload, ok := s.Payload.(signals.WarpPayload)
	if !ok {
		log.Error("Unexpected payload for %s: %T", s.Type, s.Payload)
		return
	}
	gm.warped = append(gm.warped, warp{entityID: s.Sender, toArea: payload.ToArea})
}

// saveWarped asks for the placement of every warped entity to be saved, so
// a restart puts it in the right area.
func (gm *GameManager) saveWarped(t time.Time) {
	defer func() {
		gm.warped = gm.warped[:0]
	}()
	if gm.savePlacementChan == nil {
		return
	}
	for _, w := range gm.warped {
		entityID := w.entityID
		a, ok := gm.universe.Area(w.toArea)
		if !ok {
			continue
		}
		body, err := a.Body(entityID)
		if err != nil {
			continue
		}
		req := workers.SavePlacementRequest{Placement: &models.Placement{
			EntityID:    entityID,
			AreaID:      a.ID(),
			Timestamp:   t.UnixMilli(),
			Position:    body.BBox.Origin(),
			Orientation: body.Orientation,
		}}
		select {
		case gm.savePlacementChan <- req:
		default:
			log.Warn("Save queue is full, dropping placement of entity %s", entityID)
		}
	}
}

// publish stores the snapshot of every area and hands it to the broadcaster.
func (gm *GameManager) publish(ctx context.Context, t time.Time) error {
	current := make(map[string]bool)
	for _, a := range gm.universe.Areas() {
		snapshot := a.Snapshot()
		snapshot.Timestamp = t.UnixMilli()
		if err := gm.stateManager.Set(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to set state of area %s: %v", a.ID(), err)
		}
		current[a.ID()] = true
		gm.broadcast(workers.BroadcastMessage{Type: messages.MessageTypeServerAreaSnapshot, AreaID: a.ID(), Snapshot: snapshot})
	}

	for id := range gm.published {
		if current[id] {
			continue
		}
		if err := gm.stateManager.Delete(ctx, id); err != nil && !state.IsNotFound(err) {
			log.Error("Failed to delete state of area %s: %v", id, err)
		}
		gm.broadcast(workers.BroadcastMessage{Type: messages.MessageTypeServerAreaRemoved, AreaID: id})
	}
	gm.published = current
	return nil
}

func (gm *GameManager) broadcast(msg workers.BroadcastMessage) {
	if gm.broadcastMessageChan == nil {
		return
	}
	select {
	case gm.broadcastMessageChan <- msg:
	default:
		log.Trace("Broadcast queue is full, dropping %s for area %s", msg.Type, msg.AreaID)
	}
}
