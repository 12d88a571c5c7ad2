package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	mocks "github.com/cbodonnell/tilearea/mocks/github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveAreaStateWorker_savesOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stateManager := state.NewInMemoryStateManager()
	require.NoError(t, stateManager.Set(ctx, &messages.AreaSnapshot{
		AreaID: "room",
		Bodies: []*messages.BodySnapshot{{EntityID: "hero"}},
	}))

	saved := make(chan *messages.AreaSnapshot, 1)
	repository := mocks.NewRepository(t)
	repository.EXPECT().SaveAreaSnapshot(mock.Anything, mock.Anything).
		Run(func(_ context.Context, snapshot *messages.AreaSnapshot) {
			select {
			case saved <- snapshot:
			default:
			}
		}).
		Return(nil)

	worker := NewSaveAreaStateWorker(NewSaveAreaStateWorkerOptions{
		Repository:   repository,
		StateManager: stateManager,
		Interval:     10 * time.Millisecond,
	})
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	select {
	case snapshot := <-saved:
		assert.Equal(t, "room", snapshot.AreaID)
		assert.NotZero(t, snapshot.Timestamp)
	case <-time.After(2 * time.Second):
		t.Fatal("area state was not saved")
	}
	cancel()
	<-done
}

func TestSaveAreaStateWorker_savesPlacementRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	placement := &models.Placement{EntityID: "hero", AreaID: "hall"}
	requests := make(chan SavePlacementRequest, 2)
	saved := make(chan struct{}, 2)

	repository := mocks.NewRepository(t)
	repository.EXPECT().SavePlacement(mock.Anything, placement).
		Run(func(context.Context, *models.Placement) { saved <- struct{}{} }).
		Return(errors.New("database is gone")).Once()
	repository.EXPECT().SavePlacement(mock.Anything, placement).
		Run(func(context.Context, *models.Placement) { saved <- struct{}{} }).
		Return(nil).Once()

	worker := NewSaveAreaStateWorker(NewSaveAreaStateWorkerOptions{
		Repository:        repository,
		SavePlacementChan: requests,
		StateManager:      state.NewInMemoryStateManager(),
		Interval:          time.Hour,
	})
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	requests <- SavePlacementRequest{Placement: placement}
	requests <- SavePlacementRequest{Placement: placement}
	for i := 0; i < 2; i++ {
		select {
		case <-saved:
		case <-time.After(2 * time.Second):
			t.Fatal("placement was not saved")
		}
	}
	cancel()
	<-done
}
