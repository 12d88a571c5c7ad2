package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mocks "github.com/cbodonnell/tilearea/mocks/github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePathfinder struct {
	from, to kinematic.Vector
}

func (f *fakePathfinder) Pathfind(ctx context.Context, areaID string, from, to kinematic.Vector) ([]projection.TileCoord, error) {
	if areaID != "room" {
		return nil, fmt.Errorf("%w: %s", area.ErrAreaNotFound, areaID)
	}
	f.from, f.to = from, to
	return []projection.TileCoord{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil
}

type fakeSubscriber struct {
	ch           chan []byte
	unsubscribed chan struct{}
}

func (f *fakeSubscriber) Subscribe(areaID string) (<-chan []byte, func()) {
	return f.ch, func() { close(f.unsubscribed) }
}

func newTestServer(t *testing.T, opts NewAPIServerOptions) *httptest.Server {
	t.Helper()
	if opts.StateManager == nil {
		stateManager := state.NewInMemoryStateManager()
		require.NoError(t, stateManager.Set(context.Background(), &messages.AreaSnapshot{
			AreaID: "room",
			Name:   "Room",
			Mode:   "adventure",
			Bodies: []*messages.BodySnapshot{{EntityID: "hero", Position: kinematic.Vector{X: 3}}},
		}))
		opts.StateManager = stateManager
	}
	server := httptest.NewServer(NewRouter(opts))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestRouter_areas(t *testing.T) {
	server := newTestServer(t, NewAPIServerOptions{})

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "list", path: "/areas", wantCode: http.StatusOK, wantBody: `"areaID":"room"`},
		{name: "get", path: "/areas/room", wantCode: http.StatusOK, wantBody: `"entityID":"hero"`},
		{name: "unknown area", path: "/areas/cellar", wantCode: http.StatusNotFound},
		{name: "body", path: "/areas/room/bodies/hero", wantCode: http.StatusOK, wantBody: `"x":3`},
		{name: "unknown body", path: "/areas/room/bodies/ghost", wantCode: http.StatusNotFound},
		{name: "no path route without a pathfinder", path: "/areas/room/path", wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, server.URL+tt.path, nil)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBody != "" {
				assert.Contains(t, body, tt.wantBody)
				assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRouter_path(t *testing.T) {
	pathfinder := &fakePathfinder{}
	server := newTestServer(t, NewAPIServerOptions{Pathfinder: pathfinder})

	resp, body := get(t, server.URL+"/areas/room/path?from=1,2&to=30,4,0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var path []projection.TileCoord
	require.NoError(t, json.Unmarshal([]byte(body), &path))
	assert.Equal(t, []projection.TileCoord{{X: 0, Y: 0}, {X: 1, Y: 0}}, path)
	assert.Equal(t, kinematic.Vector{X: 1, Y: 2}, pathfinder.from)
	assert.Equal(t, kinematic.Vector{X: 30, Y: 4}, pathfinder.to)

	resp, _ = get(t, server.URL+"/areas/room/path?from=1&to=2,2", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, server.URL+"/areas/cellar/path?from=1,1&to=2,2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_placement(t *testing.T) {
	repository := mocks.NewRepository(t)
	repository.EXPECT().LoadPlacement(mock.Anything, "hero").Return(&models.Placement{EntityID: "hero", AreaID: "hall"}, nil).Once()
	repository.EXPECT().LoadPlacement(mock.Anything, "ghost").Return(nil, &repositories.ErrNotFound{EntityID: "ghost"}).Once()
	server := newTestServer(t, NewAPIServerOptions{Repository: repository})

	resp, body := get(t, server.URL+"/entities/hero/placement", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"area_id":"hall"`)

	resp, _ = get(t, server.URL+"/entities/ghost/placement", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_token(t *testing.T) {
	server := newTestServer(t, NewAPIServerOptions{Token: "secret"})

	resp, _ := get(t, server.URL+"/areas", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = get(t, server.URL+"/areas", http.Header{"Authorization": {"Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = get(t, server.URL+"/areas", http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_stream(t *testing.T) {
	subscriber := &fakeSubscriber{ch: make(chan []byte, 1), unsubscribed: make(chan struct{})}
	server := newTestServer(t, NewAPIServerOptions{Subscriber: subscriber})

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/areas/room/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	subscriber.ch <- []byte{1, 2, 3}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	messageType, b, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, messageType)
	assert.Equal(t, []byte{1, 2, 3}, b)

	close(subscriber.ch)
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	select {
	case <-subscriber.unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not unsubscribe")
	}
}
