package handlers

import (
	"net/http"
	"time"

	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleStream upgrades to a websocket and writes every published snapshot
// of the area as a binary message: a zstd compressed flatbuffer.
func HandleStream(subscriber Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		areaID := mux.Vars(r)["areaID"]
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		defer conn.Close()
		log.Debug("New snapshot stream for area %s from %s", areaID, conn.RemoteAddr().String())

		snapshots, unsubscribe := subscriber.Subscribe(areaID)
		defer unsubscribe()

		// the client only sends close frames; reading notices them
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Error("Error reading WebSocket message from %s: %v", conn.RemoteAddr().String(), err)
					}
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				log.Trace("Snapshot stream closed for %s", conn.RemoteAddr().String())
				return
			case <-r.Context().Done():
				return
			case b, ok := <-snapshots:
				if !ok {
					conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "area removed"), time.Now().Add(streamWriteTimeout))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
					log.Error("Failed to write snapshot to %s: %v", conn.RemoteAddr().String(), err)
					return
				}
			}
		}
	}
}
