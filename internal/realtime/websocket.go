package realtime

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Handler upgrades the request to a WebSocket and streams hub events
// until the client goes away.
func Handler(hub *Hub) http.Handler {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		id, ch := hub.Subscribe(64)
		defer hub.Unsubscribe(id)

		// Reads only detect the close frame.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, MarshalJSON(ev)); err != nil {
					return
				}
			case <-gone:
				return
			case <-r.Context().Done():
				return
			}
		}
	})
}
