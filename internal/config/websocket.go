package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

// maxMessageSize bounds one batch of commands from a client.
const maxMessageSize = 16 << 10

type WebSocket struct {
	Upgrader       websocket.Upgrader
	MaxMessageSize int64
}

// NewWebSocket accepts any origin when origins is empty, otherwise only the
// listed ones.
func NewWebSocket(origins []string) *WebSocket {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	ws := &WebSocket{
		Upgrader:       upgrader,
		MaxMessageSize: maxMessageSize,
	}

	return ws
}
