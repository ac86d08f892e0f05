// Package websocket pushes tree changes to connected viewers over socket.io.
package websocket

import (
	"sync"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// TreeRoom is the room every viewer joins on connect.
const TreeRoom socketio.Room = "tree"

// Hub is a socket.io server that relays decoration and block events to the
// tree room.
type Hub struct {
	server *socketio.Server

	mu      sync.RWMutex
	viewers int
}

var _ core.Notifier = (*Hub)(nil)

func NewHub() *Hub {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(1000000)
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: false,
	})

	h := &Hub{server: socketio.NewServer(nil, opts)}

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	h.server.On("connection", func(clients ...any) {
		socket, ok := clients[0].(*socketio.Socket)
		if !ok {
			return
		}
		socket.Join(TreeRoom)
		viewers := h.addViewers(1)
		logrus.WithFields(logrus.Fields{
			"socket_id": socket.Id(),
			"viewers":   viewers,
		}).Debug("Viewer joined the tree")
		_ = h.server.To(TreeRoom).Emit("viewers", viewers)

		socket.On("disconnect", func(datas ...any) {
			viewers := h.addViewers(-1)
			_ = h.server.To(TreeRoom).Emit("viewers", viewers)
			socket.RemoveAllListeners("")
		})
	})

	return h
}

func (h *Hub) addViewers(delta int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers += delta
	if h.viewers < 0 {
		h.viewers = 0
	}
	return h.viewers
}

// Viewers is the number of connected sockets.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.viewers
}

// Publish sends event to everyone watching the tree.
func (h *Hub) Publish(event string, payload any) {
	if err := h.server.To(TreeRoom).Emit(event, payload); err != nil {
		logrus.WithError(err).WithField("event", event).Warn("Failed to publish tree event")
	}
}

// Server exposes the socket.io server for mounting on a router.
func (h *Hub) Server() *socketio.Server {
	return h.server
}

func (h *Hub) Close() {
	h.server.Close(nil)
}
