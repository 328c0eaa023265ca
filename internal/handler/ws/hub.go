package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"CoinWatch/internal/domain/models"
	"CoinWatch/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans snapshot updates out to connected dashboard clients.
type Hub struct {
	log *logger.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until
// the client goes away. The read loop exists only to detect closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.log.Debug("websocket client connected", logger.Int("clients", total))

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Broadcast sends the snapshot set to every connected client, dropping
// connections that fail to accept the write.
func (h *Hub) Broadcast(snapshots []models.AssetSnapshot) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(snapshots); err != nil {
			h.log.Debug("websocket write failed, dropping client", logger.Error(err))
			h.drop(c)
		}
	}
}

// Close disconnects every client, used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
