package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"pickem-live/internal/game"

	"github.com/gorilla/websocket"
)

// Hub fans committed game changes out to websocket subscribers, grouped per
// game. It implements game.Notifier; a slow or dead subscriber is dropped,
// never retried, and never affects the transaction that produced the change.
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *Hub) Remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, gameID)
	}
}

// GameChanged broadcasts a committed change to every subscriber of the game.
func (h *Hub) GameChanged(change game.Change) {
	h.mu.Lock()
	group := h.groups[change.GameID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(change)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(change.GameID, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	if _, err := s.core.GameByID(gameID); err != nil {
		http.NotFound(w, r)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%s remote=%s", gameID, r.RemoteAddr)
	s.hub.Add(gameID, conn)
	go s.readWS(gameID, conn)
}

// readWS drains the connection; subscribers only listen, so any read just
// detects disconnects.
func (s *Server) readWS(gameID string, conn *websocket.Conn) {
	defer s.hub.Remove(gameID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%s error=%v", gameID, err)
			return
		}
	}
}
