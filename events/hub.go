// Package events broadcasts ticket state changes to browsers watching a
// project page.
package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type TicketEvent struct {
	ProjectID  uint   `json:"project_id"`
	TicketID   uint   `json:"ticket_id"`
	Transition string `json:"transition"`
	Verb       string `json:"verb"`
	FromState  int    `json:"from_state"`
	ToState    int    `json:"to_state"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(projectID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[projectID] == nil {
		h.rooms[projectID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[projectID][conn] = true
}

func (h *Hub) Unregister(projectID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[projectID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, projectID)
		}
	}
}

// Broadcast sends the event to every connection watching the project. Dead
// connections are dropped on write failure.
func (h *Hub) Broadcast(event TicketEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket: marshal event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[event.ProjectID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.rooms[event.ProjectID], conn)
		}
	}
}
