package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Dashboard message types
const (
	MsgScoreRecorded    MessageType = "score_recorded"
	MsgVelocityComputed MessageType = "velocity_computed"
	MsgCalibrationReady MessageType = "calibration_ready"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections per org. Multiple operators
// can watch the same org at once.
type Hub struct {
	conns map[string]map[*Connection]bool // orgID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	OrgID      string
	OperatorID string
	Send       chan []byte
	Hub        *Hub
}

// BroadcastMessage is a message to broadcast to an org's dashboards
type BroadcastMessage struct {
	OrgID   string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.OrgID] == nil {
				h.conns[conn.OrgID] = make(map[*Connection]bool)
			}
			h.conns[conn.OrgID][conn] = true
			log.Printf("Operator %s connected to org %s dashboard", conn.OperatorID, conn.OrgID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.OrgID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Operator %s disconnected from org %s dashboard", conn.OperatorID, conn.OrgID)
				}
				if len(conns) == 0 {
					delete(h.conns, conn.OrgID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.OrgID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToOrg sends a message to every dashboard watching the org
// (implements service.Broadcaster)
func (h *Hub) BroadcastToOrg(orgID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		OrgID: orgID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
