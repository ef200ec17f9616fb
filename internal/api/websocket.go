package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ActivityEvent is one pantry activity broadcast to connected clients.
type ActivityEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub tracks connected activity feed clients and fans events out to them.
type Hub struct {
	clients    map[*wsConnection]bool
	broadcast  chan []byte
	register   chan *wsConnection
	unregister chan *wsConnection
}

// NewHub creates an activity feed hub. Run must be started for events to
// flow.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*wsConnection]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsConnection),
		unregister: make(chan *wsConnection),
	}
}

// Run owns the client set; all membership changes go through its channels.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				close(conn.send)
			}
		case message := <-h.broadcast:
			for conn := range h.clients {
				select {
				case conn.send <- message:
				default:
					delete(h.clients, conn)
					close(conn.send)
				}
			}
		}
	}
}

// BroadcastActivity publishes a pantry activity event to all clients
func (h *Hub) BroadcastActivity(eventType string, data interface{}) {
	event := ActivityEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling activity event: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		log.Println("Activity feed buffer full, dropping event")
	}
}

// wsConnection maintains one WebSocket connection with a client
type wsConnection struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// handleWebSocket upgrades the request and joins the activity feed
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &wsConnection{
		conn: conn,
		send: make(chan []byte, 256),
		hub:  s.hub,
	}
	s.hub.register <- wsConn

	// Start the read and write pumps
	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump drains client messages; the feed is one-way so messages are
// discarded, but the pump keeps pong handling and close detection alive.
func (c *wsConnection) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps events from the hub to the WebSocket connection
func (c *wsConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
