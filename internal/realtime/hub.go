package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one websocket connection subscribed to a booking room.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	BookingID uuid.UUID
	UserID    uuid.UUID
}

// Message is what gets broadcast into a room. Kind distinguishes chat
// payloads from location pings.
type Message struct {
	BookingID uuid.UUID   `json:"booking_id"`
	Kind      string      `json:"kind"`
	Payload   interface{} `json:"payload"`
}

const (
	KindChat     = "chat"
	KindLocation = "location"
)

// Hub routes messages between clients grouped by booking. All room state
// is owned by the run loop; other goroutines talk to it over channels.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
		log:        log.With(zap.String("component", "realtime_hub")),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			room, ok := h.rooms[client.BookingID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.BookingID] = room
			}
			room[client] = true

		case client := <-h.unregister:
			if room, ok := h.rooms[client.BookingID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.BookingID)
					}
				}
			}

		case message := <-h.broadcast:
			room, ok := h.rooms[message.BookingID]
			if !ok {
				continue
			}
			data, err := json.Marshal(message)
			if err != nil {
				h.log.Error("Failed to marshal broadcast message", zap.Error(err))
				continue
			}
			for client := range room {
				select {
				case client.send <- data:
				default:
					// Slow consumer, drop it rather than stall the room.
					delete(room, client)
					close(client.send)
				}
			}
			if len(room) == 0 {
				delete(h.rooms, message.BookingID)
			}
		}
	}
}

// Broadcast pushes a message to everyone connected to the booking's room.
// Safe to call from any goroutine.
func (h *Hub) Broadcast(message Message) {
	h.broadcast <- message
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The read side only services control frames; clients publish through
	// the REST endpoints so everything is persisted before fan-out.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("Websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
