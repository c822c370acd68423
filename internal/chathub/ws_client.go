package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"duetchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements Client over a gorilla/websocket connection.
// The mutex serializes Enqueue against Close: the send channel is only ever
// written or closed while it is held, so a broadcast racing a disconnect can
// never hit a closed channel.
type WebSocketClient struct {
	connID string
	Conn   *websocket.Conn
	Hub    *Hub

	mu     sync.Mutex
	closed bool
	send   chan models.ServerEvent
}

func NewWebSocketClient(hub *Hub, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		connID: uuid.New().String(),
		Conn:   conn,
		Hub:    hub,
		send:   make(chan models.ServerEvent, 256),
	}
}

func (c *WebSocketClient) ID() string { return c.connID }

// Enqueue queues an event for the write pump. A closed client or a full
// buffer refuses the event instead of blocking the caller.
func (c *WebSocketClient) Enqueue(ev models.ServerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump. The read pump exits on its own once the
// underlying connection closes.
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.HandleDisconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.connID, err)
			continue
		}
		c.route(ev)
	}
}

// route decodes the per-event payload and invokes the matching hub handler.
// Handler errors stay on this connection: logged, echoed to the sender, and
// never fatal to the pump.
func (c *WebSocketClient) route(ev models.ClientEvent) {
	switch ev.Event {
	case models.EventJoinRoom:
		var p models.JoinRoomPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", ev.Event, c.connID, err)
			return
		}
		if err := c.Hub.HandleJoin(c, p); err != nil {
			log.Printf("joinRoom rejected for %s: %v", c.connID, err)
		}

	case models.EventSendMessage:
		var p models.SendMessagePayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", ev.Event, c.connID, err)
			return
		}
		if _, err := c.Hub.HandleSend(p); err != nil {
			log.Printf("sendMessage failed for %s: %v", c.connID, err)
			c.emitError("message could not be delivered")
		}

	case models.EventTyping, models.EventStopTyping:
		var p models.TypingPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", ev.Event, c.connID, err)
			return
		}
		c.Hub.HandleTyping(c.connID, p, ev.Event == models.EventTyping)

	case models.EventMarkAsRead:
		var p models.MarkAsReadPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", ev.Event, c.connID, err)
			return
		}
		if err := c.Hub.HandleMarkRead(p); err != nil {
			log.Printf("markAsRead failed for %s: %v", c.connID, err)
		}

	case models.EventGetPartnerStatus:
		var p models.JoinRoomPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", ev.Event, c.connID, err)
			return
		}
		c.Hub.HandlePartnerStatus(c.connID, p)

	default:
		log.Printf("Unknown event %q from client %s", ev.Event, c.connID)
	}
}

func (c *WebSocketClient) emitError(message string) {
	c.Enqueue(models.ServerEvent{Event: models.EventError, Data: map[string]string{"message": message}})
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub; close the websocket.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.connID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
