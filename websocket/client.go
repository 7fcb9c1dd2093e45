package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer
	maxFrameSize = 4096
)

// Client is one websocket connection. It starts pending and holds no
// room; a join event gives it an identity and a room. The connection is
// owned by its read/write pumps for its whole lifetime.
//
// closed is written only while holding the hub mutex.
type Client struct {
	hub   *Hub
	store *MessageStore
	conn  *websocket.Conn
	send  chan []byte

	mu       sync.RWMutex
	userID   string
	nickname string
	avatar   string
	room     string

	closed bool
}

func (c *Client) setIdentity(userID, nickname, avatar, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.nickname = nickname
	c.avatar = avatar
	c.room = room
}

func (c *Client) clearRoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = ""
}

func (c *Client) identity() (userID, nickname, avatar, room string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.nickname, c.avatar, c.room
}

// Nickname returns the client's display name, empty while pending.
func (c *Client) Nickname() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nickname
}

// Room returns the room the client is joined to, empty while pending.
func (c *Client) Room() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

// readPump pumps inbound events from the websocket connection into the
// event handler. One goroutine per connection; all inbound events for a
// connection are processed in receipt order.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			break
		}

		c.handleEvent(raw)
	}
}

// writePump pumps events from the send channel to the websocket
// connection and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

// sendEvent queues an event for this connection only. Delivery is best
// effort; a full buffer drops the event rather than blocking the caller.
// The hub lock guards against the send channel being closed underneath us.
func (c *Client) sendEvent(eventType string, data interface{}) {
	payload, err := marshalEvent(eventType, data)
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- payload:
	default:
		log.Printf("dropping %s event: send buffer full", eventType)
	}
}

func (c *Client) sendError(message string) {
	c.sendEvent(EventError, ErrorData{Message: message})
}
