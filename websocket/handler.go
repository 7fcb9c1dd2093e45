package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler upgrades HTTP requests and wires new connections to the hub
// and message store.
type Handler struct {
	hub   *Hub
	store *MessageStore
}

// NewHandler creates a connection handler for the given hub and store.
func NewHandler(hub *Hub, store *MessageStore) *Handler {
	return &Handler{hub: hub, store: store}
}

// HandleConnection handles websocket connections
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error upgrading connection: %v", err)
		return
	}

	client := &Client{
		hub:   h.hub,
		store: h.store,
		conn:  conn,
		send:  make(chan []byte, 256),
	}

	client.hub.register <- client

	// Greet before the pumps start; the buffered channel holds it.
	client.sendEvent(EventConnected, h.connectedData())

	go client.readPump()
	go client.writePump()
}

// connectedData builds the greeting payload: the room catalog with live
// member counts and relay-wide stats.
func (h *Handler) connectedData() ConnectedData {
	counts := h.hub.RoomCounts()

	rooms := make([]RoomStatus, 0, len(roomCatalog))
	for _, room := range roomCatalog {
		rooms = append(rooms, RoomStatus{RoomInfo: room, UserCount: counts[room.ID]})
	}

	totalMessages, err := h.store.Count()
	if err != nil {
		log.Printf("error counting messages: %v", err)
	}

	return ConnectedData{
		Rooms: rooms,
		Stats: RelayStats{
			Connections:   h.hub.ClientCount(),
			TotalMessages: totalMessages,
			RoomCount:     len(roomCatalog),
		},
	}
}
