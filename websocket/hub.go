package websocket

import (
	"log"
	"sync"
)

// Hub tracks every connected client and which room each one is in, and
// fans events out to room members. It is constructed in main and handed
// to the connection handler; there is no package-level instance.
//
// Handlers run on parallel goroutines, so all map access goes through
// the mutex to keep the same effective serialization a single event
// loop would give.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Room membership (roomID -> clients). A client is in at most one room.
	rooms map[string]map[*Client]bool

	mu sync.RWMutex

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes register and unregister requests. It should be started
// once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			room, nickname := h.detach(client)
			if room != "" {
				h.BroadcastToRoom(room, EventUserLeft, PresenceData{Nickname: nickname})
				h.broadcastCounts(room)
			}
		}
	}
}

// detach removes a client entirely, closing its send channel and
// returning the room it occupied, if any.
func (h *Hub) detach(client *Client) (room, nickname string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return "", ""
	}
	delete(h.clients, client)
	client.closed = true
	close(client.send)

	for roomID, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
			return roomID, client.Nickname()
		}
	}
	return "", ""
}

// JoinRoom moves a client into a room, removing it from any previous
// room first. Joining the room it is already in is a no-op.
func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, members := range h.rooms {
		if id != roomID && members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, id)
			}
		}
	}

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
}

// LeaveRoom removes a client from a room. No-op when not a member.
func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[roomID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// MembersOf returns a snapshot of the clients currently in a room.
func (h *Hub) MembersOf(roomID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*Client, 0, len(h.rooms[roomID]))
	for client := range h.rooms[roomID] {
		members = append(members, client)
	}
	return members
}

// RoomCount returns the number of clients in a room.
func (h *Hub) RoomCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// RoomCounts returns the member count of every room in the catalog.
func (h *Hub) RoomCounts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[string]int, len(roomCatalog))
	for _, room := range roomCatalog {
		counts[room.ID] = len(h.rooms[room.ID])
	}
	return counts
}

// ClientCount returns the number of open connections, joined or pending.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToRoom sends an event to every client in a room. Delivery is
// best effort: a client whose send buffer is full is dropped and cleaned
// up without blocking the fan-out.
func (h *Hub) BroadcastToRoom(roomID, eventType string, data interface{}) {
	h.broadcastToRoom(roomID, nil, eventType, data)
}

// BroadcastToRoomExcept is BroadcastToRoom minus one client, used for
// presence notices the subject should not receive.
func (h *Hub) BroadcastToRoomExcept(roomID string, except *Client, eventType string, data interface{}) {
	h.broadcastToRoom(roomID, except, eventType, data)
}

func (h *Hub) broadcastToRoom(roomID string, except *Client, eventType string, data interface{}) {
	payload, err := marshalEvent(eventType, data)
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	var stale []*Client

	h.mu.RLock()
	for client := range h.rooms[roomID] {
		if client == except || client.closed {
			continue
		}
		select {
		case client.send <- payload:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.drop(client)
	}
}

// BroadcastAll sends an event to every connected client, joined or not.
// Used for room-count updates and board activity notices.
func (h *Hub) BroadcastAll(eventType string, data interface{}) {
	payload, err := marshalEvent(eventType, data)
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		if client.closed {
			continue
		}
		select {
		case client.send <- payload:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.drop(client)
	}
}

// broadcastCounts pushes the affected room's member count to its members
// and the full tally to everyone.
func (h *Hub) broadcastCounts(roomID string) {
	h.BroadcastToRoom(roomID, EventUserCount, UserCountData{Room: roomID, Count: h.RoomCount(roomID)})
	h.BroadcastAll(EventRoomCounts, RoomCountsData{Counts: h.RoomCounts()})
}

// drop removes a client that failed delivery. The reader goroutine will
// also hit the closed connection and unregister, which detach makes
// idempotent.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.closed = true
	close(client.send)

	for roomID, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
			break
		}
	}
	log.Printf("client %s dropped: send buffer full", client.Nickname())
}
