package websocket

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/athletetime/community_backend/models"
)

// Inbound event types.
const (
	EventJoin    = "join"
	EventMessage = "message"
	EventLeave   = "leave"
)

// Outbound event types.
const (
	EventConnected  = "connected"
	EventRoomJoined = "room_joined"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventUserCount  = "user_count"
	EventRoomCounts = "room_counts"
	EventError      = "error"
)

// Event is the JSON envelope exchanged over the socket in both
// directions. Data is decoded into a typed payload once the type tag is
// known; nothing is dispatched on an unvalidated payload.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinPayload is the inbound "join" payload.
type JoinPayload struct {
	Room     string `json:"room"`
	Nickname string `json:"nickname"`
	UserID   string `json:"userId"`
	Avatar   string `json:"avatar"`
}

// Validate checks the required join fields.
func (p *JoinPayload) Validate() error {
	p.Room = strings.TrimSpace(p.Room)
	p.Nickname = strings.TrimSpace(p.Nickname)
	if p.Room == "" || p.Nickname == "" {
		return errors.New("room and nickname are required")
	}
	return nil
}

// MessagePayload is the inbound "message" payload.
type MessagePayload struct {
	Text string `json:"text"`
}

// ConnectedData greets a freshly opened socket with the room catalog and
// relay-wide stats.
type ConnectedData struct {
	Rooms []RoomStatus `json:"rooms"`
	Stats RelayStats   `json:"stats"`
}

// RoomStatus is a catalog entry plus its live member count.
type RoomStatus struct {
	RoomInfo
	UserCount int `json:"userCount"`
}

// RelayStats summarizes the relay as a whole.
type RelayStats struct {
	Connections   int   `json:"connections"`
	TotalMessages int64 `json:"totalMessages"`
	RoomCount     int   `json:"roomCount"`
}

// RoomJoinedData is sent to the joining connection only.
type RoomJoinedData struct {
	Room     string               `json:"room"`
	RoomName string               `json:"roomName"`
	Nickname string               `json:"nickname"`
	UserID   string               `json:"userId"`
	Messages []models.ChatMessage `json:"messages"`
}

// PresenceData carries user_joined / user_left notices.
type PresenceData struct {
	Nickname string `json:"nickname"`
}

// UserCountData carries a single room's member count.
type UserCountData struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// RoomCountsData carries the member count of every room.
type RoomCountsData struct {
	Counts map[string]int `json:"counts"`
}

// ErrorData is sent to the offending connection only.
type ErrorData struct {
	Message string `json:"message"`
}

// marshalEvent encodes an envelope for the wire.
func marshalEvent(eventType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Data: raw})
}
