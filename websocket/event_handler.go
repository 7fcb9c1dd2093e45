package websocket

import (
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/athletetime/community_backend/utils"
)

// handleEvent decodes and dispatches one inbound envelope. Malformed
// input never closes the connection; the sender gets an error event and
// the warning is logged.
func (c *Client) handleEvent(raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("error unmarshaling event: %v", err)
		c.sendError("invalid message format")
		return
	}

	switch event.Type {
	case EventJoin:
		c.handleJoin(event.Data)
	case EventMessage:
		c.handleMessage(event.Data)
	case EventLeave:
		c.handleLeave()
	default:
		log.Printf("unknown event type: %q", event.Type)
	}
}

// handleJoin moves the connection into a room and replies with the
// stored history. Joining while already in another room leaves that
// room first.
func (c *Client) handleJoin(data json.RawMessage) {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("error unmarshaling join payload: %v", err)
		c.sendError("invalid join payload")
		return
	}

	if err := payload.Validate(); err != nil {
		c.sendError(err.Error())
		return
	}

	room, ok := RoomByID(payload.Room)
	if !ok {
		c.sendError("unknown room: " + payload.Room)
		return
	}

	if payload.UserID == "" {
		payload.UserID = utils.NewAnonymousID()
	}

	// Leave the previous room before taking the new identity so the
	// departure notice carries the old nickname.
	_, prevNickname, _, prevRoom := c.identity()
	rejoining := prevRoom == room.ID
	if prevRoom != "" && !rejoining {
		c.hub.LeaveRoom(c, prevRoom)
		c.hub.BroadcastToRoom(prevRoom, EventUserLeft, PresenceData{Nickname: prevNickname})
		c.hub.broadcastCounts(prevRoom)
	}

	c.setIdentity(payload.UserID, payload.Nickname, payload.Avatar, room.ID)
	c.hub.JoinRoom(c, room.ID)

	messages, err := c.store.History(room.ID, DefaultHistoryLimit)
	if err != nil {
		log.Printf("error loading history for room %s: %v", room.ID, err)
		c.sendError("failed to load message history")
		messages = nil
	}

	c.sendEvent(EventRoomJoined, RoomJoinedData{
		Room:     room.ID,
		RoomName: room.Name,
		Nickname: payload.Nickname,
		UserID:   payload.UserID,
		Messages: messages,
	})

	// A rejoin of the current room refreshes history only; the other
	// members saw no departure, so they get no arrival either.
	if !rejoining {
		c.hub.BroadcastToRoomExcept(room.ID, c, EventUserJoined, PresenceData{Nickname: payload.Nickname})
		c.hub.broadcastCounts(room.ID)
	}

	log.Printf("%s joined room %s", payload.Nickname, room.ID)
}

// handleMessage persists a chat message and fans it out to the sender's
// current room, sender included.
func (c *Client) handleMessage(data json.RawMessage) {
	var payload MessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("error unmarshaling message payload: %v", err)
		c.sendError("invalid message payload")
		return
	}

	userID, nickname, avatar, room := c.identity()
	if room == "" {
		c.sendError("join a room before sending messages")
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		c.sendError("message exceeds 500 characters")
		return
	}

	message, err := c.store.Append(room, userID, nickname, avatar, text)
	if err != nil {
		log.Printf("error storing message in room %s: %v", room, err)
		c.sendError("failed to send message")
		return
	}

	c.hub.BroadcastToRoom(room, EventMessage, message)
}

// handleLeave removes the connection from its room without closing the
// socket. No-op while pending.
func (c *Client) handleLeave() {
	_, nickname, _, room := c.identity()
	if room == "" {
		return
	}

	c.hub.LeaveRoom(c, room)
	c.clearRoom()

	c.hub.BroadcastToRoom(room, EventUserLeft, PresenceData{Nickname: nickname})
	c.hub.broadcastCounts(room)

	log.Printf("%s left room %s", nickname, room)
}
