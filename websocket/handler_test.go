package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRelayServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	go hub.Run()
	store := newTestStore(t)
	handler := NewHandler(hub, store)

	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dialRelay(t *testing.T, server *httptest.Server) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendClientEvent(t *testing.T, conn *gws.Conn, eventType string, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Event{Type: eventType, Data: raw}))
}

// awaitEvent reads envelopes until one of the wanted type arrives,
// skipping interleaved count and presence traffic.
func awaitEvent(t *testing.T, conn *gws.Conn, eventType string) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var event Event
		require.NoError(t, conn.ReadJSON(&event), "waiting for %s", eventType)
		if event.Type == eventType {
			return event
		}
	}
}

func joinRoom(t *testing.T, conn *gws.Conn, room, nickname string) RoomJoinedData {
	t.Helper()
	sendClientEvent(t, conn, EventJoin, JoinPayload{Room: room, Nickname: nickname})
	event := awaitEvent(t, conn, EventRoomJoined)
	var joined RoomJoinedData
	require.NoError(t, json.Unmarshal(event.Data, &joined))
	return joined
}

func TestConnectGreeting(t *testing.T) {
	server := newRelayServer(t)
	conn := dialRelay(t, server)

	event := awaitEvent(t, conn, EventConnected)
	var greeting ConnectedData
	require.NoError(t, json.Unmarshal(event.Data, &greeting))

	assert.Len(t, greeting.Rooms, 6)
	assert.Equal(t, 6, greeting.Stats.RoomCount)
}

func TestJoinDeliversHistoryScopedToRoom(t *testing.T) {
	server := newRelayServer(t)

	// A joins main and speaks.
	connA := dialRelay(t, server)
	joined := joinRoom(t, connA, "main", "alice")
	assert.Empty(t, joined.Messages)
	assert.NotEmpty(t, joined.UserID)

	sendClientEvent(t, connA, EventMessage, MessagePayload{Text: "hello"})
	event := awaitEvent(t, connA, EventMessage)
	var echoed map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Data, &echoed))
	assert.Equal(t, "hello", echoed["text"])

	// B joins main afterwards and sees "hello" in history.
	connB := dialRelay(t, server)
	joinedB := joinRoom(t, connB, "main", "bob")
	require.Len(t, joinedB.Messages, 1)
	assert.Equal(t, "hello", joinedB.Messages[0].Text)
	assert.Equal(t, "alice", joinedB.Messages[0].Nickname)

	// C joins another room and sees nothing from main.
	connC := dialRelay(t, server)
	joinedC := joinRoom(t, connC, "free", "carol")
	assert.Empty(t, joinedC.Messages)
}

func TestMessageFansOutToRoomMembers(t *testing.T) {
	server := newRelayServer(t)

	connA := dialRelay(t, server)
	joinRoom(t, connA, "main", "alice")
	connB := dialRelay(t, server)
	joinRoom(t, connB, "main", "bob")

	sendClientEvent(t, connB, EventMessage, MessagePayload{Text: "on your left"})

	for _, conn := range []*gws.Conn{connA, connB} {
		event := awaitEvent(t, conn, EventMessage)
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(event.Data, &msg))
		assert.Equal(t, "on your left", msg["text"])
		assert.Equal(t, "bob", msg["nickname"])
	}
}

func TestDisconnectNotifiesRemainingMembers(t *testing.T) {
	server := newRelayServer(t)

	connA := dialRelay(t, server)
	joinRoom(t, connA, "main", "alice")
	connB := dialRelay(t, server)
	joinRoom(t, connB, "main", "bob")

	connA.Close()

	event := awaitEvent(t, connB, EventUserLeft)
	var left PresenceData
	require.NoError(t, json.Unmarshal(event.Data, &left))
	assert.Equal(t, "alice", left.Nickname)
}

func TestRejoinReturnsIdenticalHistory(t *testing.T) {
	server := newRelayServer(t)

	connA := dialRelay(t, server)
	joinRoom(t, connA, "main", "alice")
	sendClientEvent(t, connA, EventMessage, MessagePayload{Text: "first"})
	awaitEvent(t, connA, EventMessage)
	sendClientEvent(t, connA, EventMessage, MessagePayload{Text: "second"})
	awaitEvent(t, connA, EventMessage)
	connA.Close()

	connA2 := dialRelay(t, server)
	joined := joinRoom(t, connA2, "main", "alice")
	require.Len(t, joined.Messages, 2)
	assert.Equal(t, "first", joined.Messages[0].Text)
	assert.Equal(t, "second", joined.Messages[1].Text)
}

func TestJoinValidation(t *testing.T) {
	server := newRelayServer(t)
	conn := dialRelay(t, server)

	sendClientEvent(t, conn, EventJoin, JoinPayload{Room: "nope", Nickname: "alice"})
	event := awaitEvent(t, conn, EventError)
	var failure ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &failure))
	assert.Contains(t, failure.Message, "unknown room")

	sendClientEvent(t, conn, EventJoin, JoinPayload{Room: "main"})
	awaitEvent(t, conn, EventError)
}

func TestMessageRequiresJoin(t *testing.T) {
	server := newRelayServer(t)
	conn := dialRelay(t, server)

	sendClientEvent(t, conn, EventMessage, MessagePayload{Text: "hello?"})
	event := awaitEvent(t, conn, EventError)
	var failure ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &failure))
	assert.Contains(t, failure.Message, "join a room")
}

func TestOversizedMessageRejected(t *testing.T) {
	server := newRelayServer(t)
	conn := dialRelay(t, server)
	joinRoom(t, conn, "main", "alice")

	sendClientEvent(t, conn, EventMessage, MessagePayload{Text: strings.Repeat("가", MaxMessageLength+1)})
	event := awaitEvent(t, conn, EventError)
	var failure ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &failure))
	assert.Contains(t, failure.Message, "500")
}

func TestRejoiningSameRoomStaysQuiet(t *testing.T) {
	server := newRelayServer(t)

	connA := dialRelay(t, server)
	joinRoom(t, connA, "main", "alice")
	connB := dialRelay(t, server)
	joinRoom(t, connB, "main", "bob")

	// A sees bob arrive once.
	awaitEvent(t, connA, EventUserJoined)

	// B sends join for the room it is already in; it gets a fresh
	// room_joined, and A sees neither a departure nor a second arrival.
	joined := joinRoom(t, connB, "main", "bob")
	assert.Equal(t, "main", joined.Room)

	connA.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	for {
		var stray Event
		if err := connA.ReadJSON(&stray); err != nil {
			break // timed out without presence traffic
		}
		assert.NotEqual(t, EventUserJoined, stray.Type, "rejoin was announced again")
		assert.NotEqual(t, EventUserLeft, stray.Type, "rejoin produced a departure")
	}
}

func TestSwitchingRoomsLeavesThePreviousOne(t *testing.T) {
	server := newRelayServer(t)

	connA := dialRelay(t, server)
	joinRoom(t, connA, "main", "alice")
	connB := dialRelay(t, server)
	joinRoom(t, connB, "main", "bob")

	// B hops to another room; A is told bob left.
	joinRoom(t, connB, "free", "bob")
	event := awaitEvent(t, connA, EventUserLeft)
	var left PresenceData
	require.NoError(t, json.Unmarshal(event.Data, &left))
	assert.Equal(t, "bob", left.Nickname)

	// A message in main no longer reaches B.
	sendClientEvent(t, connA, EventMessage, MessagePayload{Text: "still here"})
	awaitEvent(t, connA, EventMessage)

	conn := connB
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	for {
		var stray Event
		if err := conn.ReadJSON(&stray); err != nil {
			break // timed out without seeing the message
		}
		assert.NotEqual(t, EventMessage, stray.Type, "member of another room received the message")
	}
}
