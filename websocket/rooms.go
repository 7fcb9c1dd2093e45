package websocket

// RoomInfo describes one of the fixed chat rooms. The catalog is static;
// rooms are not created or destroyed at runtime, only their member sets
// change. History for a room persists whether or not anyone is in it.
type RoomInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var roomCatalog = []RoomInfo{
	{ID: "main", Name: "메인 채팅", Icon: "🏠"},
	{ID: "sprint", Name: "단거리", Icon: "⚡"},
	{ID: "middle", Name: "중거리", Icon: "🏃"},
	{ID: "long", Name: "장거리", Icon: "🏃‍♂️"},
	{ID: "field", Name: "필드", Icon: "🥇"},
	{ID: "free", Name: "자유", Icon: "💬"},
}

// RoomList returns the full room catalog.
func RoomList() []RoomInfo {
	rooms := make([]RoomInfo, len(roomCatalog))
	copy(rooms, roomCatalog)
	return rooms
}

// RoomByID looks up a room in the catalog.
func RoomByID(id string) (RoomInfo, bool) {
	for _, room := range roomCatalog {
		if room.ID == id {
			return room, true
		}
	}
	return RoomInfo{}, false
}
