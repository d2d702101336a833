package models

// Message is a chat-room-scoped record. Messages are append-only and carry a
// client timestamp; consumers sort by timestamp at read time because the
// store does not guarantee order.
type Message struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	UserID      string `json:"user_id"`
	Text        string `json:"text"`
	DisplayName string `json:"display_name"`
	Timestamp   int64  `json:"timestamp"` // unix milliseconds, client-supplied
}
