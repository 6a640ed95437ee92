package signaling

import "encoding/json"

// Client-originated events.
const (
	EventJoinSession  = "join-session"
	EventLeaveSession = "leave-session"
	EventSignal       = "signal"
	EventChatMessage  = "chat-message"
)

// Server-originated events.
const (
	// EventPeerJoined is sent only to the participant whose join brings the
	// room to two members, designating it the offer initiator.
	EventPeerJoined = "peer-joined"

	// EventUsersInSession carries the full membership snapshot and is sent
	// to the whole room after every membership change.
	EventUsersInSession = "users-in-session"

	// EventPeerDisconnected carries the handle of a departing participant
	// and is sent to every remaining room member.
	EventPeerDisconnected = "peer-disconnected"
)

// Envelope is the wire format for every websocket frame, in both
// directions. Data is kept raw: signaling payloads and chat messages are
// relayed byte-for-byte without the server interpreting them.
type Envelope struct {
	Event     string          `json:"event"`
	SessionID string          `json:"sessionId,omitempty"`
	From      string          `json:"from,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ChatMessage documents the shape clients put in the Data field of a
// chat-message envelope. The server never parses it.
type ChatMessage struct {
	User   string `json:"user"`
	Text   string `json:"text"`
	Avatar string `json:"avatar,omitempty"`
	Time   int64  `json:"time"`
}
