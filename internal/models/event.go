package models

import "encoding/json"

// Inbound (server to client) chat channel events.
const (
	EventConnected       = "connected"
	EventMessageSent     = "message:sent"
	EventMessageReceived = "message:receive"
	EventMessagesRead    = "messages:read"
	EventTypingStart     = "typing:start"
	EventTypingStop      = "typing:stop"
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventOnlineUsers     = "users:online"
)

// Outbound (client to server) chat channel events.
const (
	EventAuth         = "auth"
	EventMessageSend  = "message:send"
	EventMessageRead  = "message:read"
	EventUsersRequest = "users:request"
)

// Envelope frames every message on the chat channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AuthPayload carries the session credential in the first frame after the
// websocket upgrade.
type AuthPayload struct {
	Token string `json:"token"`
}

// SendMessagePayload is the body of an outbound message:send.
type SendMessagePayload struct {
	ReceiverID ID     `json:"receiverId"`
	Content    string `json:"content"`
	PetitionID *ID    `json:"petitionId,omitempty"`
}

// ReadPayload is the body of an outbound message:read.
type ReadPayload struct {
	OtherUserID ID `json:"otherUserId"`
}

// TypingPayload is the body of outbound typing:start / typing:stop.
type TypingPayload struct {
	ReceiverID ID `json:"receiverId"`
}

// UserEventPayload is the body of inbound user:online, user:offline,
// typing:start and typing:stop.
type UserEventPayload struct {
	UserID   ID     `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// MessagesReadPayload is the body of inbound messages:read. UserID is the
// peer whose read state changed.
type MessagesReadPayload struct {
	UserID ID  `json:"userId"`
	Count  int `json:"count,omitempty"`
}

// OnlineUsersPayload is the body of the inbound presence snapshot.
type OnlineUsersPayload struct {
	UserIDs []ID `json:"userIds"`
	Count   int  `json:"count,omitempty"`
}
