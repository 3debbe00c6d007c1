package models

import "time"

// Conversation is a per-peer summary row as returned by the
// list-conversations endpoint, ordered most-recent-activity-first.
type Conversation struct {
	PeerID          ID        `json:"userId"`
	PeerName        string    `json:"userName"`
	PeerEmail       string    `json:"userEmail"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageDate time.Time `json:"lastMessageDate"`
	UnreadCount     int       `json:"unreadCount"`
}
