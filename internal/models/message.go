package models

import "time"

// Message is a chat message as the backend serializes it. Immutable once
// created except for the one-way Viewed flip.
type Message struct {
	ID            ID        `json:"idMessage"`
	PetitionID    *ID       `json:"idPetition,omitempty"`
	SenderID      ID        `json:"idSenderUser"`
	ReceiverID    ID        `json:"idReceiverUser"`
	Content       string    `json:"content"`
	Viewed        bool      `json:"viewed"`
	CreatedAt     time.Time `json:"dateCreate"`
	UpdatedAt     time.Time `json:"dateUpdate"`
	SenderName    string    `json:"senderName,omitempty"`
	SenderEmail   string    `json:"senderEmail,omitempty"`
	ReceiverName  string    `json:"receiverName,omitempty"`
	ReceiverEmail string    `json:"receiverEmail,omitempty"`
}

// PeerOf returns the other participant of the message relative to userID.
func (m Message) PeerOf(userID ID) ID {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
