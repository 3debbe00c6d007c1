package models

import "time"

// Platform resources consumed over the REST API. Field names mirror the
// backend's wire format; optional columns stay pointers so partial update
// payloads omit what the caller did not set.

// Petition is a customer request open for postulations.
type Petition struct {
	ID             ID         `json:"idPetition,omitempty"`
	TypePetitionID *ID        `json:"idTypePetition"`
	Description    *string    `json:"description"`
	DateSince      *string    `json:"dateSince"`
	DateUntil      *string    `json:"dateUntil"`
	CreatedBy      *ID        `json:"idUserCreate"`
	UpdatedBy      *ID        `json:"idUserUpdate"`
	CreatedAt      *time.Time `json:"dateCreate,omitempty"`
	UpdatedAt      *time.Time `json:"dateUpdate,omitempty"`
	StateID        *ID        `json:"idState"`
	CustomerID     ID         `json:"idCustomer"`
	CategoryID     ID         `json:"idCategory"`
}

// Category classifies petitions.
type Category struct {
	ID          ID      `json:"idCategory,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Notification is a per-user platform notification.
type Notification struct {
	ID         ID         `json:"idNotification,omitempty"`
	ProviderID *ID        `json:"idProvider"`
	CustomerID *ID        `json:"idCustomer"`
	Type       *string    `json:"type"`
	Message    *string    `json:"message"`
	Viewed     *bool      `json:"viewed"`
	UpdatedBy  *ID        `json:"idUserUpdate"`
	CreatedBy  *ID        `json:"idUserCreate"`
	UpdatedAt  *time.Time `json:"dateUpdate"`
	CreatedAt  *time.Time `json:"dateCreate"`
	Deleted    *bool      `json:"deleted"`
}

// Postulation is a provider's offer on a petition. The bigint-backed ids
// arrive as strings; ID absorbs both encodings.
type Postulation struct {
	ID         ID        `json:"idpostulation,omitempty"`
	PetitionID *ID       `json:"idPetition"`
	ProviderID *ID       `json:"idProvider"`
	Winner     bool      `json:"winner"`
	Proposal   *string   `json:"proposal"`
	Cost       *string   `json:"cost"`
	StateID    *ID       `json:"idState"`
	CreatedBy  *ID       `json:"idUserCreate"`
	UpdatedBy  *ID       `json:"idUserUpdate"`
	CreatedAt  time.Time `json:"dateCreate"`
	UpdatedAt  time.Time `json:"dateUpdate"`
}

// User is a platform account as the users endpoint returns it.
type User struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Group int    `json:"group"`
}

// UserInterest links a user to a category of interest.
type UserInterest struct {
	ID         ID `json:"idUserInterest,omitempty"`
	UserID     ID `json:"idUser"`
	CategoryID ID `json:"idCategory"`
}
