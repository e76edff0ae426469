package codes

import "time"

// Code is a stored snippet. OwnerID references the user that created it and
// is always taken from the authenticated identity, never from client input.
type Code struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Language  string    `bson:"language" json:"language"`
	Body      string    `bson:"body" json:"body"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Patch carries a partial update: only non-nil fields are applied.
type Patch struct {
	Language *string `json:"language,omitempty"`
	Body     *string `json:"body,omitempty"`
}
