package models

import "time"

// Roles carried in the role claim of issued tokens. RoleAdmin passes every
// ownership check in the access policy.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user stored in MongoDB
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	Country   string    `bson:"country,omitempty" json:"country,omitempty"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
