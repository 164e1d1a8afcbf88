package domain

import "time"

// AllowedIP is one office address from which punching is permitted.
// Matching is an exact string comparison.
type AllowedIP struct {
	ID        string    `bson:"_id,omitempty"`
	Address   string    `bson:"address"`
	Label     string    `bson:"label,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}
