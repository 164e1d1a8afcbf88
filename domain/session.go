package domain

import "time"

// Session is the stored refresh record: exactly one document per issued
// refresh token. A user with several devices owns several documents; the
// token value itself is the only unique key.
type Session struct {
	ID           string    `bson:"_id,omitempty"`
	UserID       string    `bson:"user_id"`
	RefreshToken string    `bson:"refresh_token"`
	UserAgent    string    `bson:"user_agent,omitempty"`
	IPAddress    string    `bson:"ip_address,omitempty"`
	ExpiresAt    time.Time `bson:"expires_at"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Live reports whether the session is still honorable at the given instant.
// Expiry is carried by this check, not by physical deletion of the document.
func (s *Session) Live(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
