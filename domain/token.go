package domain

import "time"

// TokenKind distinguishes the two session token flavors. Access tokens are
// stateless; refresh tokens must additionally have a live Session document.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the decoded payload of a verified session token.
type TokenClaims struct {
	UserID    string
	Role      Role
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
