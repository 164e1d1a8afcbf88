package attend

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"go.workpoint.io/attend/domain"
)

// sessionClaims is the JWT payload for both token kinds.
type sessionClaims struct {
	Role string `json:"role"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed session tokens. Access and refresh
// tokens are signed with distinct keys, so compromise of one cannot forge
// the other. The service holds no store reference: refresh statefulness is
// the orchestration layer's business.
type TokenService struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	boundary   *BoundaryPolicy
	now        func() time.Time
}

// NewTokenService creates a TokenService. Pass nil for now to use the wall
// clock; tests inject a fixed clock to pin TTL arithmetic.
func NewTokenService(accessKey, refreshKey []byte, accessTTL, refreshTTL time.Duration,
	boundary *BoundaryPolicy, now func() time.Time,
) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		boundary:   boundary,
		now:        now,
	}
}

// IssueAccessToken mints a stateless access token. Validity is signature
// plus expiry only; it is never checked against the session store.
func (s *TokenService) IssueAccessToken(userID string, role domain.Role) (string, error) {
	return s.sign(userID, role, domain.TokenKindAccess, s.accessTTL, s.accessKey)
}

// IssueRefreshToken mints a refresh token whose effective TTL is
// min(configured refresh TTL, time until the next daily boundary). When the
// boundary is exactly now the TTL clamps to zero and the token comes out
// already expired; callers treat that as "re-login", not as an error here.
func (s *TokenService) IssueRefreshToken(userID string, role domain.Role) (string, error) {
	ttl := s.refreshTTL
	if untilBoundary := time.Duration(s.boundary.SecondsUntilNext(s.now())) * time.Second; untilBoundary < ttl {
		ttl = untilBoundary
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.sign(userID, role, domain.TokenKindRefresh, ttl, s.refreshKey)
}

// RefreshTokenExpiry returns the expiry instant a refresh token issued right
// now would carry. The session document stores this same instant.
func (s *TokenService) RefreshTokenExpiry() time.Time {
	ttl := s.refreshTTL
	if untilBoundary := time.Duration(s.boundary.SecondsUntilNext(s.now())) * time.Second; untilBoundary < ttl {
		ttl = untilBoundary
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.now().UTC().Add(ttl)
}

func (s *TokenService) sign(userID string, role domain.Role, kind domain.TokenKind,
	ttl time.Duration, key []byte,
) (string, error) {
	iat := s.now().UTC()
	claims := sessionClaims{
		Role: string(role),
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IdentityFromToken returns the claims of a token whose signature and kind
// check out, ignoring expiry. The forced-logout path needs this: past the
// daily boundary the refresh token is usually already expired (its TTL was
// capped at the boundary), yet the server must still know whose sessions to
// revoke. Never use this to authenticate anything.
func (s *TokenService) IdentityFromToken(tokenValue string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	key := s.accessKey
	if kind == domain.TokenKindRefresh {
		key = s.refreshKey
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenValue, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid || claims.Kind != string(kind) {
		return nil, ErrInvalidToken
	}
	return &domain.TokenClaims{UserID: claims.Subject, Role: domain.Role(claims.Role), Kind: kind}, nil
}

// Verify checks signature, expiry and kind. Any failure yields the uniform
// ErrInvalidToken; the concrete cause is debug-logged for operators but
// never propagated, so the API gives attackers no oracle for which check
// tripped.
func (s *TokenService) Verify(tokenValue string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	key := s.accessKey
	if kind == domain.TokenKindRefresh {
		key = s.refreshKey
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenValue, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		log.Debug().Err(err).Str("expected_kind", string(kind)).Msg("token verification failed")
		return nil, ErrInvalidToken
	}
	if claims.Kind != string(kind) {
		log.Debug().Str("expected_kind", string(kind)).Str("got_kind", claims.Kind).
			Msg("token kind mismatch")
		return nil, ErrInvalidToken
	}

	out := &domain.TokenClaims{
		UserID: claims.Subject,
		Role:   domain.Role(claims.Role),
		Kind:   kind,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
