package attend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go.workpoint.io/attend/domain"
	"go.workpoint.io/attend/internal/auth"
)

// defaultStoreTimeout bounds every session-store call so a stalled database
// surfaces as a server error instead of hanging the request.
const defaultStoreTimeout = 5 * time.Second

// SessionService orchestrates the session lifecycle: credential login,
// refresh rotation under the daily boundary, and logout. It owns no token or
// session state itself; tokens come from the TokenService and sessions live
// in the repository.
type SessionService struct {
	users        domain.UserRepository
	sessions     domain.SessionRepository
	tokens       *TokenService
	boundary     *BoundaryPolicy
	hasher       auth.PasswordHasher
	storeTimeout time.Duration
	now          func() time.Time
}

// NewSessionService wires the session lifecycle. Pass nil for now to use the
// wall clock.
func NewSessionService(users domain.UserRepository, sessions domain.SessionRepository,
	tokens *TokenService, boundary *BoundaryPolicy, now func() time.Time,
) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		boundary:     boundary,
		hasher:       auth.NewBcryptPasswordHasher(0),
		storeTimeout: defaultStoreTimeout,
		now:          now,
	}
}

// Login verifies credentials, mints an access/refresh pair and persists the
// refresh session. Unknown email and wrong password collapse into the same
// ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.TokenPair, *domain.User, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return nil, nil, ErrUserInactive
	}
	if s.hasher.Verify(user.PasswordHash, password) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, expiresAt, err := s.issuePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
		ExpiresAt:    expiresAt,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.sessions.Save(sctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store refresh session: %w", err)
	}
	return pair, user, nil
}

// Refresh rotates a presented refresh token into a new pair.
//
// The boundary check comes first: past the daily cutoff every session of the
// user is revoked and the caller gets ErrForcedLogout, regardless of whether
// the presented token would still verify. Otherwise the token must verify,
// a live session document must exist for (token, user), and the old document
// is swapped for the new one. Store failures propagate as wrapped errors and
// must not be read as ErrInvalidToken: a database outage never logs a
// legitimate session out.
func (s *SessionService) Refresh(ctx context.Context, refreshToken, ipAddress, userAgent string) (*domain.TokenPair, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if s.boundary.HasPassed(s.now()) {
		// Past the cutoff the refresh token is typically expired already
		// (its TTL was capped at the boundary), so the identity is taken
		// from signature and kind alone, just to know whose sessions to
		// clear.
		if id, idErr := s.tokens.IdentityFromToken(refreshToken, domain.TokenKindRefresh); idErr == nil {
			if err := s.sessions.RevokeAll(sctx, id.UserID); err != nil {
				return nil, fmt.Errorf("failed to revoke sessions at boundary: %w", err)
			}
		}
		return nil, ErrForcedLogout
	}

	claims, err := s.tokens.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	old, err := s.sessions.FindLive(sctx, refreshToken, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up refresh session: %w", err)
	}

	pair, expiresAt, err := s.issuePair(claims.UserID, claims.Role)
	if err != nil {
		return nil, err
	}

	replacement := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       claims.UserID,
		RefreshToken: pair.RefreshToken,
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
		ExpiresAt:    expiresAt,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.sessions.Rotate(sctx, old.ID, replacement); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh session: %w", err)
	}
	return pair, nil
}

// Logout revokes every session of the user. Best effort: the client discards
// its tokens regardless, so a store failure is logged and swallowed.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) {
	// Expired tokens still identify whose sessions to clear; a client
	// logging out right after the daily cutoff holds nothing better.
	claims, err := s.tokens.IdentityFromToken(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return
	}
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.sessions.RevokeAll(sctx, claims.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("best-effort logout revocation failed")
	}
}

// VerifyAccess checks an access token for the request middleware. Stateless:
// no store round-trip, no auto-refresh.
func (s *SessionService) VerifyAccess(tokenValue string) (*domain.TokenClaims, error) {
	return s.tokens.Verify(tokenValue, domain.TokenKindAccess)
}

// RevokeUser force-logs-out one user everywhere. Admin surface.
func (s *SessionService) RevokeUser(ctx context.Context, userID string) error {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.sessions.RevokeAll(sctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// SweepExpired physically deletes expired session documents. Housekeeping:
// FindLive already treats them as absent.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	n, err := s.sessions.DeleteExpired(sctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}
	return n, nil
}

func (s *SessionService) issuePair(userID string, role domain.Role) (*domain.TokenPair, time.Time, error) {
	access, err := s.tokens.IssueAccessToken(userID, role)
	if err != nil {
		return nil, time.Time{}, err
	}
	// Expiry is computed before signing so the document and the token claim
	// carry the same instant.
	expiresAt := s.tokens.RefreshTokenExpiry()
	refresh, err := s.tokens.IssueRefreshToken(userID, role)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, expiresAt, nil
}
