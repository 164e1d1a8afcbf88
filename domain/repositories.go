package domain

import (
	"context"
	"time"
)

// SessionRepository is the rotation and revocation store for refresh
// sessions. It is the only shared mutable state in the session lifecycle;
// implementations must be safe for unbounded concurrent callers.
type SessionRepository interface {
	// Save inserts a new refresh session. The token value is unique across
	// the collection; user IDs are not (one document per device).
	Save(ctx context.Context, session *Session) error

	// FindLive returns the session matching both the token value and the
	// owning user, provided its expiry instant has not passed. A token
	// presented with a mismatched user ID yields ErrSessionNotFound even
	// when the token value alone exists. Expired documents are treated as
	// absent whether or not the cleanup sweep has removed them yet.
	FindLive(ctx context.Context, refreshToken, userID string) (*Session, error)

	// Rotate replaces a consumed session with its successor: delete the old
	// document, then insert the new one. The two steps are deliberately not
	// transactional; a crash in between fails closed (no valid refresh token
	// remains). Deleting an already-absent document is not an error.
	Rotate(ctx context.Context, oldID string, replacement *Session) error

	// RevokeAll deletes every session owned by the user, across devices.
	RevokeAll(ctx context.Context, userID string) error

	// DeleteExpired physically removes documents past their expiry. This is
	// housekeeping only; FindLive never returns them regardless.
	DeleteExpired(ctx context.Context) (int64, error)
}

// UserRepository stores employee accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AttendanceRepository stores punch records, keyed by (user, UTC day).
type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	GetByUserAndDay(ctx context.Context, userID, day string) (*Attendance, error)
	ClosePunch(ctx context.Context, id string, punchOutAt time.Time) error
	ListByUserAndMonth(ctx context.Context, userID, month string) ([]*Attendance, error)
}

// LeaveRepository stores leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*LeaveRequest, error)
	ListByStatus(ctx context.Context, status LeaveStatus) ([]*LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status LeaveStatus, decidedBy string, decidedAt time.Time) error
	ApprovedAnnualInYear(ctx context.Context, userID string, year int) ([]*LeaveRequest, error)
}

// AllowedIPRepository stores the punch-in allow-list.
type AllowedIPRepository interface {
	Add(ctx context.Context, ip *AllowedIP) error
	Remove(ctx context.Context, address string) error
	List(ctx context.Context) ([]*AllowedIP, error)
	Exists(ctx context.Context, address string) (bool, error)
}
