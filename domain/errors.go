package domain

import "errors"

// Storage-level sentinels returned by repositories. Services translate these
// into the API-facing errors at the module root.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrDuplicate          = errors.New("document already exists")
)
