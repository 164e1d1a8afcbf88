package attend

import "errors"

var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// expired, wrong kind, malformed, or no live session. Callers are never
	// told which check failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForcedLogout means the daily boundary has passed. Distinct from
	// ErrInvalidToken so clients can show the "daily session expired"
	// message; handling it revokes every stored session for the user.
	ErrForcedLogout = errors.New("forced logout: daily boundary passed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")

	ErrIPNotAllowed     = errors.New("address not on the punch allow-list")
	ErrAlreadyPunchedIn = errors.New("already punched in today")
	ErrNotPunchedIn     = errors.New("no open punch record today")
	ErrAlreadyDecided   = errors.New("leave request already decided")
	ErrInsufficientDays = errors.New("insufficient leave allowance")
)
