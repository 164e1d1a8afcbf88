// Package errors holds the JSON error bodies the HTTP API returns. Codes
// are stable machine strings; descriptions are for humans.
package errors

import "fmt"

// APIError is the uniform JSON error envelope.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error codes.
const (
	InvalidRequest = "invalid_request"
	// InvalidToken deliberately covers every verification failure; the API
	// never tells a caller which check tripped.
	InvalidToken       = "invalid_token"
	ForcedLogout       = "forced_logout"
	InvalidCredentials = "invalid_credentials"
	Forbidden          = "forbidden"
	NotFound           = "not_found"
	Conflict           = "conflict"
	IPNotAllowed       = "ip_not_allowed"
	ServerError        = "server_error"
)

func NewInvalidRequest(description string) *APIError {
	return &APIError{Code: InvalidRequest, Description: description}
}

func NewInvalidToken() *APIError {
	return &APIError{Code: InvalidToken, Description: "Invalid or expired token"}
}

// NewForcedLogout is distinct from NewInvalidToken so clients can show the
// daily-logout message instead of a generic auth failure.
func NewForcedLogout() *APIError {
	return &APIError{Code: ForcedLogout, Description: "Daily session expired, please log in again"}
}

func NewInvalidCredentials() *APIError {
	return &APIError{Code: InvalidCredentials, Description: "Invalid email or password"}
}

func NewForbidden(description string) *APIError {
	return &APIError{Code: Forbidden, Description: description}
}

func NewNotFound(description string) *APIError {
	return &APIError{Code: NotFound, Description: description}
}

func NewConflict(description string) *APIError {
	return &APIError{Code: Conflict, Description: description}
}

func NewIPNotAllowed() *APIError {
	return &APIError{Code: IPNotAllowed, Description: "Punching is not allowed from this address"}
}

func NewServerError(description string) *APIError {
	return &APIError{Code: ServerError, Description: description}
}
