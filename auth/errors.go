package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession means the request carried no usable token.
	ErrNoSession = errors.New("no active session")
	// ErrInsufficientRole means the profile exists but is not an admin.
	ErrInsufficientRole = errors.New("insufficient role")
)

// ProfileFetchError wraps a failure to load the profile of a valid session.
type ProfileFetchError struct {
	UserID string
	Err    error
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("fetch profile %s: %v", e.UserID, e.Err)
}

func (e *ProfileFetchError) Unwrap() error { return e.Err }
