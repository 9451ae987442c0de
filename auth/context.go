// Package auth gates the admin console. A Context records the outcome of a
// single verification; Verifier runs the session and role checks that move it
// through its states.
package auth

import (
	"tourbook/models"
)

// State is the lifecycle position of a Context.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authorized
	Forbidden
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authorized:
		return "authorized"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Context holds the auth state for one request. It is not safe for
// concurrent use; each request owns its own.
type Context struct {
	state   State
	profile *models.Profile
	err     error
}

// NewContext returns an unauthenticated Context.
func NewContext() *Context {
	return &Context{state: Unauthenticated}
}

func (c *Context) State() State { return c.state }

// Profile is set once the profile row has been loaded, including when the
// role check then fails.
func (c *Context) Profile() *models.Profile { return c.profile }

// Err is the reason for the last failed verification, nil otherwise.
func (c *Context) Err() error { return c.err }

func (c *Context) IsAdmin() bool { return c.state == Authorized }

func (c *Context) begin() {
	c.state = Authenticating
	c.profile = nil
	c.err = nil
}

func (c *Context) authorize(p *models.Profile) {
	c.state = Authorized
	c.profile = p
}

func (c *Context) forbid(p *models.Profile, err error) {
	c.state = Forbidden
	c.profile = p
	c.err = err
}

func (c *Context) reset(err error) {
	c.state = Unauthenticated
	c.err = err
}
