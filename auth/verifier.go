package auth

import (
	"context"
	"errors"
	"fmt"

	"tourbook/models"
	"tourbook/repository"
)

// ProfileFinder loads a profile row by id. A missing row is reported as
// repository.ErrNotFound.
type ProfileFinder interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// Verifier runs the admin check: session first, then the profile's role.
type Verifier struct {
	tokens   *Tokens
	profiles ProfileFinder
}

func NewVerifier(tokens *Tokens, profiles ProfileFinder) *Verifier {
	return &Verifier{tokens: tokens, profiles: profiles}
}

// Verify moves ac through Authenticating to Authorized, Forbidden or back
// to Unauthenticated, and returns the failure if any. The returned error is
// ErrNoSession, a *ProfileFetchError or ErrInsufficientRole.
func (v *Verifier) Verify(ctx context.Context, ac *Context, bearer string) error {
	ac.begin()

	profile, err := v.session(ctx, bearer)
	if err != nil {
		ac.reset(err)
		return err
	}

	if profile.Role != models.RoleAdmin {
		ac.forbid(profile, ErrInsufficientRole)
		return ErrInsufficientRole
	}

	ac.authorize(profile)
	return nil
}

func (v *Verifier) session(ctx context.Context, bearer string) (*models.Profile, error) {
	if bearer == "" {
		return nil, ErrNoSession
	}
	claims, err := v.tokens.Parse(bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	profile, err := v.profiles.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: profile %s no longer exists", ErrNoSession, claims.UserID)
	}
	if err != nil {
		return nil, &ProfileFetchError{UserID: claims.UserID, Err: err}
	}
	return profile, nil
}
