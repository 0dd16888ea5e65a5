// Package admin is the storefront's administrator gate: a credential check
// and a short-lived session token. The catalog store itself performs no
// authorization; everything admin-shaped sits at the HTTP boundary.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the only rejection callers see. The login path is
// deliberately not rate limited or lockout protected; the static credential
// pair is a placeholder, not a security model.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks an administrator credential pair.
type Verifier interface {
	Verify(ctx context.Context, username, password string) error
}

// StaticVerifier holds a single username and a bcrypt hash of its password.
type StaticVerifier struct {
	username string
	hash     []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	// The hash comparison runs whether or not the username matched.
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))

	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
