package auth

import (
	"errors"

	"github.com/vlatan/media-hub/internal/store"
)

type Code int

const (
	CodeOther Code = iota
	CodeMissingCredentials
	CodeUserNotFound
	CodeWrongPassword
	CodeAccessDenied
)

var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrWrongPassword      = errors.New("wrong password")
	ErrAccessDenied       = errors.New("access denied, admin only")
	ErrNoAccount          = errors.New("no account with that email")
)

// AuthError is a failed sign in
type AuthError struct {
	Code Code
	Err  error
}

func (e *AuthError) Error() string {
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message is the text shown on the login form
func Message(err error) string {

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return store.Message(err)
	}

	switch authErr.Code {
	case CodeMissingCredentials:
		return "Email and password required."
	case CodeWrongPassword:
		return "Wrong password."
	case CodeAccessDenied:
		return "Access denied. Admin only."
	case CodeUserNotFound:
		return "No account with that email."
	default:
		return store.Message(authErr.Err)
	}
}
