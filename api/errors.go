// Package api is the client for the site REST API.
// File: api/errors.go
package api

import "fmt"

// ---------------- error taxonomy ----------------

// AuthError means the bearer token was rejected (401/403) on a regular
// request. The client clears the stored token before returning it, so the
// caller's next step is always a redirect to login.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized (status %d)", e.Status)
}

// PasswordError means a gated write was rejected (401/403), which the API
// uses to signal a wrong secondary admin password. The bearer token is left
// untouched so the admin can retry.
type PasswordError struct {
	Status int
}

func (e *PasswordError) Error() string {
	return fmt.Sprintf("admin password rejected (status %d)", e.Status)
}

// RequestError covers every other failed request: non-auth HTTP errors and
// logical failures flagged in a 2xx body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error (status %d)", e.Status)
}
