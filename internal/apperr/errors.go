package apperr

import "fmt"

// ValidationError reports the first field that failed validation on a
// create or update. Field is the JSON name of the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NotFoundError covers both a missing record and a record owned by
// someone else. Callers cannot tell the two apart.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// PermissionError means the caller has no authenticated session.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Reason
}

// AuthError is a sign-in or sign-up failure. The message stays generic
// so it never leaks which credential was wrong.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authentication failed"
}
