package application

// The three error kinds the auth engine can produce. The HTTP boundary
// maps them to status codes (validation 400, duplicate 409, auth 401);
// anything else is treated as a server error.

// ValidationError reports a semantic input violation, e.g. a password
// confirmation mismatch.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DuplicateError reports a unique-key collision. Field is "email" or
// "phone".
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already registered" }

// AuthError reports a failed authentication. The invalid-credentials
// message is shared by the unknown-email and wrong-password paths so
// callers cannot probe which emails are registered; locked and disabled
// are deliberately explicit so users can be directed to support.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrInvalidCredentials = &AuthError{Message: "invalid email or password"}
	ErrAccountLocked      = &AuthError{Message: "account is locked"}
	ErrAccountDisabled    = &AuthError{Message: "account is disabled"}
)
