// Package apperrors defines the closed catalog of failure conditions the API
// can report, and the error type that carries them across layer boundaries.
package apperrors

import "errors"

// Message is one entry of the failure catalog: a stable code, a human
// readable text, and the name of the offending field (empty when the failure
// is not tied to a single field).
type Message struct {
	Code  string
	Text  string
	Param string
}

// The full catalog. Codes double as the HTTP-equivalent status of the
// condition.
var (
	InternalError        = Message{"500", "Something went wrong, please try again", ""}
	InvalidRequest       = Message{"400", "Bad Request, please verify data", ""}
	InvalidParameters    = Message{"400", "Bad Parameters, please verify data", ""}
	UnsupportedOperation = Message{"501", "Method not supported, please try again", ""}
	UserCreated          = Message{"201", "User created successfully", ""}
	UserAlreadyExists    = Message{"400", "User with this email already exists", "email"}
	UserNotFound         = Message{"404", "User not found", "id"}
	UserNameRequired     = Message{"400", "User name is required", "name"}
	UserEmailRequired    = Message{"400", "User email is required", "email"}
	UserNameTooLong      = Message{"400", "User name cannot exceed 100 characters", "name"}
	UserEmailTooLong     = Message{"400", "User email cannot exceed 150 characters", "email"}
	UserEmailInvalid     = Message{"400", "User email format is invalid", "email"}
	UserRoleRequired     = Message{"400", "User role (isAdmin) is required", "isAdmin"}
	UserIDRequired       = Message{"400", "User ID is required", "id"}
	UserPasswordRequired = Message{"400", "User password is required", "password"}
	InvalidCredentials   = Message{"401", "Invalid email or password", "credentials"}
	TokenExpired         = Message{"401", "Token has expired", "token"}
	TokenInvalid         = Message{"401", "Token is invalid", "token"}
	TokenMissing         = Message{"401", "Authentication token is missing", "token"}
	Unauthorized         = Message{"401", "Unauthorized access", ""}
)

// Kind separates failures the caller caused from failures the server caused.
type Kind int

const (
	// KindBusiness failures are reported to the caller with their specific
	// catalog entry.
	KindBusiness Kind = iota
	// KindTechnical failures are reported generically; the cause is logged
	// but never leaked.
	KindTechnical
)

// Error is a classified failure carrying its catalog entry.
type Error struct {
	Kind    Kind
	Message Message
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message.Text + ": " + e.cause.Error()
	}
	return e.Message.Text
}

func (e *Error) Unwrap() error { return e.cause }

// Business builds a caller-caused failure for the given catalog entry.
func Business(m Message) *Error {
	return &Error{Kind: KindBusiness, Message: m}
}

// Technical builds a server-caused failure wrapping its underlying cause.
func Technical(m Message, cause error) *Error {
	return &Error{Kind: KindTechnical, Message: m, cause: cause}
}

// Classify maps an arbitrary error to the taxonomy. Anything that is not
// already a classified Error is treated as a technical internal error.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Technical(InternalError, err)
}
