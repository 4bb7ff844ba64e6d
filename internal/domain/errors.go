package domain

import "errors"

// Kind classifies an Error so the HTTP layer can pick a status code
// without knowing about individual failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a failure that is safe to show to a client.
// Message is human readable and never contains library internals.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a client-facing error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	// Credentials
	ErrMissingCredentials = NewError(KindValidation, "username and password are required")
	ErrWeakCredential     = NewError(KindValidation, "password must be at least 6 characters long")
	ErrPasswordTooLong    = NewError(KindValidation, "password must be at most 72 bytes long")
	ErrDuplicateIdentity  = NewError(KindConflict, "a user with this username already exists")
	ErrInvalidCredential  = NewError(KindAuthentication, "invalid username or password")

	// Tokens
	ErrTokenMissing = NewError(KindAuthorization, "access token is missing")
	ErrTokenInvalid = NewError(KindAuthorization, "access token is invalid")
	ErrTokenExpired = NewError(KindAuthorization, "access token has expired")

	// Favorites
	ErrInvalidItem       = NewError(KindValidation, "favorite must have a non-empty id and a type of quote or joke")
	ErrDuplicateFavorite = NewError(KindConflict, "item is already in favorites")
	ErrFavoritesEmpty    = NewError(KindNotFound, "favorites list is empty")
	ErrFavoriteNotFound  = NewError(KindNotFound, "favorite not found")

	// Catalog
	ErrEmptyCollection = NewError(KindInternal, "collection is empty")
	ErrInvalidLimit    = NewError(KindValidation, "limit must be a positive integer")

	// Transport
	ErrMalformedBody = NewError(KindValidation, "request body must be a valid JSON object")
	ErrBodyTooLarge  = NewError(KindValidation, "request body is too large")
)

// KindOf reports the Kind of the first domain Error in err's chain.
// Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err, or fallback when err
// carries no domain Error or is an internal one.
func MessageOf(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	return fallback
}
