package errors

import (
	"errors"
)

// Request-boundary taxonomy. Controllers map these onto status codes:
// ErrValidation -> 400, ErrUnauthorized -> 401, ErrForbidden -> 403,
// ErrNotFound -> 404. Specific sentinels wrap the taxonomy errors so
// errors.Is matches both the concrete cause and its class.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrEmptyAuth          = join(errors.New("missing authorization"), ErrUnauthorized)
	ErrTokenInvalid       = join(errors.New("invalid token"), ErrUnauthorized)
	ErrInvalidCredentials = join(errors.New("invalid username or password"), ErrUnauthorized)
	ErrNotStaff           = join(errors.New("staff permission required"), ErrForbidden)

	ErrEmailTaken        = join(errors.New("email is already registered"), ErrValidation)
	ErrUsernameTaken     = join(errors.New("username is already registered"), ErrValidation)
	ErrPasswordMismatch  = join(errors.New("password mismatch"), ErrValidation)
	ErrWeakPassword      = join(errors.New("password must be at least 8 characters and contain a letter and a digit"), ErrValidation)
	ErrInsufficientStock = join(errors.New("insufficient stock"), ErrValidation)
	ErrNegativeStock     = join(errors.New("stock quantity cannot be negative"), ErrValidation)
	ErrAlreadyInWishlist = join(errors.New("already in wishlist"), ErrValidation)

	ErrUserNotFound     = join(errors.New("user not found"), ErrNotFound)
	ErrProductNotFound  = join(errors.New("product not found"), ErrNotFound)
	ErrCategoryNotFound = join(errors.New("category not found"), ErrNotFound)
	ErrCartNotFound     = join(errors.New("cart not found"), ErrNotFound)
	ErrCartItemNotFound = join(errors.New("cart item not found"), ErrNotFound)
	ErrWishlistNotFound = join(errors.New("wishlist item not found"), ErrNotFound)
)

type classified struct {
	cause error
	class error
}

func (e classified) Error() string { return e.cause.Error() }

func (e classified) Is(target error) bool {
	return errors.Is(e.cause, target) || errors.Is(e.class, target)
}

func join(cause, class error) error {
	return classified{cause: cause, class: class}
}
