package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates that the caller may not access the resource.
var ErrForbidden = errors.New("forbidden")

// ErrQRExpired indicates that a presented QR token is past its validity window.
var ErrQRExpired = errors.New("qr code expired")

// ErrAlreadyDelivered guards against double redemption of a QR token.
var ErrAlreadyDelivered = errors.New("already delivered")
