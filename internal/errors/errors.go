package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDisabled       = errors.New("account disabled")
	ErrTokenInvalidOrExpired = errors.New("recovery token invalid or expired")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrPasswordMismatch      = errors.New("password confirmation does not match")
	ErrPersistence           = errors.New("persistence failure")
	ErrMailDelivery          = errors.New("mail delivery failure")
)
