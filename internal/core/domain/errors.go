package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("could not validate user's credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrUsernameTaken      = errors.New("username taken")
	ErrUserIDTaken        = errors.New("user id taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingField       = errors.New("required field is empty")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)
