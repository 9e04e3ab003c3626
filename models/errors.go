package models

import "errors"

// Error taxonomy surfaced through the GraphQL boundary. Repos return
// these (possibly wrapped with details); anything else is collapsed
// into ErrInternal before it crosses the API so raw database errors
// never leak to clients.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrNotFound           = errors.New("data not found")
	ErrDuplicateLike      = errors.New("user already liked this post")
	ErrDuplicateFollow    = errors.New("already following this user")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrNotFollowing       = errors.New("not following this user")
	ErrConflict           = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authorization header required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPrincipalNotFound  = errors.New("user no longer exists")
	ErrInternal           = errors.New("internal server error")
)
