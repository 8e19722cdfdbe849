package graph

import "errors"

var (
	ErrInvalidConfig    = errors.New("graph: invalid configuration")
	ErrInvalidKey       = errors.New("graph: invalid certificate key")
	ErrAuth             = errors.New("graph: authentication failed")
	ErrRequest          = errors.New("graph: request failed")
	ErrNotFound         = errors.New("graph: item not found")
	ErrAccessDenied     = errors.New("graph: access denied")
	ErrUnexpectedStatus = errors.New("graph: unexpected response status")
)
