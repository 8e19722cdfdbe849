package eml

import "errors"

var (
	ErrInvalidAddress = errors.New("eml: invalid address")
	ErrAttachment     = errors.New("eml: failed to attach file")
	ErrWrite          = errors.New("eml: failed to write document")
)
