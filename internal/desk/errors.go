package desk

import "errors"

var (
	ErrMissingEmail  = errors.New("desk: recipient email is missing")
	ErrInvalidInput  = errors.New("desk: invalid input")
	ErrTemplate      = errors.New("desk: failed to build document")
	ErrNoTutorChosen = errors.New("desk: no tutor selected")
)
