package matching

import "errors"

var (
	ErrNoSubjects   = errors.New("matching: no known subject in the student's request")
	ErrNoRecipients = errors.New("matching: no tutor selected")
)
