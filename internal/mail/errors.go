package mail

import "errors"

var (
	ErrUnknownSender     = errors.New("mail: sender is not allowed")
	ErrInvalidMessage    = errors.New("mail: invalid message")
	ErrInvalidConfig     = errors.New("mail: invalid configuration")
	ErrFailedToSendEmail = errors.New("mail: failed to send email")
	ErrLoadDirectory     = errors.New("mail: failed to load sender directory")
)
