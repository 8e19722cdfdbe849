package binder

import "errors"

var (
	ErrNotApplicable        = errors.New("binder: not applicable to this request")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidQuery         = errors.New("binder: invalid query parameters")
	ErrInvalidForm          = errors.New("binder: invalid form data")
	ErrInvalidSignals       = errors.New("binder: invalid datastar signals")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
)
