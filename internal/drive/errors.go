package drive

import "errors"

var (
	ErrFileNotFound  = errors.New("drive: file not found")
	ErrAccessDenied  = errors.New("drive: access denied")
	ErrInvalidPath   = errors.New("drive: invalid path")
	ErrInvalidConfig = errors.New("drive: invalid configuration")
	ErrFetch         = errors.New("drive: failed to fetch file")
)
