package journal

import "errors"

var (
	ErrRecord = errors.New("journal: failed to record entry")
	ErrQuery  = errors.New("journal: failed to query entries")
)
