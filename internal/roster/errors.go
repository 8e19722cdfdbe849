package roster

import "errors"

var (
	ErrOpenWorkbook    = errors.New("roster: failed to open workbook")
	ErrSheetNotFound   = errors.New("roster: sheet not found")
	ErrReadSheet       = errors.New("roster: failed to read sheet")
	ErrStudentNotFound = errors.New("roster: student not found")
	ErrTutorNotFound   = errors.New("roster: tutor not found")
	ErrProfileNotFound = errors.New("roster: learning profile not found")
)
