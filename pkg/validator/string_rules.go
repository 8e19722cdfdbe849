package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails on an empty or blank string.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

// MaxLen counts characters, not bytes, so accented names are not penalised.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters long", max)},
	}
}
