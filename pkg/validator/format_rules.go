package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail accepts an RFC 5322 address, bare or with a display name, whose
// domain has at least one dot and no empty label.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}
			at := strings.LastIndexByte(addr.Address, '@')
			if at <= 0 {
				return false
			}
			domain := addr.Address[at+1:]
			if !strings.Contains(domain, ".") {
				return false
			}
			for label := range strings.SplitSeq(domain, ".") {
				if label == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}
