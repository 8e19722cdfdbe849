package eml

import (
	"bytes"
	"errors"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/idir-jpg/study-success-matching/internal/compose"
	"github.com/idir-jpg/study-success-matching/internal/mail"
)

const (
	headerBcc       gomail.Header = "Bcc"
	headerXPriority gomail.Header = "X-Priority"
)

// Build renders m as a MIME document. Blank recipients are dropped. The
// Bcc list is kept as a header so the draft opens with it filled in.
func Build(m mail.Message) ([]byte, error) {
	msg := gomail.NewMsg()

	if from := strings.TrimSpace(m.From); from != "" {
		if err := msg.From(from); err != nil {
			return nil, errors.Join(ErrInvalidAddress, err)
		}
	}
	if to := compact(m.To); len(to) > 0 {
		if err := msg.To(to...); err != nil {
			return nil, errors.Join(ErrInvalidAddress, err)
		}
	}
	if cc := compact(m.Cc); len(cc) > 0 {
		if err := msg.Cc(cc...); err != nil {
			return nil, errors.Join(ErrInvalidAddress, err)
		}
	}
	if bcc := compact(m.Bcc); len(bcc) > 0 {
		msg.SetGenHeader(headerBcc, strings.Join(bcc, ", "))
	}

	msg.Subject(m.Subject)
	msg.SetMessageID()
	msg.SetGenHeader(headerXPriority, "3")

	text := m.TextBody
	switch {
	case m.HTMLBody == "":
		msg.SetBodyString(gomail.TypeTextPlain, text)
	default:
		if text == "" {
			text = compose.TextFallback
		}
		msg.SetBodyString(gomail.TypeTextPlain, text)
		msg.AddAlternativeString(gomail.TypeTextHTML, m.HTMLBody)
	}

	for _, a := range m.Attachments {
		var opts []gomail.FileOption
		if a.ContentType != "" {
			opts = append(opts, gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
		}
		if a.ContentID != "" {
			if err := msg.EmbedReader(a.ContentID, bytes.NewReader(a.Data), opts...); err != nil {
				return nil, errors.Join(ErrAttachment, err)
			}
			continue
		}
		if err := msg.AttachReader(a.Name, bytes.NewReader(a.Data), opts...); err != nil {
			return nil, errors.Join(ErrAttachment, err)
		}
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, errors.Join(ErrWrite, err)
	}
	return buf.Bytes(), nil
}

func compact(list []string) []string {
	var out []string
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
