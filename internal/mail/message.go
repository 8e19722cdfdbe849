package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/idir-jpg/study-success-matching/pkg/validator"
)

const (
	// maxSubjectLength is the RFC 5322 line limit.
	maxSubjectLength = 998
	// maxRecipients is the per-message limit of Microsoft Graph.
	maxRecipients = 500
)

// Attachment is a file sent with a message. A non-empty ContentID makes it
// an inline part referenced from the HTML body as cid:ContentID.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	ContentID   string `json:"content_id,omitempty"`
}

// Message is a provider-neutral email.
type Message struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Cc          []string     `json:"cc,omitempty"`
	Bcc         []string     `json:"bcc,omitempty"`
	Subject     string       `json:"subject"`
	HTMLBody    string       `json:"html_body"`
	TextBody    string       `json:"text_body,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Recipients returns To, Cc and Bcc in that order.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Clean drops blank and duplicate recipients, keeping the first occurrence.
func (m Message) Clean() Message {
	seen := map[string]bool{}
	clean := func(list []string) []string {
		var out []string
		for _, a := range list {
			a = strings.TrimSpace(a)
			key := strings.ToLower(a)
			if a == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
		return out
	}
	m.From = strings.TrimSpace(m.From)
	m.To = clean(m.To)
	m.Cc = clean(m.Cc)
	m.Bcc = clean(m.Bcc)
	return m
}

// Validate checks the sender, the recipients and the subject. The returned
// error wraps ErrInvalidMessage and validator.ValidationErrors.
func (m Message) Validate() error {
	rcpts := m.Recipients()
	rules := []validator.Rule{
		validator.ValidEmail("sender", m.From),
		validator.RequiredSlice("recipients", rcpts),
		validator.MaxLenSlice("recipients", rcpts, maxRecipients),
	}
	for _, r := range rcpts {
		rules = append(rules, validator.ValidEmail(fmt.Sprintf("recipient %q", r), r))
	}
	rules = append(rules,
		validator.Required("subject", m.Subject),
		validator.MaxLen("subject", m.Subject, maxSubjectLength),
	)
	if err := validator.Apply(rules...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, m Message) error

func (f SenderFunc) Send(ctx context.Context, m Message) error {
	return f(ctx, m)
}

const testSubjectPrefix = "[TEST] "

// ApplyTestMode redirects m to address alone and marks the subject.
func ApplyTestMode(m Message, address string) Message {
	m.To = []string{address}
	m.Cc = nil
	m.Bcc = nil
	if !strings.HasPrefix(m.Subject, testSubjectPrefix) {
		m.Subject = testSubjectPrefix + m.Subject
	}
	return m
}

// TestMode wraps next so that every message is redirected to address.
func TestMode(next Sender, address string) Sender {
	return SenderFunc(func(ctx context.Context, m Message) error {
		return next.Send(ctx, ApplyTestMode(m, address))
	})
}
