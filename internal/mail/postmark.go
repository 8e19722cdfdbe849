package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkConfig holds the Postmark tokens.
type PostmarkConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	ReplyTo      string `env:"POSTMARK_REPLY_TO"`
}

type postmarkClient interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender delivers through Postmark. The From address must be a
// verified Postmark sender signature.
type PostmarkSender struct {
	client postmarkClient
	cfg    PostmarkConfig
}

func NewPostmarkSender(cfg PostmarkConfig) (*PostmarkSender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	return &PostmarkSender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		cfg:    cfg,
	}, nil
}

func (s *PostmarkSender) Send(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	email := postmark.Email{
		From:     m.From,
		To:       strings.Join(m.To, ","),
		Cc:       strings.Join(m.Cc, ","),
		Bcc:      strings.Join(m.Bcc, ","),
		Subject:  m.Subject,
		HTMLBody: m.HTMLBody,
		TextBody: m.TextBody,
		ReplyTo:  s.cfg.ReplyTo,
	}
	for _, a := range m.Attachments {
		att := postmark.Attachment{
			Name:        a.Name,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			ContentType: a.ContentType,
		}
		if a.ContentID != "" {
			att.ContentID = "cid:" + a.ContentID
		}
		email.Attachments = append(email.Attachments, att)
	}

	resp, err := s.client.SendEmail(ctx, email)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
