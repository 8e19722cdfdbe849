package mail

import (
	"context"
	"errors"

	"github.com/idir-jpg/study-success-matching/internal/graph"
)

type graphMailer interface {
	SendMail(ctx context.Context, from string, msg graph.Message) error
}

// GraphSender sends from the staff member's own mailbox through Microsoft
// Graph; the message lands in their Sent Items.
type GraphSender struct {
	client graphMailer
}

func NewGraphSender(client graphMailer) *GraphSender {
	return &GraphSender{client: client}
}

func (s *GraphSender) Send(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	msg := graph.Message{
		Subject:       m.Subject,
		Body:          graph.ItemBody{ContentType: "HTML", Content: m.HTMLBody},
		ToRecipients:  graph.Recipients(m.To),
		CcRecipients:  graph.Recipients(m.Cc),
		BccRecipients: graph.Recipients(m.Bcc),
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, graph.NewFileAttachment(a.Name, a.ContentType, a.Data, a.ContentID))
	}

	if err := s.client.SendMail(ctx, m.From, msg); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
