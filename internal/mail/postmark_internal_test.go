package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostmark struct {
	sent []postmark.Email
	resp postmark.EmailResponse
	err  error
}

func (f *fakePostmark) SendEmail(_ context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	f.sent = append(f.sent, email)
	return f.resp, f.err
}

func TestPostmarkSender_Send(t *testing.T) {
	t.Parallel()

	fake := &fakePostmark{}
	s := &PostmarkSender{client: fake, cfg: PostmarkConfig{ServerToken: "x", ReplyTo: "contact@study-success.fr"}}

	m := Message{
		From:     "manon.curie@study-success.fr",
		To:       []string{"a@example.com", "b@example.com"},
		Bcc:      []string{"c@example.com"},
		Subject:  "Résultats test de profil de Léo",
		HTMLBody: "<img src=\"cid:etapes.png\">",
		Attachments: []Attachment{
			{Name: "etapes.png", ContentType: "image/png", Data: []byte("png"), ContentID: "etapes.png"},
			{Name: "Leo_PETIT_profil.pptx", ContentType: "application/octet-stream", Data: []byte("pk")},
		},
	}
	require.NoError(t, s.Send(context.Background(), m))
	require.Len(t, fake.sent, 1)

	got := fake.sent[0]
	assert.Equal(t, "a@example.com,b@example.com", got.To)
	assert.Equal(t, "c@example.com", got.Bcc)
	assert.Equal(t, "contact@study-success.fr", got.ReplyTo)
	require.Len(t, got.Attachments, 2)
	assert.Equal(t, "cid:etapes.png", got.Attachments[0].ContentID)
	assert.Empty(t, got.Attachments[1].ContentID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pk")), got.Attachments[1].Content)

	fake.resp = postmark.EmailResponse{ErrorCode: 406, Message: "inactive recipient"}
	err := s.Send(context.Background(), m)
	assert.ErrorIs(t, err, ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "inactive recipient")

	fake.resp = postmark.EmailResponse{}
	fake.err = errors.New("dial tcp: timeout")
	assert.ErrorIs(t, s.Send(context.Background(), m), ErrFailedToSendEmail)
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	_, err := NewPostmarkSender(PostmarkConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	s, err := NewPostmarkSender(PostmarkConfig{ServerToken: "token"})
	require.NoError(t, err)
	assert.NotNil(t, s.client)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mandat_study_success__particulier_employeur.pdf", sanitizeFilename("Mandat Study Success_ Particulier Employeur.pdf"))
	assert.Equal(t, "email", sanitizeFilename("???"))
}
