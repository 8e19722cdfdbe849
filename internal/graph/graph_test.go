package graph_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/graph"
)

type fakeGraph struct {
	*httptest.Server
	tokenRequests atomic.Int32
	lastForm      atomic.Value // url.Values of the last token request
	lastMail      atomic.Value // []byte of the last sendMail body
	files         map[string]string
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()
	f := &fakeGraph{files: map[string]string{
		"/sites/site-1/drive/root:/GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx:/content": "xlsx-bytes",
	}}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.tokenRequests.Add(1)
		f.lastForm.Store(r.PostForm)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1.0/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/v1.0")
		switch {
		case r.Method == http.MethodGet:
			content, ok := f.files[path]
			if !ok {
				http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(content))
		case r.Method == http.MethodPost && strings.HasSuffix(path, "/sendMail"):
			if strings.Contains(path, "blocked") {
				http.Error(w, `{"error":{"code":"ErrorAccessDenied"}}`, http.StatusForbidden)
				return
			}
			body, _ := io.ReadAll(r.Body)
			f.lastMail.Store(body)
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGraph) config() graph.Config {
	return graph.Config{
		TenantID:     "tenant",
		ClientID:     "client-id",
		ClientSecret: "secret",
		SiteID:       "site-1",
		BaseURL:      f.URL + "/v1.0",
		TokenURL:     f.URL + "/token",
	}
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	srv := newFakeGraph(t)
	c, err := graph.New(context.Background(), srv.config())
	require.NoError(t, err)

	data, err := c.Download(context.Background(), "/GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(data))

	_, err = c.Download(context.Background(), "GESTION QUOTIDIENNE/missing.xlsx")
	assert.ErrorIs(t, err, graph.ErrNotFound)

	_, err = c.Download(context.Background(), "")
	assert.ErrorIs(t, err, graph.ErrRequest)

	assert.Equal(t, int32(1), srv.tokenRequests.Load(), "token is reused")
	form := srv.lastForm.Load().(interface{ Get(string) string })
	assert.Equal(t, "client_credentials", form.Get("grant_type"))
	assert.Equal(t, "secret", form.Get("client_secret"))
	assert.Equal(t, graph.DefaultScope, form.Get("scope"))
}

func TestClient_SendMail(t *testing.T) {
	t.Parallel()

	srv := newFakeGraph(t)
	c, err := graph.New(context.Background(), srv.config())
	require.NoError(t, err)

	msg := graph.Message{
		Subject:       "Coordonnées Elèves: Léo PETIT",
		Body:          graph.ItemBody{ContentType: "HTML", Content: "<p>Bonjour</p>"},
		ToRecipients:  graph.Recipients([]string{"tutor@example.com"}),
		CcRecipients:  graph.Recipients([]string{"parent@example.com"}),
		BccRecipients: graph.Recipients(nil),
		Attachments:   []graph.FileAttachment{graph.NewFileAttachment("mandat.pdf", "application/pdf", []byte("%PDF"), "")},
	}
	require.NoError(t, c.SendMail(context.Background(), "idir.hadjhamou@study-success.fr", msg))

	var sent struct {
		Message struct {
			Subject      string `json:"subject"`
			ToRecipients []struct {
				EmailAddress struct {
					Address string `json:"address"`
				} `json:"emailAddress"`
			} `json:"toRecipients"`
			BccRecipients []any `json:"bccRecipients"`
			Attachments   []struct {
				ODataType    string `json:"@odata.type"`
				Name         string `json:"name"`
				ContentBytes string `json:"contentBytes"`
			} `json:"attachments"`
		} `json:"message"`
		SaveToSentItems bool `json:"saveToSentItems"`
	}
	require.NoError(t, json.Unmarshal(srv.lastMail.Load().([]byte), &sent))
	assert.True(t, sent.SaveToSentItems)
	assert.Equal(t, msg.Subject, sent.Message.Subject)
	assert.Equal(t, "tutor@example.com", sent.Message.ToRecipients[0].EmailAddress.Address)
	assert.Nil(t, sent.Message.BccRecipients)
	require.Len(t, sent.Message.Attachments, 1)
	assert.Equal(t, "#microsoft.graph.fileAttachment", sent.Message.Attachments[0].ODataType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), sent.Message.Attachments[0].ContentBytes)

	err = c.SendMail(context.Background(), "blocked@study-success.fr", msg)
	assert.ErrorIs(t, err, graph.ErrAccessDenied)
}

func TestClient_CertificateAssertion(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	srv := newFakeGraph(t)
	cfg := srv.config()
	cfg.ClientSecret = ""
	cfg.CertThumbprint = "0123456789ABCDEF0123456789ABCDEF01234567"
	cfg.CertPrivateKey = string(keyPEM)

	c, err := graph.New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, c.Check(context.Background()))

	form := srv.lastForm.Load().(interface{ Get(string) string })
	assert.Empty(t, form.Get("client_secret"))
	assert.Equal(t, "urn:ietf:params:oauth:client-assertion-type:jwt-bearer", form.Get("client_assertion_type"))

	tok, err := jwt.Parse(form.Get("client_assertion"), func(*jwt.Token) (any, error) { return &key.PublicKey, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(cfg.TokenURL),
		jwt.WithIssuer("client-id"),
	)
	require.NoError(t, err)
	assert.Equal(t, "ASNFZ4mrze8BI0VniavN7wEjRWc=", tok.Header["x5t"])
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := graph.New(context.Background(), graph.Config{})
	assert.ErrorIs(t, err, graph.ErrInvalidConfig)

	_, err = graph.New(context.Background(), graph.Config{TenantID: "t", ClientID: "c"})
	assert.ErrorIs(t, err, graph.ErrInvalidConfig)

	_, err = graph.New(context.Background(), graph.Config{TenantID: "t", ClientID: "c", CertThumbprint: "abcd", CertPrivateKey: "not a key"})
	assert.ErrorIs(t, err, graph.ErrInvalidKey)
}
