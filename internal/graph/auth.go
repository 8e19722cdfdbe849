package graph

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

const (
	clientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
	assertionLifetime   = 10 * time.Minute
)

// tokenSource picks the secret or certificate flow from cfg.
func tokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: TENANT_ID and CLIENT_ID are required", ErrInvalidConfig)
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = microsoft.AzureADEndpoint(cfg.TenantID).TokenURL
	}

	if !cfg.usesCertificate() {
		if cfg.ClientSecret == "" {
			return nil, fmt.Errorf("%w: CLIENT_SECRET or CERT_THUMBPRINT is required", ErrInvalidConfig)
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{DefaultScope},
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		return cc.TokenSource(ctx), nil
	}

	key, err := loadKey(cfg)
	if err != nil {
		return nil, err
	}
	x5t, err := thumbprintHeader(cfg.CertThumbprint)
	if err != nil {
		return nil, err
	}
	src := &assertionSource{
		ctx:      ctx,
		clientID: cfg.ClientID,
		tokenURL: tokenURL,
		key:      key,
		x5t:      x5t,
		now:      time.Now,
	}
	return oauth2.ReuseTokenSource(nil, src), nil
}

func loadKey(cfg Config) (*rsa.PrivateKey, error) {
	pem := []byte(cfg.CertPrivateKey)
	if len(pem) == 0 {
		raw, err := os.ReadFile(cfg.CertPrivateKeyPath)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		pem = raw
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return key, nil
}

// thumbprintHeader turns a hex SHA-1 thumbprint into the x5t header value.
func thumbprintHeader(thumbprint string) (string, error) {
	raw, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(thumbprint), ":", ""))
	if err != nil || len(raw) != 20 {
		return "", fmt.Errorf("%w: CERT_THUMBPRINT must be a hex SHA-1 thumbprint", ErrInvalidConfig)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// assertionSource requests a token with a freshly signed client assertion.
type assertionSource struct {
	ctx      context.Context
	clientID string
	tokenURL string
	key      *rsa.PrivateKey
	x5t      string
	now      func() time.Time
}

func (s *assertionSource) Token() (*oauth2.Token, error) {
	assertion, err := s.assertion()
	if err != nil {
		return nil, err
	}
	cc := &clientcredentials.Config{
		ClientID:  s.clientID,
		TokenURL:  s.tokenURL,
		Scopes:    []string{DefaultScope},
		AuthStyle: oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"client_assertion_type": {clientAssertionType},
			"client_assertion":      {assertion},
		},
	}
	return cc.Token(s.ctx)
}

func (s *assertionSource) assertion() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.clientID,
		Subject:   s.clientID,
		Audience:  jwt.ClaimStrings{s.tokenURL},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["x5t"] = s.x5t
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", errors.Join(ErrInvalidKey, err)
	}
	return signed, nil
}
