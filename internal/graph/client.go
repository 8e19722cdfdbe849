package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 2048

// Client calls Microsoft Graph with an app-only token.
type Client struct {
	http    *http.Client
	tokens  oauth2.TokenSource
	baseURL string
	siteID  string
	driveID string
}

type Option func(*options)

type options struct {
	base *http.Client
}

// WithHTTPClient sets the transport used for both token and API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.base = c }
}

// New builds a client. No network call is made until the first request.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.base)
	}

	ts, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	hc := oauth2.NewClient(ctx, ts)
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		http:    hc,
		tokens:  ts,
		baseURL: base,
		siteID:  cfg.SiteID,
		driveID: cfg.DriveID,
	}, nil
}

// Check acquires a token, which validates the app registration.
func (c *Client) Check(context.Context) error {
	if _, err := c.tokens.Token(); err != nil {
		return errors.Join(ErrAuth, err)
	}
	return nil
}

// Download returns the content of the file at path, relative to the root of
// the configured drive.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrRequest)
	}

	root := "/sites/" + url.PathEscape(c.siteID) + "/drive"
	if c.driveID != "" {
		root = "/drives/" + url.PathEscape(c.driveID)
	}
	endpoint := c.baseURL + root + "/root:/" + escapePath(path) + ":/content"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrRequest, err)
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrRequest, err)
	}
	return data, nil
}

// SendMail sends msg from the mailbox of from and saves it to Sent Items.
func (c *Client) SendMail(ctx context.Context, from string, msg Message) error {
	body, err := json.Marshal(sendMailRequest{Message: msg, SaveToSentItems: true})
	if err != nil {
		return errors.Join(ErrRequest, err)
	}
	endpoint := c.baseURL + "/users/" + url.PathEscape(from) + "/sendMail"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return statusError(resp)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, errors.Join(ErrAuth, err)
		}
		return nil, errors.Join(ErrRequest, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, detail)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Join(ErrAccessDenied, detail)
	}
	return errors.Join(ErrUnexpectedStatus, detail)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
