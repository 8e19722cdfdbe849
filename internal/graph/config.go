package graph

import (
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"
	DefaultScope   = "https://graph.microsoft.com/.default"
)

// Config is read from the same variables the agency's Azure app registration
// was documented with.
type Config struct {
	TenantID           string        `env:"TENANT_ID"`
	ClientID           string        `env:"CLIENT_ID"`
	ClientSecret       string        `env:"CLIENT_SECRET"`
	CertThumbprint     string        `env:"CERT_THUMBPRINT"`
	CertPrivateKey     string        `env:"CERT_PRIVATE_KEY"`
	CertPrivateKeyPath string        `env:"CERT_PRIVATE_KEY_PATH" envDefault:"mailer.key"`
	SiteID             string        `env:"SITE_ID" envDefault:"studysuccess.sharepoint.com,9e9e1ce0-5693-4484-abdb-6c7c1f350351,3daa2958-c7e0-40f1-a80c-0b19460aa66d"`
	DriveID            string        `env:"DRIVE_ID"`
	BaseURL            string        `env:"GRAPH_BASE_URL" envDefault:"https://graph.microsoft.com/v1.0"`
	TokenURL           string        `env:"GRAPH_TOKEN_URL"` // defaults to the Azure AD v2 endpoint of TenantID
	Timeout            time.Duration `env:"GRAPH_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether an app registration is configured at all.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.TenantID) != "" && strings.TrimSpace(c.ClientID) != ""
}

func (c Config) usesCertificate() bool {
	return c.CertThumbprint != "" && c.ClientSecret == ""
}
