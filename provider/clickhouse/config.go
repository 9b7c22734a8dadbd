package clickhouse

import (
	"crypto/tls"
	"net"
	"net/url"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nodeflow-project/clickhouse-node/crypt/secure"
	"github.com/nodeflow-project/clickhouse-node/utils"
)

const (
	ErrEmptyURL      = utils.Error("empty server URL")
	ErrInvalidURL    = utils.Error("invalid server URL")
	ErrInvalidScheme = utils.Error("invalid server URL scheme")
)

// default ports by scheme
const (
	DefaultHTTPPort   = "8123"
	DefaultHTTPSPort  = "8443"
	DefaultNativePort = "9000"
)

// ClientConfig connection parameters for a ClickHouse server, as resolved from
// a stored workflow credential
//
// URL schemes http/https select the HTTP interface; clickhouse/tcp select the
// native protocol. The password may be inlined or referenced through an env
// var or secrets file (see secure.DefaultCredentialConfig).
type ClientConfig struct {
	URL      string `json:"url" default:"http://localhost:8123"`
	Database string `json:"database" default:"default"`
	Username string `json:"username" default:"default"`
	secure.DefaultCredentialConfig
	// AllowUnauthorizedCerts skips TLS certificate verification; it also
	// enables http compression, preserving the original credential contract
	AllowUnauthorizedCerts bool `json:"allowUnauthorizedCerts"`
}

// NewClientConfig returns a ClientConfig with default values
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		URL:                     "http://localhost:8123",
		Database:                "default",
		Username:                "default",
		DefaultCredentialConfig: secure.DefaultCredentialConfig{},
		AllowUnauthorizedCerts:  false,
	}
}

// Validate checks url presence, syntax and scheme
func (c *ClientConfig) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return ErrInvalidURL
	}
	switch u.Scheme {
	case "http", "https", "clickhouse", "tcp":
		return nil
	default:
		return ErrInvalidScheme
	}
}

// Options maps the credential to a client configuration; pure function of the
// receiver, built fresh on every call and never cached
func (c *ClientConfig) Options() (*clickhouse.Options, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	password, err := c.Fetch()
	if err != nil {
		return nil, err
	}

	opts := &clickhouse.Options{
		Addr: []string{hostAddr(u)},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: password,
		},
	}
	switch u.Scheme {
	case "http":
		opts.Protocol = clickhouse.HTTP
	case "https":
		opts.Protocol = clickhouse.HTTP
		opts.TLS = &tls.Config{
			InsecureSkipVerify: c.AllowUnauthorizedCerts,
		}
	default:
		opts.Protocol = clickhouse.Native
	}
	if c.AllowUnauthorizedCerts {
		// the original credential contract couples this flag with http
		// compression; preserved as-is
		opts.Settings = clickhouse.Settings{
			"enable_http_compression": 1,
		}
	}
	return opts, nil
}

// hostAddr returns host:port, filling in the scheme's default port
func hostAddr(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	switch u.Scheme {
	case "http":
		return net.JoinHostPort(u.Hostname(), DefaultHTTPPort)
	case "https":
		return net.JoinHostPort(u.Hostname(), DefaultHTTPSPort)
	default:
		return net.JoinHostPort(u.Hostname(), DefaultNativePort)
	}
}
