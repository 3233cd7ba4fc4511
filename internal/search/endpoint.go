package search

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HostKind classifies a configured engine host.
type HostKind int

const (
	KindGeneric HostKind = iota
	// KindVPC is a managed-cloud private endpoint (AWS OpenSearch VPC domain).
	KindVPC
	// KindLocal is a loopback development cluster.
	KindLocal
)

func (k HostKind) String() string {
	switch k {
	case KindVPC:
		return "vpc"
	case KindLocal:
		return "local"
	default:
		return "generic"
	}
}

// Endpoint is the connection descriptor derived from a configured host string.
type Endpoint struct {
	URL                string
	Kind               HostKind
	Username           string
	Password           string
	UseAuth            bool
	InsecureSkipVerify bool
}

// ClassifyHost reports whether host is a VPC-style, local or generic endpoint.
// VPC patterns take precedence over loopback ones.
func ClassifyHost(host string) HostKind {
	switch {
	case strings.Contains(host, "vpc-") || strings.HasSuffix(host, ".es.amazonaws.com"):
		return KindVPC
	case strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1"):
		return KindLocal
	default:
		return KindGeneric
	}
}

// ResolveEndpoint derives the engine URL, auth and TLS settings from a host string.
//
// Hosts without a scheme get https://, except local ones which get http://. VPC hosts
// without an explicit port are pinned to 443. Basic auth is only attached when both
// credentials are set and the host is not VPC-style. Certificate verification is skipped
// for VPC and local hosts.
func ResolveEndpoint(host, username, password string) (Endpoint, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return Endpoint{}, fmt.Errorf("search host is required")
	}

	kind := ClassifyHost(host)

	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		if kind == KindLocal {
			host = "http://" + host
		} else {
			host = "https://" + host
		}
	}

	u, err := url.Parse(host)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parse search host %q: %w", host, err)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("parse search host %q: missing host name", host)
	}

	if kind == KindVPC && u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), "443")
	}

	ep := Endpoint{
		URL:                u.String(),
		Kind:               kind,
		InsecureSkipVerify: kind == KindVPC || kind == KindLocal,
	}
	if username != "" && password != "" && kind != KindVPC {
		ep.UseAuth = true
		ep.Username = username
		ep.Password = password
	}
	return ep, nil
}

// Scheme returns the URL scheme of the resolved endpoint.
func (e Endpoint) Scheme() string {
	if u, err := url.Parse(e.URL); err == nil {
		return u.Scheme
	}
	return ""
}

// Port returns the explicit port of the resolved endpoint, or "" when none is set.
func (e Endpoint) Port() string {
	if u, err := url.Parse(e.URL); err == nil {
		return u.Port()
	}
	return ""
}

// NewTransport builds the pooled HTTP transport for engine calls. connectTimeout bounds
// dialing and the TLS handshake; requestTimeout bounds the wait for response headers.
// The transport is instrumented with OpenTelemetry client spans.
func NewTransport(ep Endpoint, connectTimeout, requestTimeout time.Duration) http.RoundTripper {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: requestTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: ep.InsecureSkipVerify, //nolint:gosec // internal and self-signed engine certificates
		},
	}
	return otelhttp.NewTransport(base)
}
