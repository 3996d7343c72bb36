package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sirosfoundation/go-dfe/pkg/compression"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// Header values sent with every request
const (
	ContentTypeSOAP12 = "application/soap+xml; charset=utf-8"
	UserAgent         = "go-dfe/1.0"
)

// Recommended TLS 1.2 cipher suites
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// HTTPSConfig contains HTTPS client configuration
type HTTPSConfig struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	CipherSuites    []uint16
	Certificates    []tls.Certificate
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	ConnectTimeout  time.Duration
	IdleConnTimeout time.Duration

	// InsecureSkipVerify disables server certificate verification. Several
	// authorities serve chains that are missing from system pools.
	InsecureSkipVerify bool

	// RateLimit caps requests per second; zero disables limiting
	RateLimit float64
	Burst     int

	// CompressRequests gzips request bodies (Content-Encoding: gzip)
	CompressRequests bool
}

// DefaultHTTPSConfig returns a default HTTPS configuration
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		Timeout:         30 * time.Second,
		ConnectTimeout:  5 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

// HTTPSClient posts SOAP envelopes over mutually authenticated HTTPS. It is
// safe for concurrent use.
type HTTPSClient struct {
	client     *http.Client
	config     *HTTPSConfig
	limiter    *rate.Limiter
	compressor *compression.Compressor
}

// NewHTTPSClient creates a new HTTPS client
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:         config.MinTLSVersion,
		MaxVersion:         config.MaxTLSVersion,
		CipherSuites:       config.CipherSuites,
		Certificates:       config.Certificates,
		RootCAs:            config.RootCAs,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}

	dialer := &net.Dialer{
		Timeout:   config.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: config.ConnectTimeout,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	c := &HTTPSClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config:     config,
		compressor: compression.NewCompressor(),
	}

	if config.RateLimit > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	return c
}

// Execute posts body to url with the given SOAP action and returns the
// response body. Gzip-encoded responses are decoded. A non-2xx reply is
// returned as a body when it is a SOAP envelope (a fault) and as a
// CategoryStatus error otherwise. Every failure is an *Error matching
// ErrTransport.
func (c *HTTPSClient) Execute(ctx context.Context, url, action string, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, classify(ctx, ctx.Err())
			}
			// the next token would arrive after the ctx deadline
			return nil, newError(CategoryTimeout, fmt.Errorf("rate limit: %w", err))
		}
	}

	payload := body
	if c.config.CompressRequests {
		compressed, err := c.compressor.Compress(body)
		if err != nil {
			return nil, newError(CategoryRequest, err)
		}
		payload = compressed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, newError(CategoryRequest, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", ContentTypeSOAP12)
	req.Header.Set("SOAPAction", action)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	if c.config.CompressRequests {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(CategoryRead, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		responseBody, err = c.compressor.Decompress(responseBody)
		if err != nil {
			return nil, newError(CategoryRead, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// SOAP 1.2 faults arrive with 4xx/5xx; the envelope is the answer
		if isSOAPEnvelope(resp.Header.Get("Content-Type"), responseBody) {
			return responseBody, nil
		}
		return nil, &Error{
			Category:   CategoryStatus,
			StatusCode: resp.StatusCode,
			Body:       responseBody,
			Err:        fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	return responseBody, nil
}

// isSOAPEnvelope reports whether an error reply carries a SOAP envelope
// rather than a proxy or server error page
func isSOAPEnvelope(contentType string, body []byte) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/soap+xml", "text/xml", "application/xml":
	default:
		return false
	}
	return bytes.Contains(body, []byte("Envelope"))
}
